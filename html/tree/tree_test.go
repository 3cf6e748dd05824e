package tree

import (
	"testing"

	pr "github.com/benoitkugler/webgrid/css/properties"
	tu "github.com/benoitkugler/webgrid/utils/testutils"
	"golang.org/x/net/html"
)

func TestParseAndStyle(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc, err := ParseString(`<!DOCTYPE html>
	<div style="display: grid; font-size: 4px; direction: rtl">
		<p style="width: 2px">  some
		   text </p>
	</div>`)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, doc.Root.Data, "html")
	body := doc.Body()
	tu.AssertEqual(t, body.Data, "body")

	var div *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			div = c
		}
	}
	divStyle := ElementStyle(div, nil)
	tu.AssertEqual(t, divStyle.Display, pr.DisplayGrid)
	tu.AssertEqual(t, divStyle.FontSize, 4.)

	var p *html.Node
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			p = c
		}
	}
	pStyle := ElementStyle(p, &divStyle)
	tu.AssertEqual(t, pStyle.Display, pr.DisplayBlock)
	tu.AssertEqual(t, pStyle.FontSize, 4.)
	tu.AssertEqual(t, pStyle.Direction, pr.RTL)
	tu.AssertEqual(t, pStyle.Width, pr.PxLength(2))
	tu.AssertEqual(t, TextContent(p.FirstChild), "some text")
	tu.AssertEqual(t, TextContent(div.FirstChild), "")
}

func TestInvalidInlineStyle(t *testing.T) {
	logs := tu.CaptureLogs()
	doc, err := ParseString(`<div style="display: grid; grid-template-columns: 1fr 1px 1;"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	style := ElementStyle(doc.Body().FirstChild, nil)
	tu.AssertEqual(t, style.Display, pr.DisplayGrid)
	tu.AssertEqual(t, len(style.Grid.TemplateColumns), 0)
	tu.AssertEqual(t, len(logs.CheckLogs()), 1)
}
