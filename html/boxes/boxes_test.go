package boxes

import (
	"testing"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/html/tree"
	tu "github.com/benoitkugler/webgrid/utils/testutils"
)

func parseBase(t *testing.T, content string) *Box {
	t.Helper()
	doc, err := tree.ParseString(content)
	if err != nil {
		t.Fatal(err)
	}
	return BuildTree(doc)
}

func TestBuildTree(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	body := parseBase(t, `
	<article id="grid" style="display: grid; font-size: 2px">
		<div>a</div> <div style="display: none">hidden</div>
		text <span>b</span> more
	</article>`)
	tu.AssertEqual(t, body.ElementTag(), "body")
	tu.AssertEqual(t, len(body.Children), 1)

	article := body.Find("grid")
	if article != body.Children[0] {
		t.Fatal("expected article as first child")
	}
	tu.AssertEqual(t, article.Style.Display, pr.DisplayGrid)
	tu.AssertEqual(t, len(article.Children), 4)

	div, text, span, more := article.Children[0], article.Children[1], article.Children[2], article.Children[3]
	tu.AssertEqual(t, div.ElementTag(), "div")
	tu.AssertEqual(t, div.Children[0].Text, "a")
	tu.AssertEqual(t, div.Children[0].Style.FontSize, 2.)
	tu.AssertEqual(t, text.IsText(), true)
	tu.AssertEqual(t, text.Text, "text")
	tu.AssertEqual(t, span.ElementTag(), "span")
	tu.AssertEqual(t, more.Text, "more")
}

func TestInFlowChildren(t *testing.T) {
	hidden := NewBox(pr.Style{Display: pr.DisplayNone})
	shown := NewBox(pr.InitialStyle())
	parent := NewBox(pr.InitialStyle(), hidden, shown)
	children := parent.InFlowChildren()
	if len(children) != 1 || children[0] != shown {
		t.Fatalf("unexpected children %v", children)
	}
	tu.AssertEqual(t, parent.Dump(), "anonymous(block)\n  anonymous(none)\n  anonymous(block)\n")
}

func TestBuildTreeFrom(t *testing.T) {
	doc, err := tree.ParseString(`<div id="a">a</div><div>b</div>`)
	if err != nil {
		t.Fatal(err)
	}
	root := pr.InitialStyle()
	root.FontSize, root.LineHeight = 4, 1
	body := BuildTreeFrom(doc, &root)
	tu.AssertEqual(t, body.Style.FontSize, 4.)
	tu.AssertEqual(t, body.Children[1].Children[0].Style.LineHeight, 1.)

	tu.AssertEqual(t, body.Children[0].ID(), "a")
	tu.AssertEqual(t, body.Children[1].ID(), "")
	tu.AssertEqual(t, body.Children[0].Children[0].ID(), "")
	if body.Find("") != nil {
		t.Fatal("unexpected box for an empty id")
	}
}
