// Package tree parses HTML documents and computes the style
// of their elements, from the inline `style` attributes.
package tree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/css/validation"
	"github.com/benoitkugler/webgrid/logger"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML is a parsed document.
type HTML struct {
	Root *html.Node
}

// NewHTML parses the given document.
func NewHTML(r io.Reader) (*HTML, error) {
	logger.ProgressLogger.Debug("Step 1 - Parsing HTML")
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil || root.FirstChild == nil {
		return nil, fmt.Errorf("invalid html input : %v", err)
	}
	var out HTML
	// html.Parse wraps the <html> tag
	out.Root = root.FirstChild
	if out.Root.Type == html.DoctypeNode {
		out.Root = out.Root.NextSibling
	}
	if out.Root == nil {
		return nil, fmt.Errorf("invalid html input : missing <html> element")
	}
	return &out, nil
}

// ParseString is a convenience wrapper for [NewHTML].
func ParseString(content string) (*HTML, error) {
	return NewHTML(bytes.NewReader([]byte(content)))
}

// Body returns the <body> element, which is always
// present since the parser adds it when missing.
func (h *HTML) Body() *html.Node {
	for c := h.Root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Body {
			return c
		}
	}
	return h.Root
}

// ElementStyle returns the style of the given element, inheriting
// from the parent style. Only the inline `style` attribute is taken
// into account.
func ElementStyle(element *html.Node, parent *pr.Style) pr.Style {
	style := pr.InitialStyle()
	if parent != nil {
		inherit(&style, *parent)
	}
	for _, attr := range element.Attr {
		if attr.Key == "style" {
			validation.ApplyDeclarations(&style, attr.Val)
		}
	}
	return style
}

// inherit copies the inherited properties
func inherit(style *pr.Style, parent pr.Style) {
	style.FontSize = parent.FontSize
	style.LineHeight = parent.LineHeight
	style.Direction = parent.Direction
	style.WritingMode = parent.WritingMode
}

// TextContent returns the collapsed text of a text node,
// or "" if the node only contains white space.
func TextContent(node *html.Node) string {
	if node.Type != html.TextNode {
		return ""
	}
	return strings.Join(strings.Fields(node.Data), " ")
}
