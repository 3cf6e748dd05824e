package boxes

import (
	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/html/tree"
	"github.com/benoitkugler/webgrid/logger"
	"golang.org/x/net/html"
)

// BuildTree returns the box of the <body> element of the document.
// Elements with 'display: none' are skipped.
func BuildTree(document *tree.HTML) *Box {
	return BuildTreeFrom(document, nil)
}

// BuildTreeFrom is the same as [BuildTree], with the <body> element
// inheriting from rootStyle, if not nil.
func BuildTreeFrom(document *tree.HTML, rootStyle *pr.Style) *Box {
	logger.ProgressLogger.Debug("Step 2 - Creating the box tree")
	return elementToBox(document.Body(), rootStyle)
}

func elementToBox(element *html.Node, parentStyle *pr.Style) *Box {
	box := &Box{Element: element, Style: tree.ElementStyle(element, parentStyle)}
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			childBox := elementToBox(child, &box.Style)
			if childBox.IsInFlow() {
				box.Children = append(box.Children, childBox)
			}
		case html.TextNode:
			text := tree.TextContent(child)
			if text == "" {
				continue
			}
			// merge with a previous text box
			if L := len(box.Children); L != 0 && box.Children[L-1].IsText() {
				box.Children[L-1].Text += " " + text
				continue
			}
			box.Children = append(box.Children, TextBoxAnonymousFrom(box, text))
		}
	}
	return box
}
