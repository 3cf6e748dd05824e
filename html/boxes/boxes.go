// Package boxes defines the box tree, on which the layout is performed.
package boxes

import (
	"fmt"
	"strings"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"golang.org/x/net/html"
)

// Box is a node of the layout tree. Its children are in document order.
type Box struct {
	// Element is the source element, or nil for anonymous boxes.
	Element *html.Node
	Style   pr.Style
	// Text is only used by anonymous text boxes, which have no children.
	Text     string
	Children []*Box
}

// NewBox returns a box without source element.
func NewBox(style pr.Style, children ...*Box) *Box {
	return &Box{Style: style, Children: children}
}

// TextBoxAnonymousFrom returns a text box inheriting its
// style from parent.
func TextBoxAnonymousFrom(parent *Box, text string) *Box {
	return &Box{Style: inheritedStyle(parent), Text: text}
}

// inheritedStyle returns the initial style, with the inherited
// properties of parent
func inheritedStyle(parent *Box) pr.Style {
	style := pr.InitialStyle()
	style.FontSize = parent.Style.FontSize
	style.LineHeight = parent.Style.LineHeight
	style.Direction = parent.Style.Direction
	style.WritingMode = parent.Style.WritingMode
	return style
}

// ElementTag returns the tag of the source element, or "" for
// anonymous boxes.
func (b *Box) ElementTag() string {
	if b.Element == nil || b.Element.Type != html.ElementNode {
		return ""
	}
	return b.Element.Data
}

// IsText returns true for anonymous text boxes.
func (b *Box) IsText() bool { return b.Element == nil && b.Text != "" }

// IsInFlow returns false for boxes which are not rendered.
func (b *Box) IsInFlow() bool { return b.Style.Display != pr.DisplayNone }

// InFlowChildren returns the children participating in the layout.
func (b *Box) InFlowChildren() []*Box {
	out := make([]*Box, 0, len(b.Children))
	for _, child := range b.Children {
		if child.IsInFlow() {
			out = append(out, child)
		}
	}
	return out
}

// ID returns the id attribute of the source element, or "".
func (b *Box) ID() string {
	if b.Element == nil {
		return ""
	}
	for _, attr := range b.Element.Attr {
		if attr.Key == "id" {
			return attr.Val
		}
	}
	return ""
}

// Find returns the first box (in pre-order) whose element has the given id.
func (b *Box) Find(id string) *Box {
	if id != "" && b.ID() == id {
		return b
	}
	for _, child := range b.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

func (b *Box) String() string {
	if b.IsText() {
		return fmt.Sprintf("Text(%q)", b.Text)
	}
	tag := b.ElementTag()
	if tag == "" {
		tag = "anonymous"
	}
	return fmt.Sprintf("%s(%s)", tag, b.Style.Display)
}

// Dump returns an indented representation of the tree, for debugging.
func (b *Box) Dump() string {
	var s strings.Builder
	var dump func(box *Box, indent int)
	dump = func(box *Box, indent int) {
		s.WriteString(strings.Repeat("  ", indent) + box.String() + "\n")
		for _, child := range box.Children {
			dump(child, indent+1)
		}
	}
	dump(b, 0)
	return s.String()
}

// AnonymousBlockFrom returns a block box wrapping children, inheriting
// its style from parent.
func AnonymousBlockFrom(parent *Box, children ...*Box) *Box {
	return &Box{Style: inheritedStyle(parent), Children: children}
}
