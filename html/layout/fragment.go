package layout

import (
	"fmt"
	"strings"

	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/utils"
)

// GridLines stores the positions of the grid lines of a
// grid container, relative to its fragment. Both edges of
// each gutter are included.
type GridLines struct {
	Columns, Rows []Fl
}

// Fragment is the output of a layout : the position and size
// of a box, and of its descendants.
type Fragment struct {
	Box *bo.Box
	// Grid is only set for grid containers.
	Grid *GridLines
	// X and Y are relative to the parent fragment.
	X, Y          Fl
	Width, Height Fl
	// Baseline is the offset of the first baseline, from the top
	// of the fragment.
	Baseline utils.MaybeFloat
	Children []*Fragment
}

// AbsoluteFragment is a fragment translated in the coordinates
// of the root of the tree.
type AbsoluteFragment struct {
	*Fragment
	X, Y  Fl
	Depth int
}

// Flatten walks the tree in pre-order, returning the absolute positions.
func (f *Fragment) Flatten() []AbsoluteFragment {
	var out []AbsoluteFragment
	var walk func(fr *Fragment, x, y Fl, depth int)
	walk = func(fr *Fragment, x, y Fl, depth int) {
		x, y = x+fr.X, y+fr.Y
		out = append(out, AbsoluteFragment{Fragment: fr, X: x, Y: y, Depth: depth})
		for _, child := range fr.Children {
			walk(child, x, y, depth+1)
		}
	}
	walk(f, 0, 0, 0)
	return out
}

// Find returns the fragment of the box whose element has the given id,
// with its absolute position, or nil.
func (f *Fragment) Find(id string) *AbsoluteFragment {
	for _, fr := range f.Flatten() {
		if fr.Box != nil && fr.Box.Find(id) == fr.Box {
			return &fr
		}
	}
	return nil
}

// Dump returns an indented, human readable representation of the tree.
func (f *Fragment) Dump() string {
	var s strings.Builder
	for _, fr := range f.Flatten() {
		fmt.Fprintf(&s, "%s%s at (%g, %g) size %gx%g\n", strings.Repeat("  ", fr.Depth),
			fr.Box, utils.RoundPrec(fr.X, 3), utils.RoundPrec(fr.Y, 3),
			utils.RoundPrec(fr.Width, 3), utils.RoundPrec(fr.Height, 3))
	}
	return s.String()
}
