// Package layout defines the interface between the layout
// algorithms, and implements the dispatch from a box to the
// algorithm handling its display.
package layout

import (
	"errors"
	"fmt"

	pr "github.com/benoitkugler/webgrid/css/properties"
	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/utils"
)

type Fl = utils.Fl

// ErrContractViolation is returned (wrapped) when a layout
// algorithm is called with invalid inputs, like a box whose
// display is not supported by the algorithm.
var ErrContractViolation = errors.New("layout contract violation")

// SizingConstraint is the kind of size requested to an algorithm.
type SizingConstraint uint8

const (
	// Definite : the available size is used as is.
	Definite SizingConstraint = iota
	// MinContent : the smallest size without overflow.
	MinContent
	// MaxContent : the size with infinite available space.
	MaxContent
)

func (sc SizingConstraint) String() string {
	switch sc {
	case MinContent:
		return "min-content"
	case MaxContent:
		return "max-content"
	default:
		return "definite"
	}
}

// ConstraintSpace is the input of a layout algorithm.
type ConstraintSpace struct {
	// InheritedLayoutTree is set by a grid container when laying out a
	// subgrid, and is opaque for the other algorithms.
	InheritedLayoutTree interface{}

	// AvailableWidth and AvailableHeight are the size of the containing
	// block, or indefinite.
	AvailableWidth, AvailableHeight utils.MaybeFloat

	// IsFixedInlineSize and IsFixedBlockSize are set when the size
	// of the box is imposed by its parent (for instance by stretching),
	// and is then equal to the available size.
	IsFixedInlineSize, IsFixedBlockSize bool

	Constraint SizingConstraint

	WritingMode pr.WritingMode
	Direction   pr.Direction
}

// NewConstraintSpace returns a space for a root box.
func NewConstraintSpace(width, height utils.MaybeFloat) ConstraintSpace {
	return ConstraintSpace{AvailableWidth: width, AvailableHeight: height}
}

// WithSize returns a copy of the space with the given available sizes,
// clearing the fixed flags and the inherited layout tree.
func (cs ConstraintSpace) WithSize(width, height utils.MaybeFloat) ConstraintSpace {
	cs.AvailableWidth, cs.AvailableHeight = width, height
	cs.IsFixedInlineSize, cs.IsFixedBlockSize = false, false
	cs.InheritedLayoutTree = nil
	cs.Constraint = Definite
	return cs
}

// WithFixedSize returns a copy of the space imposing the given definite sizes.
// An invalid size is left free.
func (cs ConstraintSpace) WithFixedSize(width, height utils.MaybeFloat) ConstraintSpace {
	cs = cs.WithSize(width, height)
	cs.IsFixedInlineSize, cs.IsFixedBlockSize = width.Valid, height.Valid
	return cs
}

// ForChild returns the space used to layout a child with the given style,
// propagating the inherited properties.
func (cs ConstraintSpace) ForChild(style pr.Style) ConstraintSpace {
	cs.WritingMode, cs.Direction = style.WritingMode, style.Direction
	return cs
}

// MeasureResult is the output of [Algorithm.Measure]. Payload is
// private to the algorithm, and passed back to [Algorithm.Arrange].
type MeasureResult struct {
	Payload       interface{}
	Width, Height Fl
}

// MinMaxSizes are the min-content and max-content inline sizes of a box.
type MinMaxSizes struct {
	Min, Max Fl
}

// Algorithm is a layout algorithm, run in two passes.
type Algorithm interface {
	// Measure computes the size of the box, for the given constraints.
	Measure(node *bo.Box, space ConstraintSpace) (MeasureResult, error)
	// Arrange positions the children of the box, using the result of
	// a previous call to Measure with the same space.
	Arrange(node *bo.Box, space ConstraintSpace, measured MeasureResult) (*Fragment, error)
}

// MinMaxSizer is implemented by algorithms able to compute their
// intrinsic sizes more efficiently than by measuring.
type MinMaxSizer interface {
	MinMaxSizes(node *bo.Box, space ConstraintSpace) (MinMaxSizes, error)
}

// Dispatcher lays out any box, selecting the algorithm from its display.
type Dispatcher interface {
	Layout(node *bo.Box, space ConstraintSpace) (*Fragment, error)
	MinMaxSizes(node *bo.Box, space ConstraintSpace) (MinMaxSizes, error)
}

// Registry maps displays to algorithms. It is not safe for concurrent
// registration, but a fully registered Registry may be used concurrently.
type Registry struct {
	algorithms map[pr.Display]Algorithm
	fallback   Algorithm
}

// NewRegistry returns a registry with the block algorithm used as fallback.
func NewRegistry() *Registry {
	r := &Registry{algorithms: map[pr.Display]Algorithm{}}
	r.fallback = NewBlock(r)
	r.Register(pr.DisplayBlock, r.fallback)
	return r
}

// Register sets the algorithm handling the given display.
func (r *Registry) Register(display pr.Display, algo Algorithm) {
	r.algorithms[display] = algo
}

// Lookup returns the algorithm for the box.
func (r *Registry) Lookup(node *bo.Box) Algorithm {
	if algo, ok := r.algorithms[node.Style.Display]; ok {
		return algo
	}
	return r.fallback
}

// Layout runs Measure then Arrange.
func (r *Registry) Layout(node *bo.Box, space ConstraintSpace) (*Fragment, error) {
	algo := r.Lookup(node)
	measured, err := algo.Measure(node, space)
	if err != nil {
		return nil, fmt.Errorf("measuring %s: %w", node, err)
	}
	return algo.Arrange(node, space, measured)
}

// MinMaxSizes uses the [MinMaxSizer] implementation if available, or
// measures the box under min-content and max-content constraints.
func (r *Registry) MinMaxSizes(node *bo.Box, space ConstraintSpace) (MinMaxSizes, error) {
	algo := r.Lookup(node)
	if sizer, ok := algo.(MinMaxSizer); ok {
		return sizer.MinMaxSizes(node, space)
	}
	space = space.WithSize(utils.Some(0), utils.MaybeFloat{})
	space.Constraint = MinContent
	min, err := algo.Measure(node, space)
	if err != nil {
		return MinMaxSizes{}, err
	}
	space = space.WithSize(utils.MaybeFloat{}, utils.MaybeFloat{})
	space.Constraint = MaxContent
	max, err := algo.Measure(node, space)
	if err != nil {
		return MinMaxSizes{}, err
	}
	return MinMaxSizes{Min: min.Width, Max: utils.MaxF(min.Width, max.Width)}, nil
}

// Layout lays out the root box at the given viewport size.
func Layout(r *Registry, root *bo.Box, width, height utils.MaybeFloat) (*Fragment, error) {
	return r.Layout(root, NewConstraintSpace(width, height).ForChild(root.Style))
}
