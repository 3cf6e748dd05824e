package layout

import (
	"fmt"

	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/logger"
	"github.com/benoitkugler/webgrid/utils"
)

// Block is a simplified block layout : children (and text lines)
// are stacked vertically, and fill the available width.
type Block struct {
	dispatcher Dispatcher
}

// NewBlock returns a block algorithm using d for the children.
func NewBlock(d Dispatcher) *Block { return &Block{dispatcher: d} }

type blockPayload struct {
	children []*Fragment
	baseline utils.MaybeFloat
}

// ClampWidth applies min-width and max-width, resolving percentages against basis.
func ClampWidth(node *bo.Box, width Fl, basis utils.MaybeFloat) Fl {
	max := utils.Inf
	if v, ok := node.Style.MaxWidth.Resolve(basis.V, basis.Valid); ok {
		max = v
	}
	min, _ := node.Style.MinWidth.Resolve(basis.V, basis.Valid)
	return utils.Clamp(width, min, max)
}

// ClampHeight applies min-height and max-height.
func ClampHeight(node *bo.Box, height Fl, basis utils.MaybeFloat) Fl {
	max := utils.Inf
	if v, ok := node.Style.MaxHeight.Resolve(basis.V, basis.Valid); ok {
		max = v
	}
	min, _ := node.Style.MinHeight.Resolve(basis.V, basis.Valid)
	return utils.Clamp(height, min, max)
}

// UsedWidth returns the border box width of a box, for the given
// available width, or false if it depends on its content.
func UsedWidth(node *bo.Box, space ConstraintSpace) (Fl, bool) {
	if space.IsFixedInlineSize && space.AvailableWidth.Valid {
		return space.AvailableWidth.V, true
	}
	if w, ok := node.Style.Width.Resolve(space.AvailableWidth.V, space.AvailableWidth.Valid); ok {
		return ClampWidth(node, w, space.AvailableWidth), true
	}
	return 0, false
}

// UsedHeight is the same as [UsedWidth], for the block axis.
func UsedHeight(node *bo.Box, space ConstraintSpace) (Fl, bool) {
	if space.IsFixedBlockSize && space.AvailableHeight.Valid {
		return space.AvailableHeight.V, true
	}
	if h, ok := node.Style.Height.Resolve(space.AvailableHeight.V, space.AvailableHeight.Valid); ok {
		return ClampHeight(node, h, space.AvailableHeight), true
	}
	return 0, false
}

func (b *Block) width(node *bo.Box, space ConstraintSpace) (Fl, error) {
	if w, ok := UsedWidth(node, space); ok {
		return w, nil
	}
	if space.Constraint == Definite && space.AvailableWidth.Valid {
		return ClampWidth(node, space.AvailableWidth.V, space.AvailableWidth), nil
	}
	mm, err := b.MinMaxSizes(node, space)
	if err != nil {
		return 0, err
	}
	w := mm.Max
	if space.Constraint == MinContent {
		w = mm.Min
	}
	return ClampWidth(node, w, space.AvailableWidth), nil
}

func (b *Block) Measure(node *bo.Box, space ConstraintSpace) (MeasureResult, error) {
	if node.IsText() {
		return MeasureResult{}, fmt.Errorf("block layout of a text box: %w", ErrContractViolation)
	}
	width, err := b.width(node, space)
	if err != nil {
		return MeasureResult{}, err
	}
	height, definiteHeight := UsedHeight(node, space)
	childHeight := utils.MaybeFloat{}
	if definiteHeight {
		childHeight = utils.Some(height)
	}

	var (
		payload blockPayload
		y       Fl
	)
	for _, child := range node.InFlowChildren() {
		var fr *Fragment
		if child.IsText() {
			lines := breakText(child.Text, child.Style, width)
			fr = &Fragment{Box: child, Width: lines.width, Height: lines.height, Baseline: utils.Some(lines.baseline)}
		} else {
			childSpace := space.WithSize(utils.Some(width), childHeight).ForChild(child.Style)
			fr, err = b.dispatcher.Layout(child, childSpace)
			if err != nil {
				return MeasureResult{}, err
			}
		}
		fr.Y = y
		if !payload.baseline.Valid && fr.Baseline.Valid {
			payload.baseline = utils.Some(y + fr.Baseline.V)
		}
		y += fr.Height
		payload.children = append(payload.children, fr)
	}
	if !definiteHeight {
		height = ClampHeight(node, y, space.AvailableHeight)
	}
	return MeasureResult{Width: width, Height: height, Payload: payload}, nil
}

func (b *Block) Arrange(node *bo.Box, space ConstraintSpace, measured MeasureResult) (*Fragment, error) {
	payload, ok := measured.Payload.(blockPayload)
	if !ok {
		return nil, fmt.Errorf("invalid block payload %T: %w", measured.Payload, ErrContractViolation)
	}
	logger.ProgressLogger.Debug("block arranged", "box", node, "width", measured.Width, "height", measured.Height)
	return &Fragment{
		Box:      node,
		Width:    measured.Width,
		Height:   measured.Height,
		Baseline: payload.baseline,
		Children: payload.children,
	}, nil
}

// MinMaxSizes implements [MinMaxSizer].
func (b *Block) MinMaxSizes(node *bo.Box, space ConstraintSpace) (MinMaxSizes, error) {
	if w, ok := node.Style.Width.Resolve(0, false); ok {
		w = ClampWidth(node, w, utils.MaybeFloat{})
		return MinMaxSizes{Min: w, Max: w}, nil
	}
	var out MinMaxSizes
	for _, child := range node.InFlowChildren() {
		var mm MinMaxSizes
		if child.IsText() {
			mm = textMinMax(child.Text, child.Style)
		} else {
			var err error
			mm, err = b.dispatcher.MinMaxSizes(child, space.ForChild(child.Style))
			if err != nil {
				return MinMaxSizes{}, err
			}
		}
		out.Min = utils.MaxF(out.Min, mm.Min)
		out.Max = utils.MaxF(out.Max, mm.Max)
	}
	out.Min = ClampWidth(node, out.Min, utils.MaybeFloat{})
	out.Max = ClampWidth(node, out.Max, utils.MaybeFloat{})
	return out, nil
}
