package grid

import (
	"fmt"
	"math"

	pr "github.com/benoitkugler/webgrid/css/properties"
	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/utils"
)

type Fl = utils.Fl

// Axis is the columns or the rows axis of a grid.
type Axis uint8

const (
	Column Axis = iota
	Row
)

// Other returns the orthogonal axis.
func (a Axis) Other() Axis { return 1 - a }

func (a Axis) String() string {
	if a == Row {
		return "row"
	}
	return "column"
}

// GridSpan is a half open range [Start, End) of track indices.
// Start or End equal to IndefiniteLine means the span is not resolved yet,
// and must be found by the auto-placement algorithm. Size is always valid.
// Definite lines may be negative : they are before the explicit grid.
type GridSpan struct {
	Start, End, Size int
}

// IndefiniteLine is outside of the range of the resolved lines.
const IndefiniteLine = math.MinInt32

// NewIndefiniteSpan returns a span of the given size, to be placed.
func NewIndefiniteSpan(size int) GridSpan {
	return GridSpan{Start: IndefiniteLine, End: IndefiniteLine, Size: utils.MaxInt(size, 1)}
}

// NewDefiniteSpan returns the normalized span between the two lines :
// they are swapped if needed, and an empty span is extended by one track.
func NewDefiniteSpan(start, end int) GridSpan {
	if end < start {
		start, end = end, start
	}
	if end == start {
		end = start + 1
	}
	return GridSpan{Start: start, End: end, Size: end - start}
}

func (s GridSpan) IsIndefinite() bool { return s.Start == IndefiniteLine || s.End == IndefiniteLine }

// Translate moves a definite span by offset.
func (s GridSpan) Translate(offset int) GridSpan {
	return GridSpan{Start: s.Start + offset, End: s.End + offset, Size: s.Size}
}

// Contains returns true if the track is inside the span.
func (s GridSpan) Contains(track int) bool { return s.Start <= track && track < s.End }

func (s GridSpan) String() string {
	if s.IsIndefinite() {
		return fmt.Sprintf("auto / span %d", s.Size)
	}
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// GridArea is the fully resolved position of an item.
type GridArea struct {
	ColumnStart, ColumnEnd int
	RowStart, RowEnd       int
}

// NewGridArea combines two definite spans.
func NewGridArea(columns, rows GridSpan) GridArea {
	return GridArea{
		ColumnStart: columns.Start, ColumnEnd: columns.End,
		RowStart: rows.Start, RowEnd: rows.End,
	}
}

// Span returns the span of the area on the given axis.
func (ga GridArea) Span(axis Axis) GridSpan {
	if axis == Row {
		return GridSpan{Start: ga.RowStart, End: ga.RowEnd, Size: ga.RowEnd - ga.RowStart}
	}
	return GridSpan{Start: ga.ColumnStart, End: ga.ColumnEnd, Size: ga.ColumnEnd - ga.ColumnStart}
}

func (ga GridArea) String() string {
	return fmt.Sprintf("rows %d / %d, columns %d / %d", ga.RowStart, ga.RowEnd, ga.ColumnStart, ga.ColumnEnd)
}

// TrackSpanProperties are flags summarizing the tracks of a range,
// or the tracks spanned by an item.
type TrackSpanProperties uint8

const (
	HasIntrinsicTrack TrackSpanProperties = 1 << iota
	HasFlexibleTrack
	HasAutoMinimumTrack
	HasFixedMaximumTrack
	IsCollapsed
	IsImplicit
)

// Has returns true if all the flags in f are set.
func (p TrackSpanProperties) Has(f TrackSpanProperties) bool { return p&f == f }

func (p TrackSpanProperties) String() string {
	names := []string{"intrinsic", "flexible", "auto-minimum", "fixed-maximum", "collapsed", "implicit"}
	var out []string
	for i, name := range names {
		if p&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return fmt.Sprint(out)
}

// contributionCache stores the size contributions of an item on one axis.
type contributionCache struct {
	minMax     [2]Fl // min-content, max-content
	hasMinMax  bool
	blockSize  Fl // for rows : the height at blockWidth
	blockWidth Fl
	hasBlock   bool
}

// GridItemData is an in-flow child of a grid container. Node is
// borrowed from the box tree.
type GridItemData struct {
	Node *bo.Box

	// ColumnSpan and RowSpan are the output of the line resolver,
	// updated by the placement.
	ColumnSpan, RowSpan GridSpan
	ResolvedPosition    GridArea

	ColumnSpanProperties, RowSpanProperties TrackSpanProperties

	contributions [2]contributionCache

	// Order is the CSS 'order' property, and index the position
	// in the document.
	Order, index int

	// JustifySelf and AlignSelf are resolved against the container :
	// they are never 'auto' nor 'normal'.
	JustifySelf, AlignSelf pr.ItemAlignment

	IsSubgrid                              bool
	HasSubgriddedColumns, HasSubgriddedRows bool
}

// Span returns the span on the given axis.
func (item *GridItemData) Span(axis Axis) GridSpan {
	if axis == Row {
		return item.RowSpan
	}
	return item.ColumnSpan
}

// SetSpan updates the span on the given axis.
func (item *GridItemData) SetSpan(axis Axis, span GridSpan) {
	if axis == Row {
		item.RowSpan = span
	} else {
		item.ColumnSpan = span
	}
}

// SpanProperties returns the properties of the tracks spanned on the given axis.
func (item *GridItemData) SpanProperties(axis Axis) TrackSpanProperties {
	if axis == Row {
		return item.RowSpanProperties
	}
	return item.ColumnSpanProperties
}

func (item *GridItemData) setSpanProperties(axis Axis, props TrackSpanProperties) {
	if axis == Row {
		item.RowSpanProperties = props
	} else {
		item.ColumnSpanProperties = props
	}
}

// IsSubgridded returns true if the item is a subgrid on the given axis.
func (item *GridItemData) IsSubgridded(axis Axis) bool {
	if axis == Row {
		return item.HasSubgriddedRows
	}
	return item.HasSubgriddedColumns
}

// Alignment returns the self alignment on the given axis.
func (item *GridItemData) Alignment(axis Axis) pr.ItemAlignment {
	if axis == Row {
		return item.AlignSelf
	}
	return item.JustifySelf
}

// resolveSelfAlignment replaces 'auto' by the container value, and 'normal'
// by 'stretch'.
func resolveSelfAlignment(self, items pr.ItemAlignment) pr.ItemAlignment {
	if self == pr.ItemAuto {
		self = items
	}
	if self == pr.ItemNormal || self == pr.ItemAuto {
		self = pr.ItemStretch
	}
	return self
}

// newGridItem returns the item for the given child, whose spans
// are resolved by the caller.
func newGridItem(child *bo.Box, index int, container *pr.GridStyle) GridItemData {
	style := &child.Style
	item := GridItemData{
		Node:        child,
		Order:       style.Item.Order,
		index:       index,
		JustifySelf: resolveSelfAlignment(style.Item.JustifySelf, container.JustifyItems),
		AlignSelf:   resolveSelfAlignment(style.Item.AlignSelf, container.AlignItems),
	}
	if style.Display.IsGrid() {
		item.HasSubgriddedColumns = style.Grid.SubgridColumns
		item.HasSubgriddedRows = style.Grid.SubgridRows
		item.IsSubgrid = item.HasSubgriddedColumns || item.HasSubgriddedRows
	}
	return item
}
