// Package grid implements the CSS grid layout algorithm : line
// resolution, item placement, track sizing and alignment, including
// subgrids.
package grid

import (
	"fmt"

	pr "github.com/benoitkugler/webgrid/css/properties"
	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/html/layout"
	"github.com/benoitkugler/webgrid/logger"
	"github.com/benoitkugler/webgrid/utils"
)

// Algorithm lays out the 'grid' and 'inline-grid' boxes.
// It is stateless, and may be used concurrently.
type Algorithm struct {
	dispatcher layout.Dispatcher
}

var (
	_ layout.Algorithm   = (*Algorithm)(nil)
	_ layout.MinMaxSizer = (*Algorithm)(nil)
)

// New returns a grid algorithm, using d to layout the grid items.
func New(d layout.Dispatcher) *Algorithm { return &Algorithm{dispatcher: d} }

// Register adds a grid algorithm to r, for the grid displays.
func Register(r *layout.Registry) *Algorithm {
	algo := New(r)
	r.Register(pr.DisplayGrid, algo)
	r.Register(pr.DisplayInlineGrid, algo)
	return algo
}

// gridPayload is passed from Measure to Arrange
type gridPayload struct {
	tree *LayoutTree
}

// gridMeasure stores the state of one measure pass.
type gridMeasure struct {
	algo  *Algorithm
	node  *bo.Box
	space layout.ConstraintSpace

	// definite content size of the container
	size [2]utils.MaybeFloat
	gaps [2]Fl

	tree SizingTree
	// columnsTree is a snapshot taken once the columns are sized, used
	// to measure the subgrids sharing only the columns.
	columnsTree *LayoutTree
	// err is the first error returned by the dispatcher
	// when computing contributions
	err error
}

// Measure sizes the tracks of the grid, and returns the size of the container.
// The payload holds the sized tracks, for the container and its subgrids.
func (a *Algorithm) Measure(node *bo.Box, space layout.ConstraintSpace) (layout.MeasureResult, error) {
	m, err := a.measure(node, space, false)
	if err != nil {
		return layout.MeasureResult{}, err
	}
	root := m.tree.Root()
	logger.ProgressLogger.Debug("grid measured", "box", node,
		"columns", root.LayoutData.Columns.TrackCount(), "rows", root.LayoutData.Rows.TrackCount(),
		"width", m.size[Column].V, "height", m.size[Row].V)
	return layout.MeasureResult{
		Payload: &gridPayload{tree: m.tree.FinalizeTree()},
		Width:   m.size[Column].V,
		Height:  m.size[Row].V,
	}, nil
}

// MinMaxSizes returns the width of the grid, when its columns are
// sized under a min-content and a max-content constraint.
func (a *Algorithm) MinMaxSizes(node *bo.Box, space layout.ConstraintSpace) (layout.MinMaxSizes, error) {
	if w, ok := node.Style.Width.Resolve(0, false); ok {
		w = layout.ClampWidth(node, w, utils.MaybeFloat{})
		return layout.MinMaxSizes{Min: w, Max: w}, nil
	}
	space = space.WithSize(utils.MaybeFloat{}, utils.MaybeFloat{})
	space.Constraint = layout.MinContent
	min, err := a.measure(node, space, true)
	if err != nil {
		return layout.MinMaxSizes{}, err
	}
	space.Constraint = layout.MaxContent
	max, err := a.measure(node, space, true)
	if err != nil {
		return layout.MinMaxSizes{}, err
	}
	return layout.MinMaxSizes{Min: min.size[Column].V, Max: utils.MaxF(min.size[Column].V, max.size[Column].V)}, nil
}

func (a *Algorithm) measure(node *bo.Box, space layout.ConstraintSpace, columnsOnly bool) (*gridMeasure, error) {
	if !node.Style.Display.IsGrid() {
		return nil, fmt.Errorf("grid layout of %s: %w", node, layout.ErrContractViolation)
	}
	if wm := node.Style.WritingMode; !wm.IsHorizontal() {
		logger.WarningLogger.Warnf("Unsupported writing mode %s for grid %s, using horizontal-tb.", wm, node)
	}

	var inherited *SizingTreeNode
	if space.InheritedLayoutTree != nil {
		ig, ok := space.InheritedLayoutTree.(*InheritedGrid)
		if !ok {
			return nil, fmt.Errorf("invalid inherited layout tree %T: %w", space.InheritedLayoutTree, layout.ErrContractViolation)
		}
		parentNode := ig.Tree.Node(ig.Index)
		if parentNode.Container != node {
			return nil, fmt.Errorf("inherited layout tree node %d is not %s: %w", ig.Index, node, layout.ErrContractViolation)
		}
		inherited = &parentNode
	}

	m := &gridMeasure{algo: a, node: node, space: space}
	if err := m.resolveContainerWidth(); err != nil {
		return nil, err
	}
	if h, ok := layout.UsedHeight(node, space); ok {
		m.size[Row] = utils.Some(h)
	}
	style := &node.Style.Grid
	if gap, ok := style.ColumnGap.Resolve(m.size[Column].V, m.size[Column].Valid); ok {
		m.gaps[Column] = gap
	}
	if gap, ok := style.RowGap.Resolve(m.size[Row].V, m.size[Row].Valid); ok {
		m.gaps[Row] = gap
	}

	var subgridSpans [2]int
	if inherited != nil {
		for _, axis := range [2]Axis{Column, Row} {
			if inherited.Subgridded[axis] {
				subgridSpans[axis] = inherited.LayoutData.Tracks(axis).TrackCount()
			}
		}
	}
	root := setupGrid(node, subgridSpans, m.size, m.gaps, true)
	if inherited != nil {
		for _, axis := range [2]Axis{Column, Row} {
			if root.Subgridded[axis] {
				*root.LayoutData.Tracks(axis) = inherited.LayoutData.Tracks(axis).Clone()
			}
		}
	}
	m.tree.append(root)
	m.addSubgridNodes(0)
	m.tree.closeSubtree(0)

	m.sizeTracks(Column)
	if m.err != nil {
		return nil, m.err
	}
	columns := &m.tree.Root().LayoutData.Columns
	if !m.size[Column].Valid {
		m.size[Column] = utils.Some(layout.ClampWidth(node, columns.TotalBaseSize(), m.space.AvailableWidth))
	}
	if columnsOnly {
		return m, nil
	}
	if m.tree.Len() > 1 {
		m.inheritSubgridTracks(0)
		m.columnsTree = m.tree.FinalizeTree()
	}

	m.sizeTracks(Row)
	if m.err != nil {
		return nil, m.err
	}
	if !m.size[Row].Valid {
		rows := &m.tree.Root().LayoutData.Rows
		m.size[Row] = utils.Some(layout.ClampHeight(node, rows.TotalBaseSize(), m.space.AvailableHeight))
	}
	m.inheritSubgridTracks(0)
	return m, nil
}

// resolveContainerWidth sets the width of the container, if it does
// not depend on its columns.
func (m *gridMeasure) resolveContainerWidth() error {
	if w, ok := layout.UsedWidth(m.node, m.space); ok {
		m.size[Column] = utils.Some(w)
		return nil
	}
	available := m.space.AvailableWidth
	if m.space.Constraint != layout.Definite || !available.Valid {
		return nil
	}
	if m.node.Style.Display == pr.DisplayInlineGrid {
		// shrink-to-fit
		mm, err := m.algo.MinMaxSizes(m.node, m.space)
		if err != nil {
			return err
		}
		w := utils.MinF(mm.Max, utils.MaxF(mm.Min, available.V))
		m.size[Column] = utils.Some(layout.ClampWidth(m.node, w, available))
		return nil
	}
	m.size[Column] = utils.Some(layout.ClampWidth(m.node, available.V, available))
	return nil
}

// gridChildren returns the grid items of the container, wrapping
// text in anonymous blocks.
func gridChildren(container *bo.Box) []*bo.Box {
	children := container.InFlowChildren()
	for i, child := range children {
		if child.IsText() {
			children[i] = bo.AnonymousBlockFrom(container, child)
		}
	}
	return children
}

// setupGrid resolves and places the items of a grid container, and builds its
// tracks, which are not sized. A positive subgridSpans[axis] is the number of
// tracks inherited from the parent grid : the tracks of this axis are left empty,
// as are the ones of the other axis when ownTracks is false.
func setupGrid(container *bo.Box, subgridSpans [2]int, size [2]utils.MaybeFloat, gaps [2]Fl, ownTracks bool) SizingTreeNode {
	style := &container.Style.Grid
	var repetitions [2]int
	for _, axis := range [2]Axis{Column, Row} {
		if subgridSpans[axis] == 0 {
			template, _ := axisTemplate(style, axis)
			repetitions[axis] = autoRepetitions(template, size[axis], gaps[axis])
		}
	}
	resolver := NewLineResolver(style, repetitions[Column], repetitions[Row])
	for _, axis := range [2]Axis{Column, Row} {
		if subgridSpans[axis] > 0 {
			resolver.SetSubgridSpan(axis, subgridSpans[axis])
		}
	}

	children := gridChildren(container)
	items := make([]GridItemData, len(children))
	for i, child := range children {
		item := newGridItem(child, i, style)
		for _, axis := range [2]Axis{Column, Row} {
			span := resolver.ResolvePositionsFromStyle(&child.Style.Item, axis)
			if n := subgridSpans[axis]; n > 0 {
				span = clampSpan(span, n)
			}
			item.SetSpan(axis, span)
		}
		items[i] = item
	}

	placement := NewPlacement(style.AutoFlow, resolver.ExplicitGridTrackCount(Column), resolver.ExplicitGridTrackCount(Row))
	placement.RunAutoPlacement(items)

	node := SizingTreeNode{Container: container, GridItems: items, WritingMode: container.Style.WritingMode}
	for _, axis := range [2]Axis{Column, Row} {
		if n := subgridSpans[axis]; n > 0 {
			// the implicit grid of a subgridded axis can't grow
			for i := range items {
				items[i].SetSpan(axis, clampSpan(items[i].Span(axis), n))
				items[i].ResolvedPosition = NewGridArea(items[i].ColumnSpan, items[i].RowSpan)
			}
			node.Subgridded[axis] = true
			tracks := node.LayoutData.Tracks(axis)
			tracks.Axis, tracks.Gap = axis, gaps[axis]
			continue
		}
		if !ownTracks {
			node.LayoutData.Tracks(axis).Axis = axis
			continue
		}
		*node.LayoutData.Tracks(axis) = buildTrackCollection(axis, style, resolver, placement, items, size[axis], gaps[axis])
	}
	updateSpanProperties(&node)
	return node
}

// updateSpanProperties sets the span properties of the items, once
// the tracks are known.
func updateSpanProperties(node *SizingTreeNode) {
	for _, axis := range [2]Axis{Column, Row} {
		tracks := node.LayoutData.Tracks(axis)
		if tracks.TrackCount() == 0 {
			continue
		}
		for i := range node.GridItems {
			item := &node.GridItems[i]
			item.setSpanProperties(axis, tracks.SpanProperties(item.Span(axis)))
		}
	}
}

// addSubgridNodes appends the nodes of the subgrids of node i, recursively.
func (m *gridMeasure) addSubgridNodes(i int) {
	// the items are copied since appending may move the nodes
	items := m.tree.At(i).GridItems
	for _, item := range items {
		if !item.IsSubgrid {
			continue
		}
		var spans [2]int
		for _, axis := range [2]Axis{Column, Row} {
			if item.IsSubgridded(axis) {
				spans[axis] = item.Span(axis).Size
			}
		}
		var gaps [2]Fl
		for _, axis := range [2]Axis{Column, Row} {
			if item.IsSubgridded(axis) {
				gaps[axis] = m.tree.At(i).LayoutData.Tracks(axis).Gap
			}
		}
		// the axes which are not subgridded are sized when the subgrid
		// measures itself, and are left empty here
		child := setupGrid(item.Node, spans, [2]utils.MaybeFloat{}, gaps, false)
		child.Area = item.ResolvedPosition
		c := m.tree.append(child)
		m.addSubgridNodes(c)
		m.tree.closeSubtree(c)
	}
}

// inheritSubgridTracks copies the sized tracks of node i into the
// subgridded axis of its children, recursively.
func (m *gridMeasure) inheritSubgridTracks(i int) {
	for _, c := range m.tree.Children(i) {
		child, parent := m.tree.At(c), m.tree.At(i)
		for _, axis := range [2]Axis{Column, Row} {
			if !child.Subgridded[axis] {
				continue
			}
			span := child.Area.Span(axis)
			parentTracks := parent.LayoutData.Tracks(axis)
			if span.End > parentTracks.TrackCount() {
				continue
			}
			*child.LayoutData.Tracks(axis) = parentTracks.Slice(span.Start, span.End)
		}
		updateSpanProperties(child)
		m.inheritSubgridTracks(c)
	}
}

// constraint returns the sizing constraint and the available size for the axis.
func (m *gridMeasure) constraint(axis Axis) (layout.SizingConstraint, utils.MaybeFloat) {
	if m.size[axis].Valid {
		return layout.Definite, m.size[axis]
	}
	if axis == Column && m.space.Constraint != layout.Definite {
		return m.space.Constraint, utils.MaybeFloat{}
	}
	if axis == Column {
		return layout.MaxContent, utils.MaybeFloat{}
	}
	return layout.Definite, utils.MaybeFloat{}
}

// sizeTracks runs the track sizing algorithm for the root node.
func (m *gridMeasure) sizeTracks(axis Axis) {
	root := m.tree.Root()
	if root.Subgridded[axis] {
		return
	}
	items := make([]*GridItemData, len(root.GridItems))
	for i := range root.GridItems {
		items[i] = &root.GridItems[i]
	}
	constraint, available := m.constraint(axis)
	stretch := m.node.Style.Grid.JustifyContent.IsStretch()
	if axis == Row {
		stretch = m.node.Style.Grid.AlignContent.IsStretch()
	}
	contribution := m.columnContribution
	if axis == Row {
		contribution = m.rowContribution
	}
	ComputeUsedTrackSizes(contribution, root.LayoutData.Tracks(axis), items, constraint, available, stretch)
}

func (m *gridMeasure) itemSpace(item *GridItemData) layout.ConstraintSpace {
	return m.space.WithSize(utils.MaybeFloat{}, utils.MaybeFloat{}).ForChild(item.Node.Style)
}

// minMax returns the min-content and max-content widths of the item.
func (m *gridMeasure) minMax(item *GridItemData) (min, max Fl) {
	cache := &item.contributions[Column]
	if !cache.hasMinMax {
		mm, err := m.algo.dispatcher.MinMaxSizes(item.Node, m.itemSpace(item))
		if err != nil && m.err == nil {
			m.err = err
		}
		cache.minMax, cache.hasMinMax = [2]Fl{mm.Min, mm.Max}, true
	}
	return cache.minMax[0], cache.minMax[1]
}

// minimumContribution returns the automatic minimum size of the item, or its
// min-width (min-height)
func minimumContribution(item *GridItemData, axis Axis, contentSize Fl) Fl {
	style := &item.Node.Style
	minSize, size := style.MinWidth, style.Width
	if axis == Row {
		minSize, size = style.MinHeight, style.Height
	}
	if v, ok := minSize.Resolve(0, false); ok {
		return v
	}
	props := item.SpanProperties(axis)
	if !props.Has(HasAutoMinimumTrack) {
		return 0
	}
	if item.Span(axis).Size > 1 && props.Has(HasFlexibleTrack) {
		return 0
	}
	if v, ok := size.Resolve(0, false); ok {
		return v
	}
	return contentSize
}

func (m *gridMeasure) columnContribution(item *GridItemData, kind ContributionType) Fl {
	min, max := m.minMax(item)
	switch kind {
	case MinContentContribution:
		return min
	case MaxContentContribution:
		return max
	default:
		return minimumContribution(item, Column, min)
	}
}

// itemWidth returns the width of the item in a grid area of the given width.
func (m *gridMeasure) itemWidth(item *GridItemData, areaWidth Fl) Fl {
	area := utils.Some(areaWidth)
	if w, ok := item.Node.Style.Width.Resolve(areaWidth, true); ok {
		return layout.ClampWidth(item.Node, w, area)
	}
	if item.IsSubgrid || item.JustifySelf == pr.ItemStretch {
		return layout.ClampWidth(item.Node, areaWidth, area)
	}
	min, max := m.minMax(item)
	return layout.ClampWidth(item.Node, utils.MinF(max, utils.MaxF(min, areaWidth)), area)
}

// rowContribution lays out the item in its column area, which must be sized.
func (m *gridMeasure) rowContribution(item *GridItemData, kind ContributionType) Fl {
	cache := &item.contributions[Row]
	areaWidth := m.tree.Root().LayoutData.Columns.SpanBaseSize(item.ColumnSpan)
	if !cache.hasBlock || cache.blockWidth != areaWidth {
		space := m.itemSpace(item).WithFixedSize(utils.Some(m.itemWidth(item, areaWidth)), utils.MaybeFloat{})
		if item.HasSubgriddedColumns && !item.HasSubgriddedRows && m.columnsTree != nil {
			if index := m.columnsTree.subgridIndex(0, item.Node); index != -1 {
				space.InheritedLayoutTree = &InheritedGrid{Tree: m.columnsTree, Index: index}
			}
		}
		fr, err := m.algo.dispatcher.Layout(item.Node, space)
		if err != nil {
			if m.err == nil {
				m.err = err
			}
			fr = &layout.Fragment{}
		}
		cache.blockSize, cache.blockWidth, cache.hasBlock = fr.Height, areaWidth, true
	}
	if kind == MinimumContribution {
		return minimumContribution(item, Row, cache.blockSize)
	}
	return cache.blockSize
}

// Arrange positions the items in their grid areas, and applies the
// content and self alignment properties.
func (a *Algorithm) Arrange(node *bo.Box, space layout.ConstraintSpace, measured layout.MeasureResult) (*layout.Fragment, error) {
	payload, ok := measured.Payload.(*gridPayload)
	if !ok {
		return nil, fmt.Errorf("invalid grid payload %T: %w", measured.Payload, layout.ErrContractViolation)
	}
	root := payload.tree.Node(0)
	if root.Container != node {
		return nil, fmt.Errorf("grid payload measured for %s, not %s: %w", root.Container, node, layout.ErrContractViolation)
	}
	style := &node.Style.Grid
	columns, rows := &root.LayoutData.Columns, &root.LayoutData.Rows
	alignTracks(columns, style.JustifyContent, measured.Width)
	alignTracks(rows, style.AlignContent, measured.Height)
	rtl := node.Style.Direction == pr.RTL

	fragments := make([]*layout.Fragment, len(root.GridItems))
	rowStarts := make([]int, len(root.GridItems))
	isBaseline := make([]bool, len(root.GridItems))
	for i := range root.GridItems {
		item := &root.GridItems[i]
		x, width := columns.SpanOffset(item.ColumnSpan)
		y, height := rows.SpanOffset(item.RowSpan)
		if rtl {
			x = measured.Width - x - width
		}
		fr, err := a.layoutItem(item, space, width, height, payload.tree)
		if err != nil {
			return nil, err
		}
		dx := alignmentOffset(item.JustifySelf, width, fr.Width)
		if rtl {
			dx = utils.MaxF(width-fr.Width, 0) - dx
		}
		fr.X = x + dx
		fr.Y = y
		if item.AlignSelf == pr.ItemBaseline {
			isBaseline[i] = true
		} else {
			fr.Y += alignmentOffset(item.AlignSelf, height, fr.Height)
		}
		fragments[i], rowStarts[i] = fr, item.RowSpan.Start
	}
	alignBaselines(fragments, rowStarts, isBaseline)

	lines := &layout.GridLines{Columns: columns.LinePositions(), Rows: rows.LinePositions()}
	if rtl {
		for i, x := range lines.Columns {
			lines.Columns[i] = measured.Width - x
		}
	}
	logger.ProgressLogger.Debug("grid arranged", "box", node, "items", len(fragments))
	return &layout.Fragment{
		Box:      node,
		Grid:     lines,
		Width:    measured.Width,
		Height:   measured.Height,
		Baseline: gridBaseline(root.GridItems, fragments, isBaseline),
		Children: fragments,
	}, nil
}

// layoutItem lays out an item in a grid area of the given size
func (a *Algorithm) layoutItem(item *GridItemData, space layout.ConstraintSpace, areaWidth, areaHeight Fl, tree *LayoutTree) (*layout.Fragment, error) {
	style := item.Node.Style
	childSpace := space.WithSize(utils.Some(areaWidth), utils.Some(areaHeight)).ForChild(style)
	if item.IsSubgrid {
		childSpace = childSpace.WithFixedSize(utils.Some(areaWidth), utils.Some(areaHeight))
		if index := tree.subgridIndex(0, item.Node); index != -1 {
			childSpace.InheritedLayoutTree = &InheritedGrid{Tree: tree, Index: index}
		}
		return a.dispatcher.Layout(item.Node, childSpace)
	}

	m := gridMeasure{algo: a, space: space}
	childSpace.AvailableWidth = utils.Some(m.itemWidth(item, areaWidth))
	childSpace.IsFixedInlineSize = true
	if err := m.err; err != nil {
		return nil, err
	}
	if item.AlignSelf == pr.ItemStretch && style.Height.IsAuto() {
		childSpace.AvailableHeight = utils.Some(layout.ClampHeight(item.Node, areaHeight, utils.Some(areaHeight)))
		childSpace.IsFixedBlockSize = true
	}
	return a.dispatcher.Layout(item.Node, childSpace)
}

// gridBaseline returns the baseline of the first row : the one of its
// first baseline aligned item, or of its first item.
func gridBaseline(items []GridItemData, fragments []*layout.Fragment, isBaseline []bool) utils.MaybeFloat {
	firstRow := -1
	for _, item := range items {
		if firstRow == -1 || item.RowSpan.Start < firstRow {
			firstRow = item.RowSpan.Start
		}
	}
	best := -1
	for i, item := range items {
		if item.RowSpan.Start != firstRow {
			continue
		}
		switch {
		case best == -1:
			best = i
		case isBaseline[i] && !isBaseline[best]:
			best = i
		case isBaseline[i] == isBaseline[best] && item.ColumnSpan.Start < items[best].ColumnSpan.Start:
			best = i
		}
	}
	if best == -1 {
		return utils.MaybeFloat{}
	}
	fr := fragments[best]
	return utils.Some(fr.Y + fragmentBaseline(fr))
}
