package grid

import (
	"sort"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/utils"
)

type cell struct{ row, column int }

// Placement runs the grid item placement algorithm : items with a definite
// position are placed first, then the items definite on exactly one axis,
// and finally the remaining items, with an auto-placement cursor.
type Placement struct {
	occupied map[cell]bool

	// Offset is the number of implicit tracks created before the
	// explicit grid, by negative line indices. Resolved areas are
	// translated by Offset, so that they are never negative.
	Offset [2]int
	// TrackCount is the number of tracks of the implicit grid, including
	// the explicit grid.
	TrackCount [2]int

	flow     pr.AutoFlow
	explicit [2]int
	// major is the axis along which the cursor wraps : rows for
	// 'grid-auto-flow: row'.
	major, minor Axis
}

// NewPlacement returns a placement for an explicit grid of the given size.
func NewPlacement(flow pr.AutoFlow, explicitColumns, explicitRows int) *Placement {
	p := &Placement{
		occupied: map[cell]bool{},
		flow:     flow,
		explicit: [2]int{explicitColumns, explicitRows},
		major:    Row,
		minor:    Column,
	}
	if flow.Column {
		p.major, p.minor = Column, Row
	}
	return p
}

// cellAt builds a cell from its major and minor coordinates
func (p *Placement) cellAt(majorLine, minorLine int) cell {
	if p.major == Row {
		return cell{row: majorLine, column: minorLine}
	}
	return cell{row: minorLine, column: majorLine}
}

func (p *Placement) isFree(major, minor GridSpan) bool {
	// the corners are the most likely to collide
	if p.occupied[p.cellAt(major.Start, minor.Start)] || p.occupied[p.cellAt(major.End-1, minor.End-1)] ||
		p.occupied[p.cellAt(major.Start, minor.End-1)] || p.occupied[p.cellAt(major.End-1, minor.Start)] {
		return false
	}
	for i := major.Start; i < major.End; i++ {
		for j := minor.Start; j < minor.End; j++ {
			if p.occupied[p.cellAt(i, j)] {
				return false
			}
		}
	}
	return true
}

func (p *Placement) occupy(item *GridItemData) {
	major, minor := item.Span(p.major), item.Span(p.minor)
	for i := major.Start; i < major.End; i++ {
		for j := minor.Start; j < minor.End; j++ {
			p.occupied[p.cellAt(i, j)] = true
		}
	}
	for _, axis := range [2]Axis{Column, Row} {
		p.TrackCount[axis] = utils.MaxInt(p.TrackCount[axis], item.Span(axis).End)
	}
}

// RunAutoPlacement places the items, whose spans have been resolved by a
// [LineResolver], and returns their areas, in the same order.
// The items spans are updated with the translated, definite spans.
func (p *Placement) RunAutoPlacement(items []GridItemData) []GridArea {
	// order-modified document order
	sorted := make([]*GridItemData, len(items))
	for i := range items {
		sorted[i] = &items[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	// negative lines create implicit tracks before the explicit grid
	for _, item := range sorted {
		for _, axis := range [2]Axis{Column, Row} {
			if span := item.Span(axis); !span.IsIndefinite() && span.Start < -p.Offset[axis] {
				p.Offset[axis] = -span.Start
			}
		}
	}
	for _, item := range sorted {
		for _, axis := range [2]Axis{Column, Row} {
			if span := item.Span(axis); !span.IsIndefinite() {
				item.SetSpan(axis, span.Translate(p.Offset[axis]))
			}
		}
	}
	p.TrackCount = [2]int{p.explicit[Column] + p.Offset[Column], p.explicit[Row] + p.Offset[Row]}

	// 1. items with a definite position
	var locked, remaining []*GridItemData
	for _, item := range sorted {
		definiteColumn, definiteRow := !item.ColumnSpan.IsIndefinite(), !item.RowSpan.IsIndefinite()
		switch {
		case definiteColumn && definiteRow:
			p.occupy(item)
		case definiteColumn || definiteRow:
			locked = append(locked, item)
		default:
			remaining = append(remaining, item)
		}
	}

	// 2. items locked to a line of one axis
	p.placeLocked(locked)

	// 3. items indefinite on both axes, once the number of minor tracks is fixed
	for _, item := range remaining {
		p.TrackCount[p.minor] = utils.MaxInt(p.TrackCount[p.minor], item.Span(p.minor).Size)
	}
	p.placeRemaining(remaining)

	out := make([]GridArea, len(items))
	for i := range items {
		items[i].ResolvedPosition = NewGridArea(items[i].ColumnSpan, items[i].RowSpan)
		out[i] = items[i].ResolvedPosition
	}
	return out
}

func spanAt(start, size int) GridSpan { return GridSpan{Start: start, End: start + size, Size: size} }

// placeLocked searches the indefinite axis of items definite on the other one.
// Items locked to a major line search their minor position, after the
// previous item locked to the same line in sparse mode. Items locked to a
// minor line search their major position, with a cursor which never goes
// back in sparse mode. The dense mode always starts from the first track.
func (p *Placement) placeLocked(items []*GridItemData) {
	lineCursors := map[int]int{}
	var cursorMajor, cursorMinor int
	for _, item := range items {
		major, minor := item.Span(p.major), item.Span(p.minor)
		if !major.IsIndefinite() {
			start := 0
			if !p.flow.Dense {
				start = lineCursors[major.Start]
			}
			for !p.isFree(major, spanAt(start, minor.Size)) {
				start++
			}
			minor = spanAt(start, minor.Size)
			lineCursors[major.Start] = minor.End
		} else {
			if p.flow.Dense {
				cursorMajor = 0
			} else if minor.Start < cursorMinor {
				cursorMajor++
			}
			for !p.isFree(spanAt(cursorMajor, major.Size), minor) {
				cursorMajor++
			}
			major = spanAt(cursorMajor, major.Size)
			cursorMinor = minor.Start
		}
		item.SetSpan(p.major, major)
		item.SetSpan(p.minor, minor)
		p.occupy(item)
	}
}

// placeRemaining places the items indefinite on both axes, with a cursor
// moving along the minor axis, and wrapping to the next major line.
func (p *Placement) placeRemaining(items []*GridItemData) {
	var cursorMajor, cursorMinor int
	minorCount := p.TrackCount[p.minor]
	for _, item := range items {
		major, minor := item.Span(p.major), item.Span(p.minor)
		if p.flow.Dense {
			cursorMajor, cursorMinor = 0, 0
		}
		for {
			if cursorMinor+minor.Size > minorCount {
				cursorMajor++
				cursorMinor = 0
				continue
			}
			candidateMajor, candidateMinor := spanAt(cursorMajor, major.Size), spanAt(cursorMinor, minor.Size)
			if p.isFree(candidateMajor, candidateMinor) {
				item.SetSpan(p.major, candidateMajor)
				item.SetSpan(p.minor, candidateMinor)
				break
			}
			cursorMinor++
		}
		if !p.flow.Dense {
			cursorMinor += minor.Size
		}
		p.occupy(item)
	}
}
