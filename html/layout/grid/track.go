package grid

import (
	"fmt"
	"sort"
	"strings"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/utils"
)

// TrackSet is a run of consecutive tracks sharing the same sizing
// function. BaseSize and GrowthLimit are the totals for the whole set,
// so that each track has size BaseSize / TrackCount.
type TrackSet struct {
	SizingFunction pr.TrackSizingFunction

	BaseSize, GrowthLimit Fl
	TrackCount            int

	// scratch space for the sizing algorithm
	plannedIncrease    Fl
	infinitelyGrowable bool

	// offset of the first track, computed by [TrackCollection.ComputeOffsets]
	offset Fl
}

// TrackSize returns the size of one track of the set.
func (ts *TrackSet) TrackSize() Fl { return ts.BaseSize / Fl(ts.TrackCount) }

func (ts *TrackSet) properties() TrackSpanProperties {
	var props TrackSpanProperties
	min, max := ts.SizingFunction.MinSizingFunction(), ts.SizingFunction.MaxSizingFunction()
	if min.IsIntrinsic() || max.IsIntrinsic() {
		props |= HasIntrinsicTrack
	}
	if max.Kind == pr.Fr {
		props |= HasFlexibleTrack
	}
	if min.Kind == pr.Auto {
		props |= HasAutoMinimumTrack
	}
	if max.Kind == pr.Fixed {
		props |= HasFixedMaximumTrack
	}
	return props
}

// TrackRange is a run of consecutive tracks spanned by exactly the
// same items. Ranges are split at every item edge, so that an item
// always covers whole ranges.
type TrackRange struct {
	StartLine, TrackCount int
	// BeginSetIndex and SetCount locate the sets of the range in
	// [TrackCollection.Sets].
	BeginSetIndex, SetCount int
	Properties              TrackSpanProperties
}

// EndLine returns the line after the last track.
func (tr TrackRange) EndLine() int { return tr.StartLine + tr.TrackCount }

// TrackCollection holds the tracks of one axis of a grid.
type TrackCollection struct {
	Ranges []TrackRange
	Sets   []TrackSet
	// Gap is the gutter between two consecutive (not collapsed) tracks.
	Gap  Fl
	Axis Axis

	// usedGap is Gap, plus the space added by content distribution
	usedGap Fl
}

// TrackCount returns the number of tracks.
func (tc *TrackCollection) TrackCount() int {
	if len(tc.Ranges) == 0 {
		return 0
	}
	return tc.Ranges[len(tc.Ranges)-1].EndLine()
}

// RangeIndexForLine returns the index of the range containing the track
// starting at line, which must be in [0, TrackCount()).
func (tc *TrackCollection) RangeIndexForLine(line int) int {
	return sort.Search(len(tc.Ranges), func(i int) bool { return tc.Ranges[i].EndLine() > line })
}

// SetIndexForTrack returns the index of the set containing the track.
func (tc *TrackCollection) SetIndexForTrack(track int) int {
	r := tc.Ranges[tc.RangeIndexForLine(track)]
	line := r.StartLine
	for i := r.BeginSetIndex; i < r.BeginSetIndex+r.SetCount; i++ {
		line += tc.Sets[i].TrackCount
		if track < line {
			return i
		}
	}
	panic(fmt.Sprintf("grid: track %d not found in range %v", track, r))
}

// SetsInSpan returns the sets [begin, end) covered by the span.
func (tc *TrackCollection) SetsInSpan(span GridSpan) (begin, end int) {
	first := tc.Ranges[tc.RangeIndexForLine(span.Start)]
	last := tc.Ranges[tc.RangeIndexForLine(span.End-1)]
	return first.BeginSetIndex, last.BeginSetIndex + last.SetCount
}

// SpanProperties returns the union of the properties of the ranges
// covered by the span.
func (tc *TrackCollection) SpanProperties(span GridSpan) TrackSpanProperties {
	var props TrackSpanProperties
	for i := tc.RangeIndexForLine(span.Start); i < len(tc.Ranges) && tc.Ranges[i].StartLine < span.End; i++ {
		props |= tc.Ranges[i].Properties
	}
	return props
}

func (tc *TrackCollection) isCollapsed(set int) bool {
	// sets are sorted, as ranges are
	i := sort.Search(len(tc.Ranges), func(i int) bool {
		r := tc.Ranges[i]
		return r.BeginSetIndex+r.SetCount > set
	})
	return tc.Ranges[i].Properties.Has(IsCollapsed)
}

// sizedTrackCount returns the number of tracks which are not collapsed,
// in the sets [begin, end)
func (tc *TrackCollection) sizedTrackCount(begin, end int) int {
	n := 0
	for i := begin; i < end; i++ {
		if !tc.isCollapsed(i) {
			n += tc.Sets[i].TrackCount
		}
	}
	return n
}

func (tc *TrackCollection) gapsFor(trackCount int) Fl {
	if trackCount <= 1 {
		return 0
	}
	return Fl(trackCount-1) * tc.Gap
}

// TotalBaseSize returns the sum of the base sizes, including the gaps.
func (tc *TrackCollection) TotalBaseSize() Fl {
	var total Fl
	for i := range tc.Sets {
		total += tc.Sets[i].BaseSize
	}
	return total + tc.gapsFor(tc.sizedTrackCount(0, len(tc.Sets)))
}

// SpanBaseSize returns the size of the tracks spanned, including the
// gaps between them.
func (tc *TrackCollection) SpanBaseSize(span GridSpan) Fl {
	begin, end := tc.SetsInSpan(span)
	var total Fl
	count := 0
	for i := begin; i < end; i++ {
		set := &tc.Sets[i]
		n := overlap(tc.setStartLine(i), set.TrackCount, span)
		total += set.TrackSize() * Fl(n)
		if !tc.isCollapsed(i) {
			count += n
		}
	}
	return total + tc.gapsFor(count)
}

// overlap returns the number of tracks of [start, start+count) in span
func overlap(start, count int, span GridSpan) int {
	return utils.MaxInt(0, utils.MinInt(start+count, span.End)-utils.MaxInt(start, span.Start))
}

func (tc *TrackCollection) setStartLine(set int) int {
	i := sort.Search(len(tc.Ranges), func(i int) bool {
		r := tc.Ranges[i]
		return r.BeginSetIndex+r.SetCount > set
	})
	r := tc.Ranges[i]
	line := r.StartLine
	for j := r.BeginSetIndex; j < set; j++ {
		line += tc.Sets[j].TrackCount
	}
	return line
}

// ComputeOffsets sets the position of each track, starting at origin.
// extraGap is added to the gap, for distributed content alignment.
// Collapsed tracks have no size, and no gaps around them.
func (tc *TrackCollection) ComputeOffsets(origin, extraGap Fl) {
	pos, gap := origin, tc.Gap+extraGap
	hasPrevious := false
	for i := range tc.Sets {
		set := &tc.Sets[i]
		if tc.isCollapsed(i) {
			set.offset = pos
			continue
		}
		if hasPrevious {
			pos += gap
		}
		set.offset = pos
		pos += set.BaseSize + Fl(set.TrackCount-1)*gap
		hasPrevious = true
	}
	tc.usedGap = gap
}

// TrackStart returns the offset of the start edge of the track,
// as computed by the last call to ComputeOffsets.
// It panics if track is out of range.
func (tc *TrackCollection) TrackStart(track int) Fl {
	si := tc.SetIndexForTrack(track)
	set := &tc.Sets[si]
	if tc.isCollapsed(si) {
		return set.offset
	}
	k := track - tc.setStartLine(si)
	return set.offset + Fl(k)*(set.TrackSize()+tc.usedGap)
}

// TrackEnd returns the offset of the end edge of the track.
func (tc *TrackCollection) TrackEnd(track int) Fl {
	si := tc.SetIndexForTrack(track)
	return tc.TrackStart(track) + tc.Sets[si].TrackSize()
}

// SpanOffset returns the start and the size of the area covered by the span.
func (tc *TrackCollection) SpanOffset(span GridSpan) (start, size Fl) {
	start = tc.TrackStart(span.Start)
	return start, tc.TrackEnd(span.End-1) - start
}

// LinePositions returns the offset of each line. A line with a gutter
// has two positions : the end edge of the previous track and the
// start edge of the next one.
func (tc *TrackCollection) LinePositions() []Fl {
	n := tc.TrackCount()
	if n == 0 {
		return nil
	}
	out := make([]Fl, 0, 2*n)
	for i := 0; i < n; i++ {
		start := tc.TrackStart(i)
		if i > 0 {
			if end := tc.TrackEnd(i - 1); end != start {
				out = append(out, end)
			}
		}
		out = append(out, start)
	}
	return append(out, tc.TrackEnd(n-1))
}

// TrackSizes returns the size of each individual track.
func (tc *TrackCollection) TrackSizes() []Fl {
	var out []Fl
	for _, set := range tc.Sets {
		for k := 0; k < set.TrackCount; k++ {
			out = append(out, set.TrackSize())
		}
	}
	return out
}

// Clone returns a deep copy.
func (tc *TrackCollection) Clone() TrackCollection {
	return TrackCollection{
		Ranges:  append([]TrackRange(nil), tc.Ranges...),
		Sets:    append([]TrackSet(nil), tc.Sets...),
		Gap:     tc.Gap,
		Axis:    tc.Axis,
		usedGap: tc.usedGap,
	}
}

// Slice returns the sized tracks in [start, end), re-indexed from zero.
// It is used to share the tracks of a grid with a subgrid.
func (tc *TrackCollection) Slice(start, end int) TrackCollection {
	out := TrackCollection{Gap: tc.Gap, Axis: tc.Axis}
	span := GridSpan{Start: start, End: end, Size: end - start}
	for _, r := range tc.Ranges {
		line := r.StartLine
		for si := r.BeginSetIndex; si < r.BeginSetIndex+r.SetCount; si++ {
			set := tc.Sets[si]
			n := overlap(line, set.TrackCount, span)
			if n != 0 {
				sliced := set
				sliced.TrackCount = n
				sliced.BaseSize = set.TrackSize() * Fl(n)
				sliced.GrowthLimit = sliced.BaseSize
				out.Ranges = append(out.Ranges, TrackRange{
					StartLine:     utils.MaxInt(line, start) - start,
					TrackCount:    n,
					BeginSetIndex: len(out.Sets),
					SetCount:      1,
					Properties:    r.Properties &^ IsImplicit,
				})
				out.Sets = append(out.Sets, sliced)
			}
			line += set.TrackCount
		}
	}
	return out
}

func (tc *TrackCollection) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s tracks (gap %g):\n", tc.Axis, tc.Gap)
	for _, r := range tc.Ranges {
		fmt.Fprintf(&s, "  range [%d, %d) %s\n", r.StartLine, r.EndLine(), r.Properties)
		for _, set := range tc.Sets[r.BeginSetIndex : r.BeginSetIndex+r.SetCount] {
			fmt.Fprintf(&s, "    %d x %s : base %g, limit %g\n", set.TrackCount, set.SizingFunction, set.BaseSize, set.GrowthLimit)
		}
	}
	return s.String()
}

// InitializeTrackSizes sets the base sizes and growth limits from the
// sizing functions, before the intrinsic sizes are resolved.
func InitializeTrackSizes(tc *TrackCollection) {
	for i := range tc.Sets {
		set := &tc.Sets[i]
		n := Fl(set.TrackCount)
		set.BaseSize, set.GrowthLimit = 0, utils.Inf
		if min := set.SizingFunction.MinSizingFunction(); min.Kind == pr.Fixed {
			set.BaseSize = min.Value * n
		}
		if max := set.SizingFunction.MaxSizingFunction(); max.Kind == pr.Fixed {
			set.GrowthLimit = max.Value * n
		}
		if set.GrowthLimit < set.BaseSize {
			set.GrowthLimit = set.BaseSize
		}
		set.infinitelyGrowable = false
	}
}
