package grid

import (
	"math"
	"sort"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/utils"
)

// explicitTrack is one track of an expanded template
type explicitTrack struct {
	fn      pr.TrackSizingFunction
	autoFit bool
}

// expandTemplate expands the repeat() functions of the template.
func expandTemplate(template []pr.TrackSizingFunction, autoRepetitions int) []explicitTrack {
	var out []explicitTrack
	for _, tf := range template {
		if tf.Kind != pr.Repeat {
			out = append(out, explicitTrack{fn: tf})
			continue
		}
		count := tf.Count
		if tf.IsAutoRepeat() {
			count = autoRepetitions
		}
		for rep := 0; rep < count; rep++ {
			for _, track := range tf.Tracks {
				out = append(out, explicitTrack{fn: track, autoFit: tf.Count == pr.RepeatAutoFit})
			}
		}
	}
	return out
}

// resolvePercentages replaces the percentages of fn by lengths, or by
// 'auto' when basis is indefinite.
func resolvePercentages(fn pr.TrackSizingFunction, basis utils.MaybeFloat) pr.TrackSizingFunction {
	switch fn.Kind {
	case pr.Fixed:
		if fn.Percent {
			if !basis.Valid {
				return pr.NewAuto()
			}
			return pr.NewFixed(fn.Resolve(basis.V))
		}
	case pr.FitContent:
		if fn.Percent {
			limit := utils.Inf
			if basis.Valid {
				limit = fn.Resolve(basis.V)
			}
			return pr.TrackSizingFunction{Kind: pr.FitContent, Value: limit}
		}
	case pr.MinMax:
		return pr.NewMinMax(resolvePercentages(*fn.Min, basis), resolvePercentages(*fn.Max, basis))
	}
	return fn
}

// fixedTrackSize returns the size used to compute the number of auto
// repetitions
func fixedTrackSize(fn pr.TrackSizingFunction, basis Fl) Fl {
	if max := fn.MaxSizingFunction(); max.IsDefinite(utils.Some(basis)) {
		return max.Resolve(basis)
	}
	if min := fn.MinSizingFunction(); min.IsDefinite(utils.Some(basis)) {
		return min.Resolve(basis)
	}
	return 0
}

// autoRepetitions returns the number of repetitions of the auto repeat
// of template which fit in the available size, or 0 if there is no
// auto repeat.
func autoRepetitions(template []pr.TrackSizingFunction, available utils.MaybeFloat, gap Fl) int {
	repeatIndex := -1
	for i, tf := range template {
		if tf.IsAutoRepeat() {
			repeatIndex = i
		}
	}
	if repeatIndex == -1 {
		return 0
	}
	if !available.Valid {
		return 1
	}

	var (
		others     Fl
		otherCount int
	)
	for i, tf := range template {
		if i == repeatIndex {
			continue
		}
		if tf.Kind == pr.Repeat {
			for _, track := range tf.Tracks {
				others += Fl(tf.Count) * fixedTrackSize(track, available.V)
			}
			otherCount += tf.Count * len(tf.Tracks)
		} else {
			others += fixedTrackSize(tf, available.V)
			otherCount++
		}
	}
	repeat := template[repeatIndex]
	var repetitionSize Fl
	for _, track := range repeat.Tracks {
		repetitionSize += fixedTrackSize(track, available.V) + gap
	}
	if repetitionSize <= 0 {
		return 1
	}
	// n repetitions of m tracks add n*m tracks, and as many gaps
	free := available.V - others - Fl(otherCount-1)*gap
	return utils.MaxInt(1, int(math.Floor(free/repetitionSize+epsilon)))
}

// axisTemplate returns the template and implicit track sizes of an axis
func axisTemplate(style *pr.GridStyle, axis Axis) (template, auto []pr.TrackSizingFunction) {
	if axis == Row {
		return style.TemplateRows, style.AutoRows
	}
	return style.TemplateColumns, style.AutoColumns
}

// trackFunctions returns the sizing function of each track of the grid,
// with the auto-fit and implicit flags.
func trackFunctions(explicit []explicitTrack, auto []pr.TrackSizingFunction, explicitCount, offset, trackCount int) ([]explicitTrack, []bool) {
	fns := make([]explicitTrack, trackCount)
	implicit := make([]bool, trackCount)
	autoAt := func(i int) pr.TrackSizingFunction {
		if len(auto) == 0 {
			return pr.NewAuto()
		}
		return auto[((i%len(auto))+len(auto))%len(auto)]
	}
	for i := range fns {
		j := i - offset
		switch {
		case j < 0:
			// the last implicit track before the explicit grid uses the last auto size
			fns[i], implicit[i] = explicitTrack{fn: autoAt(j)}, true
		case j < len(explicit):
			fns[i] = explicit[j]
		default:
			fns[i] = explicitTrack{fn: autoAt(j - len(explicit))}
			implicit[i] = j >= explicitCount
		}
	}
	return fns, implicit
}

// buildTrackCollection returns the tracks of one axis, split in ranges
// at each item edge. Empty auto-fit tracks are collapsed.
func buildTrackCollection(axis Axis, style *pr.GridStyle, resolver *LineResolver, placement *Placement,
	items []GridItemData, basis utils.MaybeFloat, gap Fl,
) TrackCollection {
	template, auto := axisTemplate(style, axis)
	explicitCount, offset := resolver.ExplicitGridTrackCount(axis), placement.Offset[axis]
	trackCount := placement.TrackCount[axis]
	fns, implicit := trackFunctions(expandTemplate(template, resolver.AutoRepetitions(axis)), auto, explicitCount, offset, trackCount)

	covered := make([]bool, trackCount)
	boundaries := map[int]bool{0: true, trackCount: true}
	for _, line := range [2]int{offset, offset + explicitCount} {
		if line < trackCount {
			boundaries[line] = true
		}
	}
	for i := range items {
		span := items[i].Span(axis)
		boundaries[span.Start], boundaries[span.End] = true, true
		for t := span.Start; t < span.End; t++ {
			covered[t] = true
		}
	}
	for i, fn := range fns {
		if fn.autoFit {
			boundaries[i], boundaries[i+1] = true, true
		}
	}
	lines := make([]int, 0, len(boundaries))
	for line := range boundaries {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	out := TrackCollection{Gap: gap, Axis: axis}
	for k := 0; k+1 < len(lines); k++ {
		start, end := lines[k], lines[k+1]
		r := TrackRange{StartLine: start, TrackCount: end - start, BeginSetIndex: len(out.Sets)}
		collapsed := fns[start].autoFit && !covered[start]
		if collapsed {
			r.Properties |= IsCollapsed
		}
		if implicit[start] {
			r.Properties |= IsImplicit
		}
		for t := start; t < end; {
			fn := resolvePercentages(fns[t].fn, basis)
			if collapsed {
				fn = pr.NewFixed(0)
			}
			next := t + 1
			for next < end && fns[next].fn.Equal(fns[t].fn) {
				next++
			}
			set := TrackSet{SizingFunction: fn, TrackCount: next - t}
			r.Properties |= set.properties()
			out.Sets = append(out.Sets, set)
			t = next
		}
		r.SetCount = len(out.Sets) - r.BeginSetIndex
		out.Ranges = append(out.Ranges, r)
	}
	InitializeTrackSizes(&out)
	return out
}

// clampSpan restricts a span to the n tracks of a subgridded axis
func clampSpan(span GridSpan, n int) GridSpan {
	if span.IsIndefinite() {
		return NewIndefiniteSpan(utils.MinInt(span.Size, n))
	}
	start := utils.MaxInt(0, utils.MinInt(span.Start, n-1))
	end := utils.MaxInt(start+1, utils.MinInt(span.End, n))
	return GridSpan{Start: start, End: end, Size: end - start}
}
