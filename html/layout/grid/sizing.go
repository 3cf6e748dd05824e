package grid

import (
	"sort"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/html/layout"
	"github.com/benoitkugler/webgrid/utils"
)

// ContributionType selects which size of an item is used to size tracks.
type ContributionType uint8

const (
	// MinimumContribution is the smallest outer size the item can have,
	// resulting from its min-width (or automatic minimum size).
	MinimumContribution ContributionType = iota
	MinContentContribution
	MaxContentContribution
)

// ContributionFunc returns the size contribution of an item,
// on the axis being sized.
type ContributionFunc func(item *GridItemData, kind ContributionType) Fl

const epsilon = 1e-9

type trackSizer struct {
	tracks       *TrackCollection
	items        []*GridItemData
	contribution ContributionFunc
	constraint   layout.SizingConstraint
	available    utils.MaybeFloat
}

// ComputeUsedTrackSizes runs the track sizing algorithm on the collection,
// whose sets must have been initialized by [InitializeTrackSizes].
// [available] is the definite size of the grid container content box, if any.
// [stretch] tells if 'auto' tracks absorb the remaining free space.
func ComputeUsedTrackSizes(contribution ContributionFunc, collection *TrackCollection, items []*GridItemData,
	constraint layout.SizingConstraint, available utils.MaybeFloat, stretch bool,
) {
	if constraint != layout.Definite {
		available = utils.MaybeFloat{}
	}
	ts := trackSizer{tracks: collection, items: items, contribution: contribution, constraint: constraint, available: available}
	ts.resolveIntrinsicTrackSizes()
	ts.maximizeTracks()
	ts.expandFlexibleTracks()
	if stretch {
		ts.stretchAutoTracks()
	}
}

func (ts *trackSizer) span(item *GridItemData) GridSpan { return item.Span(ts.tracks.Axis) }

func (ts *trackSizer) properties(item *GridItemData) TrackSpanProperties {
	return item.SpanProperties(ts.tracks.Axis)
}

// minimumContribution is the contribution used for tracks with an
// 'auto' min sizing function : under a min-content or max-content
// constraint, the limited content contribution is used instead.
func (ts *trackSizer) minimumContribution(item *GridItemData, limit Fl) Fl {
	minimum := ts.contribution(item, MinimumContribution)
	var content Fl
	switch ts.constraint {
	case layout.MinContent:
		content = ts.contribution(item, MinContentContribution)
	case layout.MaxContent:
		content = ts.contribution(item, MaxContentContribution)
	default:
		return minimum
	}
	return utils.MaxF(utils.MinF(content, limit), minimum)
}

// fixedMaximum returns the limit used by the limited contributions
func fixedMaximum(fn pr.TrackSizingFunction) Fl {
	switch max := fn.MaxSizingFunction(); max.Kind {
	case pr.Fixed, pr.FitContent:
		return max.Value
	}
	return utils.Inf
}

func (ts *trackSizer) resolveIntrinsicTrackSizes() {
	sets := ts.tracks.Sets
	var spanning, flexible []*GridItemData

	// items spanning one non flexible track
	growth := make([]Fl, len(sets))
	hasGrowth := make([]bool, len(sets))
	for _, item := range ts.items {
		props := ts.properties(item)
		if props.Has(HasFlexibleTrack) {
			flexible = append(flexible, item)
			continue
		}
		if span := ts.span(item); span.Size != 1 {
			spanning = append(spanning, item)
			continue
		}
		if !props.Has(HasIntrinsicTrack) {
			continue
		}
		si := ts.tracks.SetIndexForTrack(ts.span(item).Start)
		set := &sets[si]
		switch set.SizingFunction.MinSizingFunction().Kind {
		case pr.MinContent:
			set.BaseSize = utils.MaxF(set.BaseSize, ts.contribution(item, MinContentContribution))
		case pr.MaxContent:
			set.BaseSize = utils.MaxF(set.BaseSize, ts.contribution(item, MaxContentContribution))
		case pr.Auto:
			set.BaseSize = utils.MaxF(set.BaseSize, ts.minimumContribution(item, fixedMaximum(set.SizingFunction)))
		}
		var contribution Fl
		switch max := set.SizingFunction.MaxSizingFunction(); max.Kind {
		case pr.MinContent:
			contribution = ts.contribution(item, MinContentContribution)
		case pr.MaxContent, pr.Auto:
			contribution = ts.contribution(item, MaxContentContribution)
		case pr.FitContent:
			contribution = utils.MinF(ts.contribution(item, MaxContentContribution), max.Value)
		default:
			continue
		}
		growth[si] = utils.MaxF(growth[si], contribution)
		hasGrowth[si] = true
	}
	for i := range sets {
		if hasGrowth[i] {
			sets[i].GrowthLimit = growth[i]
		}
		fixGrowthLimit(&sets[i])
	}

	// items spanning several tracks, by increasing span
	sort.SliceStable(spanning, func(i, j int) bool { return ts.span(spanning[i]).Size < ts.span(spanning[j]).Size })
	for start := 0; start < len(spanning); {
		end := start + 1
		for end < len(spanning) && ts.span(spanning[end]).Size == ts.span(spanning[start]).Size {
			end++
		}
		ts.accommodateSpanningItems(spanning[start:end], false)
		start = end
	}

	// items spanning flexible tracks, all at once
	if len(flexible) != 0 {
		ts.accommodateSpanningItems(flexible, true)
	}

	for i := range sets {
		if utils.IsInf(sets[i].GrowthLimit) {
			sets[i].GrowthLimit = sets[i].BaseSize
		}
	}
}

func fixGrowthLimit(set *TrackSet) {
	if set.GrowthLimit < set.BaseSize {
		set.GrowthLimit = set.BaseSize
	}
}

func minKind(set *TrackSet) pr.SizingKind { return set.SizingFunction.MinSizingFunction().Kind }

func maxKind(set *TrackSet) pr.SizingKind { return set.SizingFunction.MaxSizingFunction().Kind }

func hasIntrinsicMin(set *TrackSet) bool { return set.SizingFunction.MinSizingFunction().IsIntrinsic() }

func hasIntrinsicMax(set *TrackSet) bool { return set.SizingFunction.MaxSizingFunction().IsIntrinsic() }

func hasMaxContentMax(set *TrackSet) bool {
	switch maxKind(set) {
	case pr.MaxContent, pr.Auto, pr.FitContent:
		return true
	}
	return false
}

// accommodateSpanningItems increases the sizes of the tracks spanned by
// items having the same span. For flexible items, only the base sizes
// of the flexible tracks are increased, in proportion of their flex factor.
func (ts *trackSizer) accommodateSpanningItems(items []*GridItemData, flexible bool) {
	affected := func(filter func(set *TrackSet) bool) func(set *TrackSet) bool {
		if !flexible {
			return filter
		}
		return func(set *TrackSet) bool { return maxKind(set) == pr.Fr && filter(set) }
	}

	ts.distributeExtraSpace(items, affected(hasIntrinsicMin), MinimumContribution, false, flexible)
	ts.distributeExtraSpace(items, affected(func(set *TrackSet) bool {
		k := minKind(set)
		return k == pr.MinContent || k == pr.MaxContent
	}), MinContentContribution, false, flexible)
	ts.distributeExtraSpace(items, affected(func(set *TrackSet) bool {
		k := minKind(set)
		return k == pr.MaxContent || (k == pr.Auto && ts.constraint == layout.MaxContent)
	}), MaxContentContribution, false, flexible)
	for i := range ts.tracks.Sets {
		fixGrowthLimit(&ts.tracks.Sets[i])
	}
	if flexible {
		return
	}

	ts.distributeExtraSpace(items, hasIntrinsicMax, MinContentContribution, true, false)
	ts.distributeExtraSpace(items, hasMaxContentMax, MaxContentContribution, true, false)
	for i := range ts.tracks.Sets {
		ts.tracks.Sets[i].infinitelyGrowable = false
	}
}

// affectedSize returns the size of the set, used to compute the free space
func affectedSize(set *TrackSet, growthLimits bool) Fl {
	if growthLimits && !utils.IsInf(set.GrowthLimit) {
		return set.GrowthLimit
	}
	return set.BaseSize
}

// distributeExtraSpace increases the base sizes (or growth limits) of the
// affected sets spanned by each item, so that the sets fit the item contribution.
func (ts *trackSizer) distributeExtraSpace(items []*GridItemData, isAffected func(*TrackSet) bool,
	kind ContributionType, growthLimits, flexWeights bool,
) {
	sets := ts.tracks.Sets
	for i := range sets {
		sets[i].plannedIncrease = 0
	}
	var (
		indices          []int
		weights, caps    []Fl
		increases, extra []Fl
	)
	for _, item := range items {
		begin, end := ts.tracks.SetsInSpan(ts.span(item))
		indices = indices[:0]
		var spanned Fl
		for i := begin; i < end; i++ {
			spanned += affectedSize(&sets[i], growthLimits)
			if isAffected(&sets[i]) && !ts.tracks.isCollapsed(i) {
				indices = append(indices, i)
			}
		}
		if len(indices) == 0 {
			continue
		}
		spanned += ts.tracks.gapsFor(ts.tracks.sizedTrackCount(begin, end))

		var contribution Fl
		if kind == MinimumContribution {
			contribution = ts.minimumContribution(item, utils.Inf)
		} else {
			contribution = ts.contribution(item, kind)
		}
		space := contribution - spanned
		if space <= epsilon {
			continue
		}

		weights, caps, increases = weights[:0], caps[:0], increases[:0]
		totalFlex := Fl(0)
		for _, i := range indices {
			totalFlex += sets[i].SizingFunction.FlexFactor() * Fl(sets[i].TrackCount)
		}
		for _, i := range indices {
			set := &sets[i]
			w := Fl(set.TrackCount)
			if flexWeights && totalFlex > 0 {
				w *= set.SizingFunction.FlexFactor()
			}
			weights = append(weights, w)
			caps = append(caps, ts.distributionLimit(set, growthLimits)-affectedSize(set, growthLimits))
			increases = append(increases, 0)
		}
		space = distributeUpToLimits(space, weights, caps, increases)

		if space > epsilon {
			// beyond the limits, on a subset of the affected sets
			var selected func(set *TrackSet) bool
			switch {
			case growthLimits:
			case kind == MaxContentContribution:
				selected = hasMaxContentMax
			default:
				selected = hasIntrinsicMax
			}
			extra = extra[:0]
			hasSelected := false
			for _, i := range indices {
				if selected == nil || selected(&sets[i]) {
					hasSelected = true
				}
			}
			for k, i := range indices {
				if !hasSelected || selected == nil || selected(&sets[i]) {
					extra = append(extra, weights[k])
				} else {
					extra = append(extra, 0)
				}
			}
			var totalWeight Fl
			for _, w := range extra {
				totalWeight += w
			}
			if totalWeight > 0 {
				for k := range increases {
					increases[k] += space * extra[k] / totalWeight
				}
			}
		}

		for k, i := range indices {
			sets[i].plannedIncrease = utils.MaxF(sets[i].plannedIncrease, increases[k])
		}
	}

	for i := range sets {
		set := &sets[i]
		if set.plannedIncrease == 0 {
			continue
		}
		if !growthLimits {
			set.BaseSize += set.plannedIncrease
		} else if utils.IsInf(set.GrowthLimit) {
			set.GrowthLimit = set.BaseSize + set.plannedIncrease
			set.infinitelyGrowable = true
		} else {
			set.GrowthLimit += set.plannedIncrease
		}
		set.plannedIncrease = 0
	}
}

// distributionLimit returns the value the affected size may reach
// before the set is frozen.
func (ts *trackSizer) distributionLimit(set *TrackSet, growthLimits bool) Fl {
	fitContent := utils.Inf
	if max := set.SizingFunction.MaxSizingFunction(); max.Kind == pr.FitContent {
		fitContent = max.Value * Fl(set.TrackCount)
	}
	if !growthLimits {
		return utils.MinF(set.GrowthLimit, fitContent)
	}
	if !utils.IsInf(set.GrowthLimit) && !set.infinitelyGrowable {
		return set.GrowthLimit
	}
	return fitContent
}

// distributeUpToLimits shares space between the entries, in proportion of
// their weights, each entry being limited to its cap. It returns the space
// which could not be distributed.
func distributeUpToLimits(space Fl, weights, caps, increases []Fl) Fl {
	frozen := make([]bool, len(weights))
	for space > epsilon {
		var totalWeight Fl
		for k, w := range weights {
			if !frozen[k] {
				totalWeight += w
			}
		}
		if totalWeight <= 0 {
			break
		}
		// stop at the first entry reaching its cap
		share, limited := space/totalWeight, false
		for k, w := range weights {
			if frozen[k] || w <= 0 {
				continue
			}
			if room := (caps[k] - increases[k]) / w; room < share {
				share, limited = utils.MaxF(room, 0), true
			}
		}
		for k, w := range weights {
			if frozen[k] {
				continue
			}
			increases[k] += share * w
			space -= share * w
			if w > 0 && increases[k] >= caps[k]-epsilon {
				frozen[k] = true
			}
		}
		if !limited {
			return 0
		}
	}
	return utils.MaxF(space, 0)
}

// freeSpace returns the definite free space, or false.
func (ts *trackSizer) freeSpace() (Fl, bool) {
	if !ts.available.Valid {
		return 0, false
	}
	return ts.available.V - ts.tracks.TotalBaseSize(), true
}

func (ts *trackSizer) maximizeTracks() {
	sets := ts.tracks.Sets
	if ts.constraint == layout.MaxContent {
		for i := range sets {
			sets[i].BaseSize = sets[i].GrowthLimit
		}
		return
	}
	free, ok := ts.freeSpace()
	if !ok || free <= epsilon {
		return
	}
	weights, caps, increases := make([]Fl, len(sets)), make([]Fl, len(sets)), make([]Fl, len(sets))
	for i := range sets {
		if !ts.tracks.isCollapsed(i) {
			weights[i] = Fl(sets[i].TrackCount)
		}
		caps[i] = sets[i].GrowthLimit - sets[i].BaseSize
	}
	distributeUpToLimits(free, weights, caps, increases)
	for i := range sets {
		sets[i].BaseSize += increases[i]
	}
}

func (ts *trackSizer) expandFlexibleTracks() {
	sets := ts.tracks.Sets
	var flexSets []int
	for i := range sets {
		if maxKind(&sets[i]) == pr.Fr && !ts.tracks.isCollapsed(i) {
			flexSets = append(flexSets, i)
		}
	}
	if len(flexSets) == 0 || ts.constraint == layout.MinContent {
		return
	}

	var fr Fl
	if free, ok := ts.freeSpace(); ok {
		if free <= epsilon {
			return
		}
		fr = ts.findFrSize(0, len(sets), ts.available.V)
	} else {
		for _, i := range flexSets {
			set := &sets[i]
			if factor := set.SizingFunction.FlexFactor(); factor > 0 {
				fr = utils.MaxF(fr, set.TrackSize()/factor)
			}
		}
		for _, item := range ts.items {
			if !ts.properties(item).Has(HasFlexibleTrack) {
				continue
			}
			begin, end := ts.tracks.SetsInSpan(ts.span(item))
			fr = utils.MaxF(fr, ts.findFrSize(begin, end, ts.contribution(item, MaxContentContribution)))
		}
	}

	for _, i := range flexSets {
		set := &sets[i]
		if size := fr * set.SizingFunction.FlexFactor() * Fl(set.TrackCount); size > set.BaseSize {
			set.BaseSize = size
			set.GrowthLimit = size
		}
	}
}

// findFrSize returns the size of 1fr so that the sets [begin, end) fill
// spaceToFill, treating as inflexible the tracks whose base size is
// larger than their share.
func (ts *trackSizer) findFrSize(begin, end int, spaceToFill Fl) Fl {
	sets := ts.tracks.Sets
	inflexible := make([]bool, end-begin)
	gaps := ts.tracks.gapsFor(ts.tracks.sizedTrackCount(begin, end))
	for {
		leftover, totalFactor := spaceToFill-gaps, Fl(0)
		for i := begin; i < end; i++ {
			set := &sets[i]
			if maxKind(set) == pr.Fr && !inflexible[i-begin] {
				totalFactor += set.SizingFunction.FlexFactor() * Fl(set.TrackCount)
			} else {
				leftover -= set.BaseSize
			}
		}
		if totalFactor <= 0 {
			return 0
		}
		hypothetical := leftover / totalFactor
		restart := false
		for i := begin; i < end; i++ {
			set := &sets[i]
			if maxKind(set) != pr.Fr || inflexible[i-begin] {
				continue
			}
			if hypothetical*set.SizingFunction.FlexFactor() < set.TrackSize()-epsilon {
				inflexible[i-begin] = true
				restart = true
			}
		}
		if !restart {
			return utils.MaxF(hypothetical, 0)
		}
	}
}

func (ts *trackSizer) stretchAutoTracks() {
	free, ok := ts.freeSpace()
	if !ok || free <= epsilon {
		return
	}
	sets := ts.tracks.Sets
	count := 0
	for i := range sets {
		if maxKind(&sets[i]) == pr.Auto && !ts.tracks.isCollapsed(i) {
			count += sets[i].TrackCount
		}
	}
	if count == 0 {
		return
	}
	for i := range sets {
		set := &sets[i]
		if maxKind(set) == pr.Auto && !ts.tracks.isCollapsed(i) {
			set.BaseSize += free * Fl(set.TrackCount) / Fl(count)
			set.GrowthLimit = utils.MaxF(set.GrowthLimit, set.BaseSize)
		}
	}
}
