package grid

import (
	"testing"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/html/layout"
	"github.com/benoitkugler/webgrid/utils"
	tu "github.com/benoitkugler/webgrid/utils/testutils"
)

// fixedContributions are the contributions of an item, by ContributionType
type fixedContributions map[*GridItemData][3]Fl

func (fc fixedContributions) contribution(item *GridItemData, kind ContributionType) Fl {
	return fc[item][kind]
}

// newColumns builds the column tracks for the given items, which must
// have definite column spans
func newColumns(gap Fl, basis utils.MaybeFloat, items []GridItemData, fns ...pr.TrackSizingFunction) TrackCollection {
	style := pr.GridStyle{TemplateColumns: fns}
	resolver := NewLineResolver(&style, 0, 0)
	for i := range items {
		items[i].RowSpan = NewIndefiniteSpan(1)
	}
	placement := NewPlacement(pr.AutoFlow{}, len(fns), 0)
	placement.RunAutoPlacement(items)
	tc := buildTrackCollection(Column, &style, resolver, placement, items, basis, gap)
	for i := range items {
		items[i].ColumnSpanProperties = tc.SpanProperties(items[i].ColumnSpan)
	}
	return tc
}

func pointers(items []GridItemData) []*GridItemData {
	out := make([]*GridItemData, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

func noContribution(*GridItemData, ContributionType) Fl { return 0 }

func TestFrDistribution(t *testing.T) {
	for _, test := range []struct {
		fns       []pr.TrackSizingFunction
		gap       Fl
		available Fl
		expected  []Fl
	}{
		{[]pr.TrackSizingFunction{pr.NewFr(1), pr.NewFr(1)}, 0, 600, []Fl{300, 300}},
		{[]pr.TrackSizingFunction{pr.NewFr(1), pr.NewFr(3)}, 0, 400, []Fl{100, 300}},
		{[]pr.TrackSizingFunction{px(100), pr.NewFr(1)}, 10, 400, []Fl{100, 290}},
		// the free space is shared in proportion of the flex factors
		{[]pr.TrackSizingFunction{pr.NewFr(0.25)}, 0, 400, []Fl{400}},
		{[]pr.TrackSizingFunction{pr.NewFr(0.5)}, 0, 400, []Fl{400}},
		{[]pr.TrackSizingFunction{pr.NewFr(0.25), pr.NewFr(0.75)}, 0, 400, []Fl{100, 300}},
		{[]pr.TrackSizingFunction{pr.NewFr(0), px(50)}, 0, 400, []Fl{0, 50}},
		// minimums larger than the free space
		{[]pr.TrackSizingFunction{pr.NewMinMax(px(100), pr.NewFr(1)), pr.NewMinMax(px(100), pr.NewFr(1))}, 0, 150, []Fl{100, 100}},
		{[]pr.TrackSizingFunction{pr.NewMinMax(px(250), pr.NewFr(1)), pr.NewFr(1)}, 0, 400, []Fl{250, 150}},
		// boundaries
		{[]pr.TrackSizingFunction{pr.NewFr(1), px(20)}, 0, -50, []Fl{0, 20}},
		{[]pr.TrackSizingFunction{px(1e6), pr.NewFr(1)}, 0, 10, []Fl{1e6, 0}},
	} {
		tc := newColumns(test.gap, utils.Some(test.available), nil, test.fns...)
		ComputeUsedTrackSizes(noContribution, &tc, nil, layout.Definite, utils.Some(test.available), true)
		tu.AssertEqual(t, tc.TrackSizes(), test.expected)
		for _, size := range tc.TrackSizes() {
			if size < 0 {
				t.Fatalf("negative track size in %v", tc.TrackSizes())
			}
		}
	}
}

func TestIntrinsicSizes(t *testing.T) {
	items := []GridItemData{
		{ColumnSpan: line(0, 1)},
		{ColumnSpan: line(0, 2)},
	}
	contributions := fixedContributions{
		&items[0]: {10, 10, 50},
		&items[1]: {30, 30, 200},
	}
	newTracks := func() TrackCollection {
		return newColumns(0, utils.MaybeFloat{}, items, pr.NewAuto(), pr.NewAuto())
	}

	tc := newTracks()
	ComputeUsedTrackSizes(contributions.contribution, &tc, pointers(items), layout.Definite, utils.Some(100), false)
	tu.AssertEqual(t, tc.TrackSizes(), []Fl{50, 50})

	tc = newTracks()
	ComputeUsedTrackSizes(contributions.contribution, &tc, pointers(items), layout.MaxContent, utils.MaybeFloat{}, false)
	tu.AssertEqual(t, tc.TrackSizes(), []Fl{50, 150})

	tc = newTracks()
	ComputeUsedTrackSizes(contributions.contribution, &tc, pointers(items), layout.MinContent, utils.MaybeFloat{}, false)
	tu.AssertEqual(t, tc.TrackSizes(), []Fl{20, 10})

	// stretched auto tracks
	tc = newTracks()
	ComputeUsedTrackSizes(contributions.contribution, &tc, pointers(items), layout.Definite, utils.Some(300), true)
	tu.AssertEqual(t, tc.TrackSizes(), []Fl{100, 200})
}

func TestContentSizedTracks(t *testing.T) {
	items := []GridItemData{
		{ColumnSpan: line(0, 1)},
		{ColumnSpan: line(1, 1)},
		{ColumnSpan: line(2, 1)},
	}
	contributions := fixedContributions{
		&items[0]: {5, 20, 60},
		&items[1]: {5, 20, 60},
		&items[2]: {5, 20, 60},
	}
	tc := newColumns(0, utils.MaybeFloat{}, items, pr.NewMinContent(), pr.NewMaxContent(), pr.NewFitContent(px(40)))
	ComputeUsedTrackSizes(contributions.contribution, &tc, pointers(items), layout.Definite, utils.Some(1000), false)
	tu.AssertEqual(t, tc.TrackSizes(), []Fl{20, 60, 40})
}

func TestFlexibleSpanningItem(t *testing.T) {
	items := []GridItemData{{ColumnSpan: line(0, 2)}}
	contributions := fixedContributions{&items[0]: {120, 120, 400}}

	// the minimum contribution is shared in proportion of the flex factors
	tc := newColumns(0, utils.MaybeFloat{}, items, pr.NewFr(1), pr.NewFr(2))
	ComputeUsedTrackSizes(contributions.contribution, &tc, pointers(items), layout.Definite, utils.Some(60), false)
	tu.AssertEqual(t, tc.TrackSizes(), []Fl{40, 80})

	// indefinite size : the max-content contribution sets the fr size
	tc = newColumns(0, utils.MaybeFloat{}, items, pr.NewFr(1), pr.NewFr(2))
	ComputeUsedTrackSizes(contributions.contribution, &tc, pointers(items), layout.MaxContent, utils.MaybeFloat{}, false)
	tu.AssertEqual(t, tc.TrackSizes(), []Fl{400. / 3, 800. / 3})
}

func TestPercentageTracks(t *testing.T) {
	tc := newColumns(0, utils.Some(200), nil, pr.NewPercentage(25), pr.NewPercentage(50))
	ComputeUsedTrackSizes(noContribution, &tc, nil, layout.Definite, utils.Some(200), false)
	tu.AssertEqual(t, tc.TrackSizes(), []Fl{50, 100})

	// indefinite basis : percentages behave as auto
	tc = newColumns(0, utils.MaybeFloat{}, nil, pr.NewPercentage(25))
	tu.AssertEqual(t, tc.Sets[0].SizingFunction.Kind, pr.Auto)
}

func TestDistributeUpToLimits(t *testing.T) {
	increases := make([]Fl, 3)
	left := distributeUpToLimits(90, []Fl{1, 1, 1}, []Fl{10, utils.Inf, 20}, increases)
	tu.AssertEqual(t, left, 0.)
	tu.AssertEqual(t, increases, []Fl{10, 60, 20})

	increases = make([]Fl, 2)
	left = distributeUpToLimits(90, []Fl{1, 2}, []Fl{10, 20}, increases)
	tu.AssertEqual(t, left, 60.)
	tu.AssertEqual(t, increases, []Fl{10, 20})
}

func TestLinePositions(t *testing.T) {
	tc := newColumns(10, utils.Some(200), nil, px(10), px(20), px(30))
	tc.ComputeOffsets(0, 0)
	// both edges of each gutter
	tu.AssertEqual(t, tc.LinePositions(), []Fl{0, 10, 20, 40, 50, 80})

	tc = newColumns(0, utils.Some(200), nil, px(10), px(20))
	tc.ComputeOffsets(5, 0)
	tu.AssertEqual(t, tc.LinePositions(), []Fl{5, 15, 35})

	tc = newColumns(0, utils.Some(200), nil)
	tu.AssertEqual(t, len(tc.LinePositions()), 0)
}
