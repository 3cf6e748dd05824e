package properties

import (
	"testing"

	"github.com/benoitkugler/webgrid/utils"
	tu "github.com/benoitkugler/webgrid/utils/testutils"
)

func TestSizingFunctions(t *testing.T) {
	for _, test := range []struct {
		track      TrackSizingFunction
		min, max   TrackSizingFunction
		intrinsic  bool
		flexFactor Float
	}{
		{NewFixed(10), NewFixed(10), NewFixed(10), false, 0},
		{NewFr(2), NewAuto(), NewFr(2), false, 2},
		{NewAuto(), NewAuto(), NewAuto(), true, 0},
		{NewMinMax(NewFixed(5), NewFr(1)), NewFixed(5), NewFr(1), false, 1},
		{NewMinMax(NewMinContent(), NewMaxContent()), NewMinContent(), NewMaxContent(), false, 0},
		{NewFitContent(NewFixed(50)), NewAuto(), NewFitContent(NewFixed(50)), true, 0},
	} {
		tu.AssertEqual(t, test.track.MinSizingFunction().Equal(test.min), true)
		tu.AssertEqual(t, test.track.MaxSizingFunction().Equal(test.max), true)
		tu.AssertEqual(t, test.track.IsIntrinsic(), test.intrinsic)
		tu.AssertEqual(t, test.track.FlexFactor(), test.flexFactor)
		tu.AssertEqual(t, test.track.IsFlexible(), test.flexFactor != 0)
	}
}

func TestResolvePercentage(t *testing.T) {
	p := NewPercentage(25)
	tu.AssertEqual(t, p.IsDefinite(utils.MaybeFloat{}), false)
	tu.AssertEqual(t, p.IsDefinite(utils.Some(200)), true)
	tu.AssertEqual(t, p.Resolve(200), 50.)
	tu.AssertEqual(t, NewFixed(7).Resolve(200), 7.)

	v, ok := PercentLength(10).Resolve(50, false)
	tu.AssertEqual(t, ok, false)
	v, ok = PercentLength(10).Resolve(50, true)
	tu.AssertEqual(t, v, 5.)
	tu.AssertEqual(t, ok, true)
}

func TestTrackString(t *testing.T) {
	r := NewRepeat(RepeatAutoFit, []TrackSizingFunction{NewMinMax(NewFixed(10), NewFr(1))}, nil)
	tu.AssertEqual(t, r.String(), "repeat(auto-fit, minmax(10px, 1fr))")
	tu.AssertEqual(t, r.IsAutoRepeat(), true)
	tu.AssertEqual(t, NewSpan(2, "a").String(), "span 2 a")
	tu.AssertEqual(t, NewLine(-1, "").String(), "-1")
}
