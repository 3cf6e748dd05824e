package layout

import (
	"errors"
	"testing"

	pr "github.com/benoitkugler/webgrid/css/properties"
	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/html/tree"
	"github.com/benoitkugler/webgrid/utils"
	tu "github.com/benoitkugler/webgrid/utils/testutils"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func parseBoxes(t *testing.T, content string) *bo.Box {
	t.Helper()
	doc, err := tree.ParseString(content)
	if err != nil {
		t.Fatal(err)
	}
	return bo.BuildTree(doc)
}

func renderFragment(t *testing.T, content string, width Fl) *Fragment {
	t.Helper()
	root := parseBoxes(t, content)
	fr, err := Layout(NewRegistry(), root, utils.Some(width), utils.MaybeFloat{})
	if err != nil {
		t.Fatal(err)
	}
	return fr
}

func TestBlockStacking(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	page := renderFragment(t, `
	<div id="a" style="font-size: 2px; line-height: 1">ab cd</div>
	<div id="b" style="height: 7px; width: 50%"></div>
	<div id="c" style="font-size: 10px; line-height: 2; width: 25px">abc de</div>
	`, 40)
	a, b, c := page.Find("a"), page.Find("b"), page.Find("c")
	tu.AssertEqual(t, a.X, 0.)
	tu.AssertEqual(t, a.Y, 0.)
	tu.AssertEqual(t, a.Width, 40.)
	tu.AssertEqual(t, a.Height, 2.)
	tu.AssertEqual(t, a.Baseline, utils.Some(1.6))

	tu.AssertEqual(t, b.Y, 2.)
	tu.AssertEqual(t, b.Width, 20.)
	tu.AssertEqual(t, b.Height, 7.)

	// "abc de" is 60px wide, broken on two lines
	tu.AssertEqual(t, c.Y, 9.)
	tu.AssertEqual(t, c.Width, 25.)
	tu.AssertEqual(t, c.Height, 40.)
	tu.AssertEqual(t, c.Baseline, utils.Some(13.))

	tu.AssertEqual(t, page.Height, 49.)
	tu.AssertEqual(t, page.Baseline, utils.Some(1.6))
}

func TestBreakText(t *testing.T) {
	style := pr.InitialStyle()
	style.FontSize, style.LineHeight = 1, 1
	lines := breakText("aa bb  ccc", style, 5)
	tu.AssertEqual(t, lines.lines, []string{"aa bb", "ccc"})
	tu.AssertEqual(t, lines.width, 5.)
	tu.AssertEqual(t, lines.height, 2.)

	lines = breakText("longword", style, 2)
	tu.AssertEqual(t, lines.lines, []string{"longword"})
	tu.AssertEqual(t, lines.width, 8.)

	// é as e + combining accent
	tu.AssertEqual(t, textAdvance("e\u0301", 3), 3.)
	tu.AssertEqual(t, textMinMax(" ab  cde ", style), MinMaxSizes{Min: 3, Max: 6})
}

func TestMinMaxSizes(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := parseBoxes(t, `<div style="font-size: 2px">
		<p>aaa b</p>
		<p style="width: 3px; min-width: 5px">c</p>
	</div>`)
	r := NewRegistry()
	div := root.Children[0]
	mm, err := r.MinMaxSizes(div, NewConstraintSpace(utils.MaybeFloat{}, utils.MaybeFloat{}))
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, mm, MinMaxSizes{Min: 6, Max: 10})
}

// measureOnly only implements Algorithm, to exercise the
// MinMaxSizes fallback of the registry.
type measureOnly struct{}

func (measureOnly) Measure(node *bo.Box, space ConstraintSpace) (MeasureResult, error) {
	switch space.Constraint {
	case MinContent:
		return MeasureResult{Width: 4}, nil
	case MaxContent:
		return MeasureResult{Width: 12}, nil
	}
	return MeasureResult{Width: space.AvailableWidth.Or(0)}, nil
}

func (measureOnly) Arrange(node *bo.Box, space ConstraintSpace, measured MeasureResult) (*Fragment, error) {
	return &Fragment{Box: node, Width: measured.Width}, nil
}

func TestRegistryFallback(t *testing.T) {
	r := NewRegistry()
	r.Register(pr.DisplayInlineGrid, measureOnly{})
	node := bo.NewBox(pr.Style{Display: pr.DisplayInlineGrid})
	mm, err := r.MinMaxSizes(node, ConstraintSpace{})
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, mm, MinMaxSizes{Min: 4, Max: 12})

	fr, err := r.Layout(node, NewConstraintSpace(utils.Some(7), utils.MaybeFloat{}))
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, fr.Width, 7.)

	// unregistered displays use the block layout
	if _, ok := r.Lookup(bo.NewBox(pr.Style{Display: pr.DisplayGrid})).(*Block); !ok {
		t.Fatal("expected block fallback")
	}
}

func TestContractViolation(t *testing.T) {
	r := NewRegistry()
	text := bo.TextBoxAnonymousFrom(bo.NewBox(pr.InitialStyle()), "a")
	_, err := r.Layout(text, ConstraintSpace{})
	if !errors.Is(err, ErrContractViolation) {
		t.Fatalf("expected contract violation, got %v", err)
	}
	_, err = NewBlock(r).Arrange(bo.NewBox(pr.InitialStyle()), ConstraintSpace{}, MeasureResult{Payload: 3})
	if !errors.Is(err, ErrContractViolation) {
		t.Fatalf("expected contract violation, got %v", err)
	}
}

func TestSpaceHelpers(t *testing.T) {
	space := NewConstraintSpace(utils.Some(10), utils.Some(20))
	space.InheritedLayoutTree = 1
	fixed := space.WithFixedSize(utils.Some(3), utils.MaybeFloat{})
	tu.AssertEqual(t, fixed.IsFixedInlineSize, true)
	tu.AssertEqual(t, fixed.IsFixedBlockSize, false)
	tu.AssertEqual(t, fixed.InheritedLayoutTree, nil)
	tu.AssertEqual(t, fixed.AvailableWidth, utils.Some(3))

	child := space.ForChild(pr.Style{Direction: pr.RTL, WritingMode: pr.VerticalLR})
	tu.AssertEqual(t, child.Direction, pr.RTL)
	tu.AssertEqual(t, child.WritingMode, pr.VerticalLR)
}
