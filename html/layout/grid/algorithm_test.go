package grid

import (
	"errors"
	"strings"
	"testing"

	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/html/layout"
	"github.com/benoitkugler/webgrid/html/tree"
	"github.com/benoitkugler/webgrid/utils"
	tu "github.com/benoitkugler/webgrid/utils/testutils"
	"github.com/stretchr/testify/assert"
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

func newRegistry() (*layout.Registry, *Algorithm) {
	r := layout.NewRegistry()
	return r, Register(r)
}

// layoutHTML lays out the body of the document, with the given viewport width.
func layoutHTML(t *testing.T, content string, width Fl) *layout.Fragment {
	t.Helper()
	r, _ := newRegistry()
	page, err := layout.Layout(r, parseBoxes(t, content), utils.Some(width), utils.MaybeFloat{})
	if err != nil {
		t.Fatal(err)
	}
	return page
}

func TestTemplateAreas(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	page := layoutHTML(t, `
	<div id="g" style="display: grid; width: 10px; font-size: 2px; line-height: 1;
		grid-template-areas: 'a b' 'c d'">
		<div id="a" style="grid-area: a">a</div>
		<div id="b" style="grid-area: b">b</div>
	</div>`, 100)
	g, a, b := page.Find("g"), page.Find("a"), page.Find("b")
	tu.AssertEqual(t, a.X, 0.)
	tu.AssertEqual(t, a.Width, 5.)
	tu.AssertEqual(t, b.X, 5.)
	tu.AssertEqual(t, b.Y, 0.)
	tu.AssertEqual(t, g.Width, 10.)
	tu.AssertEqual(t, g.Height, 2.)
	tu.AssertEqual(t, g.Grid.Rows, []Fl{0, 2, 2})
}

func TestFlexibleColumns(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	page := layoutHTML(t, `
	<div id="g" style="display: grid; width: 420px; grid-template-columns: 1fr 3fr; column-gap: 20px">
		<div id="a">a</div>
		<div id="b">b</div>
	</div>`, 1000)
	g, a, b := page.Find("g"), page.Find("a"), page.Find("b")
	tu.AssertEqual(t, a.X, 0.)
	tu.AssertEqual(t, a.Width, 100.)
	tu.AssertEqual(t, b.X, 120.)
	tu.AssertEqual(t, b.Width, 300.)
	tu.AssertEqual(t, g.Height, 19.2)
	tu.AssertEqual(t, g.Grid.Columns, []Fl{0, 100, 120, 420})
}

func TestMeasureIsIdempotent(t *testing.T) {
	root := parseBoxes(t, `
	<div id="g" style="display: grid; grid-template-columns: auto 1fr; grid-auto-rows: minmax(10px, auto)">
		<div>aaa b</div>
		<div style="grid-column: span 2">c</div>
		<div>d</div>
	</div>`)
	g := root.Find("g")
	_, algo := newRegistry()
	space := layout.NewConstraintSpace(utils.Some(300), utils.MaybeFloat{}).ForChild(g.Style)

	first, err := algo.Measure(g, space)
	if err != nil {
		t.Fatal(err)
	}
	second, err := algo.Measure(g, space)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, second.Width, first.Width)
	tu.AssertEqual(t, second.Height, first.Height)
	firstTree, secondTree := first.Payload.(*gridPayload).tree, second.Payload.(*gridPayload).tree
	tu.AssertEqual(t, secondTree.Columns(0), firstTree.Columns(0))
	tu.AssertEqual(t, secondTree.Rows(0), firstTree.Rows(0))

	// Arrange does not modify the measured tracks
	if _, err = algo.Arrange(g, space, first); err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, firstTree.Columns(0), secondTree.Columns(0))
}

func TestEmptyGrid(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	page := layoutHTML(t, `<div id="g" style="display: grid; width: 100px"></div>`, 200)
	g := page.Find("g")
	tu.AssertEqual(t, g.Width, 100.)
	tu.AssertEqual(t, g.Height, 0.)
	tu.AssertEqual(t, len(g.Children), 0)
	tu.AssertEqual(t, g.Baseline.Valid, false)
}

func TestSelfAlignment(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	page := layoutHTML(t, `
	<div style="display: grid; width: 100px; height: 100px; font-size: 2px; line-height: 1;
		grid-template-columns: 10px 10px; grid-template-rows: 10px 10px;
		justify-content: center; align-content: center">
		<div id="a" style="justify-self: end; align-self: center">a</div>
		<div id="b" style="width: 5px">b</div>
	</div>`, 200)
	a, b := page.Find("a"), page.Find("b")
	tu.AssertEqual(t, a.X, 48.)
	tu.AssertEqual(t, a.Y, 44.)
	tu.AssertEqual(t, a.Width, 2.)
	tu.AssertEqual(t, a.Height, 2.)

	// stretched in the block axis only
	tu.AssertEqual(t, b.X, 50.)
	tu.AssertEqual(t, b.Width, 5.)
	tu.AssertEqual(t, b.Y, 40.)
	tu.AssertEqual(t, b.Height, 10.)
}

func TestBaselineAlignment(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	page := layoutHTML(t, `
	<div id="g" style="display: grid; width: 100px; grid-template-columns: 50px 50px;
		align-items: baseline; line-height: 1">
		<div id="a" style="font-size: 10px">a</div>
		<div id="b" style="font-size: 20px">b</div>
	</div>`, 200)
	g, a, b := page.Find("g"), page.Find("a"), page.Find("b")
	tu.AssertEqual(t, a.Y, 8.)
	tu.AssertEqual(t, b.Y, 0.)
	tu.AssertEqual(t, g.Height, 20.)
	tu.AssertEqual(t, g.Baseline, utils.Some(16.))
}

func TestRightToLeft(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	page := layoutHTML(t, `
	<div id="g" style="display: grid; direction: rtl; width: 100px; grid-template-columns: 10px 30px">
		<div id="a">a</div>
		<div id="b">b</div>
	</div>`, 200)
	g, a, b := page.Find("g"), page.Find("a"), page.Find("b")
	tu.AssertEqual(t, a.X, 90.)
	tu.AssertEqual(t, a.Width, 10.)
	tu.AssertEqual(t, b.X, 60.)
	tu.AssertEqual(t, b.Width, 30.)
	tu.AssertEqual(t, g.Grid.Columns, []Fl{100, 90, 60})
}

func TestAutoRepeat(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	// empty auto-fit tracks are collapsed, and excluded from the free space
	page := layoutHTML(t, `
	<div id="g" style="display: grid; width: 450px; grid-template-columns: repeat(auto-fit, 100px);
		justify-content: center">
		<div id="a">a</div>
	</div>`, 1000)
	g, a := page.Find("g"), page.Find("a")
	tu.AssertEqual(t, a.X, 175.)
	tu.AssertEqual(t, a.Width, 100.)
	tu.AssertEqual(t, g.Grid.Columns, []Fl{175, 275, 275, 275, 275})

	page = layoutHTML(t, `
	<div id="g" style="display: grid; width: 450px; grid-template-columns: repeat(auto-fill, 100px);
		justify-content: center">
		<div id="a">a</div>
	</div>`, 1000)
	g, a = page.Find("g"), page.Find("a")
	tu.AssertEqual(t, a.X, 25.)
	tu.AssertEqual(t, g.Grid.Columns, []Fl{25, 125, 225, 325, 425})
}

func TestSubgrid(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	page := layoutHTML(t, `
	<div id="g" style="display: grid; grid-template-columns: 50px 100px; column-gap: 10px;
		font-size: 2px; line-height: 1">
		<div id="s" style="display: grid; grid-column: 1 / 3; grid-template-columns: subgrid">
			<div id="s1">a</div>
			<div id="s2">b</div>
		</div>
	</div>`, 400)
	g, s, s1, s2 := page.Find("g"), page.Find("s"), page.Find("s1"), page.Find("s2")
	tu.AssertEqual(t, s.X, 0.)
	tu.AssertEqual(t, s.Width, 160.)
	tu.AssertEqual(t, s.Height, 2.)
	tu.AssertEqual(t, s1.X, 0.)
	tu.AssertEqual(t, s1.Width, 50.)
	tu.AssertEqual(t, s2.X, 60.)
	tu.AssertEqual(t, s2.Width, 100.)
	tu.AssertEqual(t, s2.Y, 0.)
	tu.AssertEqual(t, s.Grid.Columns, []Fl{0, 50, 60, 160})
	tu.AssertEqual(t, g.Height, 2.)
}

func TestSubgridNodes(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := parseBoxes(t, `
	<div id="g" style="display: grid; grid-template-columns: 50px 100px; column-gap: 10px">
		<div id="s" style="display: grid; grid-column: 1 / 3; grid-template-columns: subgrid">
			<div>a</div>
		</div>
	</div>`)
	g := root.Find("g")
	_, algo := newRegistry()
	space := layout.NewConstraintSpace(utils.Some(400), utils.MaybeFloat{}).ForChild(g.Style)
	measured, err := algo.Measure(g, space)
	if err != nil {
		t.Fatal(err)
	}
	tree := measured.Payload.(*gridPayload).tree
	tu.AssertEqual(t, tree.Len(), 2)
	tu.AssertEqual(t, tree.Node(1).Subgridded, [2]bool{true, false})

	// the subgridded axis is inherited, the other one is sized by the subgrid itself
	columns, rows := tree.Columns(1), tree.Rows(1)
	tu.AssertEqual(t, columns.TrackSizes(), []Fl{50, 100})
	tu.AssertEqual(t, columns.Gap, 10.)
	tu.AssertEqual(t, rows.TrackCount(), 0)
}

func TestInlineGrid(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	const content = `
	<div id="g" style="display: inline-grid; grid-template-columns: auto auto; column-gap: 3px;
		font-size: 2px; line-height: 1">
		<div id="a">ab cd</div>
		<div id="b">e</div>
	</div>`
	r, _ := newRegistry()
	g := parseBoxes(t, content).Find("g")
	mm, err := r.MinMaxSizes(g, layout.NewConstraintSpace(utils.MaybeFloat{}, utils.MaybeFloat{}))
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, mm, layout.MinMaxSizes{Min: 9, Max: 15})

	// shrink-to-fit
	page := layoutHTML(t, content, 12)
	tu.AssertEqual(t, page.Find("g").Width, 12.)
	tu.AssertEqual(t, page.Find("a").Width, 7.)
	tu.AssertEqual(t, page.Find("b").X, 10.)

	page = layoutHTML(t, content, 100)
	tu.AssertEqual(t, page.Find("g").Width, 15.)
}

func TestContractViolations(t *testing.T) {
	root := parseBoxes(t, `
	<div id="g" style="display: grid"><div>a</div></div>
	<div id="h" style="display: grid"></div>
	<p id="p">text</p>`)
	g, h, p := root.Find("g"), root.Find("h"), root.Find("p")
	_, algo := newRegistry()
	space := layout.NewConstraintSpace(utils.Some(100), utils.MaybeFloat{})

	_, err := algo.Measure(p, space)
	assert.True(t, errors.Is(err, layout.ErrContractViolation), "got %v", err)

	_, err = algo.Arrange(g, space, layout.MeasureResult{Payload: 3})
	assert.True(t, errors.Is(err, layout.ErrContractViolation), "got %v", err)

	measured, err := algo.Measure(g, space)
	assert.NoError(t, err)
	_, err = algo.Arrange(h, space, measured)
	assert.True(t, errors.Is(err, layout.ErrContractViolation), "got %v", err)

	inherited := space
	inherited.InheritedLayoutTree = "tree"
	_, err = algo.Measure(g, inherited)
	assert.True(t, errors.Is(err, layout.ErrContractViolation), "got %v", err)

	tree := measured.Payload.(*gridPayload).tree
	inherited.InheritedLayoutTree = &InheritedGrid{Tree: tree, Index: 0}
	_, err = algo.Measure(h, inherited)
	assert.True(t, errors.Is(err, layout.ErrContractViolation), "got %v", err)

	inherited.InheritedLayoutTree = &InheritedGrid{Tree: tree, Index: 5}
	assert.PanicsWithValue(t, "grid: sizing tree node index 5 out of range [0, 1)", func() {
		_, _ = algo.Measure(g, inherited)
	})
}

func TestGridWarnings(t *testing.T) {
	capture := tu.CaptureLogs()
	page := layoutHTML(t, `
	<div style="display: grid; writing-mode: vertical-lr; justify-content: start;
		grid-template-columns: [main] 10px">
		<div id="a" style="grid-column-start: missing">a</div>
	</div>`, 100)
	logs := strings.Join(capture.CheckLogs(), "\n")
	assert.Contains(t, logs, "Unknown grid line name")
	assert.Contains(t, logs, "missing")
	assert.Contains(t, logs, "Unsupported writing mode")

	// an unknown name resolves one line past the end of the explicit grid
	tu.AssertEqual(t, page.Find("a").X, 10.)
}
