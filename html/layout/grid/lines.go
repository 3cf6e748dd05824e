package grid

import (
	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/logger"
	"github.com/benoitkugler/webgrid/utils"
)

// LineResolver converts the grid-{row,column}-{start,end} properties of
// items into spans of track indices. Index 0 is the first line of the
// explicit grid : lines before it are negative.
type LineResolver struct {
	style *pr.GridStyle
	// lineNames[axis][l] are the names of line l, in [0, explicit[axis]]
	lineNames [2][][]string
	explicit  [2]int
	// declared is the number of tracks defined by the template, which
	// may be less than explicit when grid-template-areas is larger.
	declared        [2]int
	autoRepetitions [2]int
}

// NewLineResolver expands the templates of style, using the given number of
// repetitions for repeat(auto-fill) and repeat(auto-fit).
func NewLineResolver(style *pr.GridStyle, autoRepetitionsColumns, autoRepetitionsRows int) *LineResolver {
	r := &LineResolver{style: style, autoRepetitions: [2]int{autoRepetitionsColumns, autoRepetitionsRows}}
	for _, axis := range [2]Axis{Column, Row} {
		template, names := r.template(axis)
		r.lineNames[axis], r.declared[axis] = expandLineNames(template, names, r.autoRepetitions[axis])
		r.explicit[axis] = r.declared[axis]
	}
	if areas := style.TemplateAreas; !areas.IsNone() {
		r.explicit[Row] = utils.MaxInt(r.explicit[Row], len(areas))
		r.explicit[Column] = utils.MaxInt(r.explicit[Column], len(areas[0]))
	}
	for axis := range r.lineNames {
		for len(r.lineNames[axis]) < r.explicit[axis]+1 {
			r.lineNames[axis] = append(r.lineNames[axis], nil)
		}
	}
	r.addAreaLineNames()
	return r
}

// SetSubgridSpan replaces the explicit grid of the axis by the span
// of a subgrid in its parent : the template is ignored, and the
// subgrid line names are applied from the first line.
func (r *LineResolver) SetSubgridSpan(axis Axis, span int) {
	r.explicit[axis], r.declared[axis] = span, span
	names := make([][]string, span+1)
	_, lineNames := r.template(axis)
	for i := range names {
		if i < len(lineNames) {
			names[i] = lineNames[i]
		}
	}
	r.lineNames[axis] = names
	r.addAreaLineNames()
}

func (r *LineResolver) template(axis Axis) ([]pr.TrackSizingFunction, [][]string) {
	if axis == Row {
		return r.style.TemplateRows, r.style.LineNames.Rows
	}
	return r.style.TemplateColumns, r.style.LineNames.Columns
}

// ExplicitGridTrackCount returns the number of tracks of the explicit grid.
func (r *LineResolver) ExplicitGridTrackCount(axis Axis) int { return r.explicit[axis] }

// AutoRepetitions returns the number of repetitions used for an
// auto repeat on the axis.
func (r *LineResolver) AutoRepetitions(axis Axis) int { return r.autoRepetitions[axis] }

// expandLineNames returns the names of each line of the template, with
// repeat() expanded, and the number of tracks.
func expandLineNames(template []pr.TrackSizingFunction, names [][]string, autoRepetitions int) ([][]string, int) {
	out := [][]string{nil}
	merge := func(names []string) {
		last := &out[len(out)-1]
		for _, name := range names {
			if !utils.IsIn(*last, name) {
				*last = append(*last, name)
			}
		}
	}
	nameAt := func(i int) []string {
		if i < len(names) {
			return names[i]
		}
		return nil
	}
	for i, tf := range template {
		merge(nameAt(i))
		if tf.Kind != pr.Repeat {
			out = append(out, nil)
			continue
		}
		count := tf.Count
		if tf.IsAutoRepeat() {
			count = autoRepetitions
		}
		for rep := 0; rep < count; rep++ {
			merge(tf.LineNames[0])
			for j := range tf.Tracks {
				out = append(out, nil)
				merge(tf.LineNames[j+1])
			}
		}
	}
	merge(nameAt(len(template)))
	return out, len(out) - 1
}

// addAreaLineNames adds the implicit <area>-start and <area>-end names
func (r *LineResolver) addAreaLineNames() {
	areas := r.style.TemplateAreas
	if areas.IsNone() {
		return
	}
	type bounds struct{ row0, row1, col0, col1 int }
	var (
		order []string
		found = map[string]*bounds{}
	)
	for i, row := range areas {
		for j, name := range row {
			if name == "" {
				continue
			}
			b, ok := found[name]
			if !ok {
				b = &bounds{i, i, j, j}
				found[name] = b
				order = append(order, name)
			}
			b.row0, b.row1 = utils.MinInt(b.row0, i), utils.MaxInt(b.row1, i)
			b.col0, b.col1 = utils.MinInt(b.col0, j), utils.MaxInt(b.col1, j)
		}
	}
	add := func(axis Axis, line int, name string) {
		if line < len(r.lineNames[axis]) && !utils.IsIn(r.lineNames[axis][line], name) {
			r.lineNames[axis][line] = append(r.lineNames[axis][line], name)
		}
	}
	for _, name := range order {
		b := found[name]
		add(Row, b.row0, name+"-start")
		add(Row, b.row1+1, name+"-end")
		add(Column, b.col0, name+"-start")
		add(Column, b.col1+1, name+"-end")
	}
}

// linesNamed returns the sorted indices of the lines with the given name
func (r *LineResolver) linesNamed(axis Axis, name string) []int {
	var out []int
	for l, names := range r.lineNames[axis] {
		if utils.IsIn(names, name) {
			out = append(out, l)
		}
	}
	return out
}

func (r *LineResolver) positions(item *pr.GridItemStyle, axis Axis) (start, end pr.GridPosition) {
	if axis == Row {
		return item.RowStart, item.RowEnd
	}
	return item.ColumnStart, item.ColumnEnd
}

// ResolvePositionsFromStyle returns the span of the item on the given axis.
// The span is indefinite when it must be found by the auto-placement, and
// may extend outside the explicit grid (with negative indices for lines
// before it).
func (r *LineResolver) ResolvePositionsFromStyle(item *pr.GridItemStyle, axis Axis) GridSpan {
	start, end := r.positions(item, axis)

	// a span on both sides : the end one is ignored
	if start.IsSpan() && end.IsSpan() {
		end = pr.GridPosition{}
	}
	// the auto side facing a named span is a span of 1
	if start.IsSpan() && start.Name != "" && end.IsAuto() {
		end = pr.NewSpan(1, "")
	}
	if end.IsSpan() && end.Name != "" && start.IsAuto() {
		start = pr.NewSpan(1, "")
	}

	if !start.IsDefinite() && !end.IsDefinite() {
		size := 1
		switch {
		case start.IsSpan() && (start.Name != "" || end.Name == ""):
			size = start.Integer
		case end.IsSpan():
			size = end.Integer
		}
		return NewIndefiniteSpan(size)
	}

	var startLine, endLine int
	if start.IsDefinite() {
		startLine = r.resolveLine(axis, start, false)
		if end.IsDefinite() {
			endLine = r.resolveLine(axis, end, true)
		} else {
			endLine = r.resolveDependentLine(axis, end, startLine, true)
		}
	} else {
		endLine = r.resolveLine(axis, end, true)
		startLine = r.resolveDependentLine(axis, start, endLine, false)
	}
	return NewDefiniteSpan(startLine, endLine)
}

// resolveLine resolves a definite position
func (r *LineResolver) resolveLine(axis Axis, pos pr.GridPosition, isEnd bool) int {
	if pos.Kind == pr.PositionNamedArea {
		suffix := "-start"
		if isEnd {
			suffix = "-end"
		}
		if lines := r.linesNamed(axis, pos.Name+suffix); len(lines) != 0 {
			return lines[0]
		}
		return r.resolveNamedLine(axis, 1, pos.Name)
	}
	if pos.Name != "" {
		return r.resolveNamedLine(axis, pos.Integer, pos.Name)
	}
	if pos.Integer < 0 {
		// -n is the index explicit - n - 1
		return r.explicit[axis] + pos.Integer - 1
	}
	return pos.Integer - 1
}

// resolveNamedLine returns the n-th line with the given name, counting from
// the end for negative n. When there is no such line, the first line after
// the explicit grid is used, which grows the implicit grid.
func (r *LineResolver) resolveNamedLine(axis Axis, n int, name string) int {
	lines := r.linesNamed(axis, name)
	if len(lines) == 0 {
		logger.WarningLogger.Warnf("Unknown grid line name %q on the %s axis, using an implicit line.", name, axis)
		return r.explicit[axis] + 1
	}
	if n > 0 && n <= len(lines) {
		return lines[n-1]
	}
	if n < 0 && -n <= len(lines) {
		return lines[len(lines)+n]
	}
	logger.WarningLogger.Warnf("Only %d grid lines named %q on the %s axis, using an implicit line.", len(lines), name, axis)
	return r.explicit[axis] + 1
}

// resolveDependentLine resolves an 'auto' or 'span' position from the opposite line.
func (r *LineResolver) resolveDependentLine(axis Axis, pos pr.GridPosition, opposite int, isEnd bool) int {
	n := 1
	if pos.IsSpan() {
		n = pos.Integer
	}
	if pos.Name == "" || !pos.IsSpan() {
		if isEnd {
			return opposite + n
		}
		return opposite - n
	}

	// count n lines with the name, in the search direction
	lines := r.linesNamed(axis, pos.Name)
	if isEnd {
		for _, l := range lines {
			if l > opposite {
				n--
				if n == 0 {
					return l
				}
			}
		}
		return utils.MaxInt(opposite, r.explicit[axis]) + n
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if l := lines[i]; l < opposite {
			n--
			if n == 0 {
				return l
			}
		}
	}
	return utils.MinInt(opposite, 0) - n
}
