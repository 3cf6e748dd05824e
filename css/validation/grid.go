package validation

import (
	pa "github.com/benoitkugler/webgrid/css/parser"
	pr "github.com/benoitkugler/webgrid/css/properties"
)

// parseFunction returns the name and the comma separated
// arguments of a function token, or "" for other tokens.
// Each argument is a single token, or the function is invalid.
func parseFunction(token Token) (string, []Token, bool) {
	fn, ok := token.(pa.FunctionBlock)
	if !ok {
		return "", nil, false
	}
	var args []Token
	for _, arg := range pa.SplitOnComma(*fn.Arguments) {
		arg = pa.RemoveWhitespace(arg)
		if len(arg) != 1 {
			return fn.Name.Lower(), nil, false
		}
		args = append(args, arg[0])
	}
	return fn.Name.Lower(), args, true
}

// Parse “inflexible-breadth“.
func parseInflexibleBreadth(token Token) (pr.TrackSizingFunction, bool) {
	switch getKeyword(token) {
	case "auto":
		return pr.NewAuto(), true
	case "min-content":
		return pr.NewMinContent(), true
	case "max-content":
		return pr.NewMaxContent(), true
	case "":
		if length, ok := getLength(token, false, true); ok {
			return lengthToTrack(length), true
		}
	}
	return pr.TrackSizingFunction{}, false
}

func lengthToTrack(length pr.Length) pr.TrackSizingFunction {
	if length.Unit == pr.Percent {
		return pr.NewPercentage(length.Value)
	}
	return pr.NewFixed(length.Value)
}

// Parse “track-breadth“.
func parseTrackBreadth(token Token) (pr.TrackSizingFunction, bool) {
	if dim, ok := token.(pa.DimensionToken); ok && dim.Value >= 0 && dim.Unit.Lower() == "fr" {
		return pr.NewFr(dim.Value), true
	}
	return parseInflexibleBreadth(token)
}

// Parse “track-size“, which includes “fixed-size“.
func parseTrackSize(token Token) (pr.TrackSizingFunction, bool) {
	if breadth, ok := parseTrackBreadth(token); ok {
		return breadth, true
	}
	name, args, ok := parseFunction(token)
	if !ok {
		return pr.TrackSizingFunction{}, false
	}
	switch name {
	case "minmax":
		if len(args) == 2 {
			min, okMin := parseInflexibleBreadth(args[0])
			max, okMax := parseTrackBreadth(args[1])
			if okMin && okMax {
				return pr.NewMinMax(min, max), true
			}
		}
	case "fit-content":
		if len(args) == 1 {
			if length, ok := getLength(args[0], false, true); ok {
				return pr.NewFitContent(lengthToTrack(length)), true
			}
		}
	}
	return pr.TrackSizingFunction{}, false
}

// parse “line-names“, returning nil if invalid,
// but an empty list for '[]'
func parseLineNames(arg Token) []string {
	block, ok := arg.(pa.SquareBracketsBlock)
	if !ok {
		return nil
	}
	names := []string{}
	for _, token := range *block.Content {
		switch token := token.(type) {
		case pa.IdentToken:
			if kw := token.Value.Lower(); kw == "span" || kw == "auto" {
				return nil
			}
			names = append(names, string(token.Value))
		case pa.WhitespaceToken, pa.Comment:
		default:
			return nil
		}
	}
	return names
}

func parseRepeat(token Token, acceptAutoFit bool) (int, bool) {
	if nb, ok := token.(pa.NumberToken); ok && nb.IsInteger && nb.Value >= 1 {
		return pa.NumericToken(nb).IntValue(), true
	}
	switch getKeyword(token) {
	case "auto-fill":
		return pr.RepeatAutoFill, true
	case "auto-fit":
		if acceptAutoFit {
			return pr.RepeatAutoFit, true
		}
	}
	return 0, false
}

// trackListBuilder accumulates alternating line names and tracks.
type trackListBuilder struct {
	tracks         []pr.TrackSizingFunction
	names          [][]string
	lastIsLineName bool
}

func (b *trackListBuilder) addNames(names []string) bool {
	if b.lastIsLineName {
		return false
	}
	b.lastIsLineName = true
	b.names = append(b.names, names)
	return true
}

func (b *trackListBuilder) addTrack(track pr.TrackSizingFunction) {
	if !b.lastIsLineName {
		b.names = append(b.names, []string{})
	}
	b.lastIsLineName = false
	b.tracks = append(b.tracks, track)
}

func (b *trackListBuilder) finish() ([]pr.TrackSizingFunction, [][]string) {
	if !b.lastIsLineName {
		b.names = append(b.names, []string{})
	}
	return b.tracks, b.names
}

// [tokens] start right after 'subgrid'
func parseSubgrid(tokens []Token) ([][]string, bool) {
	var names [][]string
	for _, token := range tokens {
		if lineNames := parseLineNames(token); lineNames != nil {
			names = append(names, lineNames)
			continue
		}

		fn, ok := token.(pa.FunctionBlock)
		if !ok || fn.Name.Lower() != "repeat" {
			return nil, false
		}
		args := pa.RemoveWhitespace(*fn.Arguments)
		if len(args) < 3 {
			return nil, false
		}
		count, ok := parseRepeat(args[0], false)
		if lit, isLit := args[1].(pa.LiteralToken); !ok || !isLit || lit.Value != "," {
			return nil, false
		}
		var repeated [][]string
		for _, arg := range args[2:] {
			lineNames := parseLineNames(arg)
			if lineNames == nil {
				return nil, false
			}
			repeated = append(repeated, lineNames)
		}
		if count == pr.RepeatAutoFill {
			// filling the subgridded span is not supported
			count = 1
		}
		for i := 0; i < count; i++ {
			names = append(names, repeated...)
		}
	}
	return names, true
}

// “grid-template-columns“ and “grid-template-rows“ validation.
func gridTemplate(isColumn bool) validator {
	return func(tokens []Token, style *pr.Style) error {
		tracks, names, subgrid, ok := gridTemplateImpl(tokens)
		if !ok {
			return ErrInvalidValue
		}
		if isColumn {
			style.Grid.TemplateColumns, style.Grid.LineNames.Columns, style.Grid.SubgridColumns = tracks, names, subgrid
		} else {
			style.Grid.TemplateRows, style.Grid.LineNames.Rows, style.Grid.SubgridRows = tracks, names, subgrid
		}
		return nil
	}
}

func gridTemplateImpl(tokens []Token) (tracks []pr.TrackSizingFunction, names [][]string, subgrid, ok bool) {
	if len(tokens) == 1 && getKeyword(tokens[0]) == "none" {
		return nil, nil, false, true
	}
	if getKeyword(tokens[0]) == "subgrid" {
		names, ok := parseSubgrid(tokens[1:])
		return nil, names, true, ok
	}

	var (
		list               trackListBuilder
		includesAutoRepeat = false
		includesIntrinsic  = false
	)
	for _, token := range tokens {
		if lineNames := parseLineNames(token); lineNames != nil {
			if !list.addNames(lineNames) {
				return
			}
			continue
		}
		if trackSize, isTrack := parseTrackSize(token); isTrack {
			includesIntrinsic = includesIntrinsic || !isFixedSize(trackSize)
			list.addTrack(trackSize)
			continue
		}
		fn, isFn := token.(pa.FunctionBlock)
		if !isFn || fn.Name.Lower() != "repeat" {
			return
		}
		parts := pa.SplitOnComma(*fn.Arguments)
		if len(parts) != 2 {
			return
		}
		countTokens := pa.RemoveWhitespace(parts[0])
		if len(countTokens) != 1 {
			return
		}
		number, isRepeat := parseRepeat(countTokens[0], true)
		if !isRepeat {
			return
		}
		if number < 0 { // auto-repeat
			if includesAutoRepeat {
				return
			}
			includesAutoRepeat = true
		}

		var repeated trackListBuilder
		for _, arg := range pa.RemoveWhitespace(parts[1]) {
			if lineNames := parseLineNames(arg); lineNames != nil {
				if !repeated.addNames(lineNames) {
					return
				}
				continue
			}
			trackSize, isTrack := parseTrackSize(arg)
			if !isTrack {
				return
			}
			if number < 0 && !isFixedSize(trackSize) {
				// auto-repeat only accepts “fixed-size“
				return
			}
			includesIntrinsic = includesIntrinsic || !isFixedSize(trackSize)
			repeated.addTrack(trackSize)
		}
		if len(repeated.tracks) == 0 {
			return
		}
		repeatTracks, repeatNames := repeated.finish()
		list.addTrack(pr.NewRepeat(number, repeatTracks, repeatNames))
	}
	// “auto-repeat“ is only valid along “fixed-size“ tracks
	if includesAutoRepeat && includesIntrinsic {
		return
	}
	tracks, names = list.finish()
	return tracks, names, false, true
}

// isFixedSize returns true for “fixed-size“ values : at least one of the
// sizing functions is a length.
func isFixedSize(track pr.TrackSizingFunction) bool {
	switch track.Kind {
	case pr.Fixed:
		return true
	case pr.MinMax:
		return track.Min.Kind == pr.Fixed || track.Max.Kind == pr.Fixed
	}
	return false
}

// “grid-template-areas“ property validation.
func gridTemplateAreas(tokens []Token, style *pr.Style) error {
	areas, ok := gridTemplateAreasImpl(tokens)
	if !ok {
		return ErrInvalidValue
	}
	style.Grid.TemplateAreas = areas
	return nil
}

func gridTemplateAreasImpl(tokens []Token) (pr.GridTemplateAreas, bool) {
	if len(tokens) == 1 && getKeyword(tokens[0]) == "none" {
		return nil, true
	}
	var gridAreas pr.GridTemplateAreas
	for _, token := range tokens {
		s, ok := token.(pa.StringToken)
		if !ok {
			return nil, false
		}
		var (
			row       []string
			lastIsDot = false
		)
		for _, value := range pa.TokenizeString(s.Value, true) {
			switch value := value.(type) {
			case pa.IdentToken:
				row = append(row, string(value.Value))
				lastIsDot = false
			case pa.LiteralToken:
				if value.Value != "." {
					return nil, false
				}
				// a sequence of dots is one null cell
				if lastIsDot {
					continue
				}
				row = append(row, "")
				lastIsDot = true
			case pa.WhitespaceToken:
				lastIsDot = false
			default:
				return nil, false
			}
		}
		if len(row) == 0 {
			return nil, false
		}
		gridAreas = append(gridAreas, row)
	}

	// check rows have the same sizes
	L := len(gridAreas[0])
	for _, other := range gridAreas {
		if len(other) != L {
			return nil, false
		}
	}
	// check areas are rectangles
	type bbox struct{ x0, y0, x1, y1, count int }
	boxes := map[string]*bbox{}
	for y, row := range gridAreas {
		for x, area := range row {
			if area == "" {
				continue
			}
			b := boxes[area]
			if b == nil {
				b = &bbox{x0: x, y0: y, x1: x, y1: y}
				boxes[area] = b
			}
			b.x0, b.y0 = min(b.x0, x), min(b.y0, y)
			b.x1, b.y1 = max(b.x1, x), max(b.y1, y)
			b.count++
		}
	}
	for _, b := range boxes {
		if (b.x1-b.x0+1)*(b.y1-b.y0+1) != b.count {
			return nil, false
		}
	}
	return gridAreas, true
}

// “grid-auto-columns“ and “grid-auto-rows“ properties validation.
func gridAuto(field func(*pr.Style) *[]pr.TrackSizingFunction) validator {
	return func(tokens []Token, style *pr.Style) error {
		var out []pr.TrackSizingFunction
		for _, token := range tokens {
			trackSize, ok := parseTrackSize(token)
			if !ok {
				return ErrInvalidValue
			}
			out = append(out, trackSize)
		}
		*field(style) = out
		return nil
	}
}

// “grid-auto-flow“ property validation.
func gridAutoFlow(tokens []Token, style *pr.Style) error {
	var (
		flow                pr.AutoFlow
		seenAxis, seenDense bool
	)
	if len(tokens) > 2 {
		return ErrInvalidValue
	}
	for _, token := range tokens {
		switch getKeyword(token) {
		case "row":
			if seenAxis {
				return ErrInvalidValue
			}
			seenAxis = true
		case "column":
			if seenAxis {
				return ErrInvalidValue
			}
			seenAxis, flow.Column = true, true
		case "dense":
			if seenDense {
				return ErrInvalidValue
			}
			seenDense, flow.Dense = true, true
		default:
			return ErrInvalidValue
		}
	}
	style.Grid.AutoFlow = flow
	return nil
}

// “grid-[row|column]-[start-end]“ properties validation.
func gridLine(field func(*pr.Style) *pr.GridPosition) validator {
	return func(tokens []Token, style *pr.Style) error {
		v, ok := gridLineImpl(tokens)
		if !ok {
			return ErrInvalidValue
		}
		*field(style) = v
		return nil
	}
}

func gridLineImpl(tokens []Token) (pr.GridPosition, bool) {
	if len(tokens) == 1 {
		token := tokens[0]
		if keyword := getKeyword(token); keyword != "" {
			if keyword == "auto" {
				return pr.GridPosition{}, true
			} else if keyword != "span" {
				return pr.NewNamedArea(string(token.(pa.IdentToken).Value)), true
			}
		} else if number, ok := token.(pa.NumberToken); ok && number.IsInteger && number.Value != 0 {
			return pr.NewLine(pa.NumericToken(number).IntValue(), ""), true
		}
		return pr.GridPosition{}, false
	}
	var (
		number int
		ident  string
		span   bool
	)
	if len(tokens) > 3 {
		return pr.GridPosition{}, false
	}
	for _, token := range tokens {
		if keyword := getKeyword(token); keyword != "" {
			if keyword == "auto" {
				return pr.GridPosition{}, false
			}
			if keyword == "span" {
				if !span {
					span = true
					continue
				}
			} else if ident == "" {
				ident = string(token.(pa.IdentToken).Value)
				continue
			}
		} else if nbT, ok := token.(pa.NumberToken); ok && nbT.IsInteger && nbT.Value != 0 {
			if number == 0 {
				number = pa.NumericToken(nbT).IntValue()
				continue
			}
		}
		return pr.GridPosition{}, false
	}
	if span {
		if number < 0 {
			return pr.GridPosition{}, false
		} else if ident != "" || number != 0 {
			if number == 0 {
				number = 1
			}
			return pr.NewSpan(number, ident), true
		}
	} else if number != 0 {
		return pr.NewLine(number, ident), true
	}
	return pr.GridPosition{}, false
}
