package validation

import (
	pa "github.com/benoitkugler/webgrid/css/parser"
	pr "github.com/benoitkugler/webgrid/css/properties"
)

// Expand the “gap“ property : <row-gap> [<column-gap>]
func expandGap(tokens []Token, style *pr.Style) error {
	if len(tokens) != 1 && len(tokens) != 2 {
		return ErrInvalidValue
	}
	var gaps [2]pr.Length
	for i, token := range tokens {
		length, ok := getLength(token, false, true)
		if !ok {
			if getKeyword(token) != "normal" {
				return ErrInvalidValue
			}
			length = pr.PxLength(0)
		}
		gaps[i] = length
	}
	if len(tokens) == 1 {
		gaps[1] = gaps[0]
	}
	style.Grid.RowGap, style.Grid.ColumnGap = gaps[0], gaps[1]
	return nil
}

// expandGridColumnRowArea validates the slash separated lines of
// “grid-row“, “grid-column“ and “grid-area“ and fills the omitted values :
// a missing value copies the first (resp. second) one when it is
// a custom ident, and is 'auto' otherwise.
func expandGridColumnRowArea(tokens []Token, maxNumber int) ([]pr.GridPosition, error) {
	gridLines := pa.SplitOnSlash(tokens)
	if !(1 <= len(gridLines) && len(gridLines) <= maxNumber) {
		return nil, ErrInvalidValue
	}
	var out []pr.GridPosition
	for _, tokens := range gridLines {
		validation, ok := gridLineImpl(tokens)
		if !ok {
			return nil, ErrInvalidValue
		}
		out = append(out, validation)
	}
	fallback := func(pos pr.GridPosition) pr.GridPosition {
		if pos.Kind == pr.PositionNamedArea {
			return pos
		}
		return pr.GridPosition{}
	}
	for len(out) < maxNumber {
		// for grid-area : row-start / column-start / row-end / column-end
		// the i-th value falls back on the (i-2)-th one
		ref := len(out) - 2
		if maxNumber == 2 || ref < 0 {
			ref = 0
		}
		out = append(out, fallback(out[ref]))
	}
	return out, nil
}

// Expand the “grid-column“ and “grid-row“ properties.
func expandGridColumnRow(isColumn bool) validator {
	return func(tokens []Token, style *pr.Style) error {
		lines, err := expandGridColumnRowArea(tokens, 2)
		if err != nil {
			return err
		}
		if isColumn {
			style.Item.ColumnStart, style.Item.ColumnEnd = lines[0], lines[1]
		} else {
			style.Item.RowStart, style.Item.RowEnd = lines[0], lines[1]
		}
		return nil
	}
}

// Expand the “grid-area“ property.
func expandGridArea(tokens []Token, style *pr.Style) error {
	lines, err := expandGridColumnRowArea(tokens, 4)
	if err != nil {
		return err
	}
	style.Item.RowStart, style.Item.ColumnStart = lines[0], lines[1]
	style.Item.RowEnd, style.Item.ColumnEnd = lines[2], lines[3]
	return nil
}
