// Package validation converts CSS declarations into typed
// properties. Invalid declarations are ignored, with a warning.
package validation

import (
	"errors"
	"strings"

	pa "github.com/benoitkugler/webgrid/css/parser"
	pr "github.com/benoitkugler/webgrid/css/properties"
	"github.com/benoitkugler/webgrid/logger"
	"github.com/benoitkugler/webgrid/utils"
)

type Token = pa.Token

var (
	ErrInvalidValue    = errors.New("invalid or unsupported values for a known CSS property")
	ErrUnknownProperty = errors.New("unknown property")
)

// validator checks the value of one property, storing it in style
// on success.
type validator func(tokens []Token, style *pr.Style) error

var validators map[string]validator

func init() {
	validators = map[string]validator{
		"display":      display,
		"direction":    direction,
		"writing-mode": writingMode,
		"width":        widthHeight(func(s *pr.Style) *pr.Length { return &s.Width }),
		"height":       widthHeight(func(s *pr.Style) *pr.Length { return &s.Height }),
		"min-width":    minMaxWidthHeight("auto", func(s *pr.Style) *pr.Length { return &s.MinWidth }),
		"min-height":   minMaxWidthHeight("auto", func(s *pr.Style) *pr.Length { return &s.MinHeight }),
		"max-width":    minMaxWidthHeight("none", func(s *pr.Style) *pr.Length { return &s.MaxWidth }),
		"max-height":   minMaxWidthHeight("none", func(s *pr.Style) *pr.Length { return &s.MaxHeight }),
		"font-size":    fontSize,
		"line-height":  lineHeight,
		"order":        order,

		"column-gap": gap(func(s *pr.Style) *pr.Length { return &s.Grid.ColumnGap }),
		"row-gap":    gap(func(s *pr.Style) *pr.Length { return &s.Grid.RowGap }),

		"justify-content": contentAlignment(false, func(s *pr.Style) *pr.ContentAlignment { return &s.Grid.JustifyContent }),
		"align-content":   contentAlignment(true, func(s *pr.Style) *pr.ContentAlignment { return &s.Grid.AlignContent }),
		"justify-items":   itemAlignment(false, func(s *pr.Style) *pr.ItemAlignment { return &s.Grid.JustifyItems }),
		"align-items":     itemAlignment(false, func(s *pr.Style) *pr.ItemAlignment { return &s.Grid.AlignItems }),
		"justify-self":    itemAlignment(true, func(s *pr.Style) *pr.ItemAlignment { return &s.Item.JustifySelf }),
		"align-self":      itemAlignment(true, func(s *pr.Style) *pr.ItemAlignment { return &s.Item.AlignSelf }),

		"grid-template-columns": gridTemplate(true),
		"grid-template-rows":    gridTemplate(false),
		"grid-template-areas":   gridTemplateAreas,
		"grid-auto-columns":     gridAuto(func(s *pr.Style) *[]pr.TrackSizingFunction { return &s.Grid.AutoColumns }),
		"grid-auto-rows":        gridAuto(func(s *pr.Style) *[]pr.TrackSizingFunction { return &s.Grid.AutoRows }),
		"grid-auto-flow":        gridAutoFlow,

		"grid-column-start": gridLine(func(s *pr.Style) *pr.GridPosition { return &s.Item.ColumnStart }),
		"grid-column-end":   gridLine(func(s *pr.Style) *pr.GridPosition { return &s.Item.ColumnEnd }),
		"grid-row-start":    gridLine(func(s *pr.Style) *pr.GridPosition { return &s.Item.RowStart }),
		"grid-row-end":      gridLine(func(s *pr.Style) *pr.GridPosition { return &s.Item.RowEnd }),

		// shorthands
		"gap":         expandGap,
		"grid-gap":    expandGap,
		"grid-column": expandGridColumnRow(true),
		"grid-row":    expandGridColumnRow(false),
		"grid-area":   expandGridArea,
	}
}

// ParseStyle parses the content of a `style` attribute, starting
// from the initial style.
func ParseStyle(css string) pr.Style {
	style := pr.InitialStyle()
	ApplyDeclarations(&style, css)
	return style
}

// ApplyDeclarations parses `css` and updates `style` with
// the valid declarations, in order. Invalid ones are logged and skipped.
func ApplyDeclarations(style *pr.Style, css string) {
	declarations, errs := pa.ParseDeclarationList(css)
	for _, err := range errs {
		logger.WarningLogger.Warnf("Error: %s", err.Message)
	}
	for _, declaration := range declarations {
		if err := validate(declaration, style); err != nil {
			logger.WarningLogger.Warnf("Ignored `%s:%s` , %s.", declaration.Name, pa.Serialize(declaration.Value), err)
		}
	}
}

func validate(declaration pa.Declaration, style *pr.Style) error {
	name := string(declaration.Name)
	fn, ok := validators[name]
	if !ok {
		if strings.HasPrefix(name, "-") {
			return errors.New("prefixed selectors are ignored")
		}
		return ErrUnknownProperty
	}
	tokens := pa.RemoveWhitespace(declaration.Value)
	// Having no tokens is allowed by grammar but refused by all
	// properties and expanders.
	if len(tokens) == 0 {
		return errors.New("no value")
	}
	// validators only write on success
	return fn(tokens, style)
}

func getKeyword(token Token) string {
	if ident, ok := token.(pa.IdentToken); ok {
		return ident.Value.Lower()
	}
	return ""
}

// If `tokens` is a 1-element list of [IdentToken], return its name.
// Otherwise return empty string.
func getSingleKeyword(tokens []Token) string {
	if len(tokens) == 1 {
		return getKeyword(tokens[0])
	}
	return ""
}

// getLength returns a pixel length (px or unitless 0) or a percentage.
func getLength(token Token, negative, percentage bool) (pr.Length, bool) {
	switch token := token.(type) {
	case pa.PercentageToken:
		if percentage && (negative || token.Value >= 0) {
			return pr.PercentLength(token.Value), true
		}
	case pa.DimensionToken:
		factor, isKnown := lengthUnits[token.Unit.Lower()]
		if isKnown && (negative || token.Value >= 0) {
			return pr.PxLength(token.Value * factor), true
		}
	case pa.NumberToken:
		if token.Value == 0 {
			return pr.PxLength(0), true
		}
	}
	return pr.Length{}, false
}

// absolute units only: relative units would require the cascade
var lengthUnits = map[string]utils.Fl{
	"px": 1,
	"pt": 4. / 3,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 25.4 / 4,
}

// “display“ property validation.
func display(tokens []Token, style *pr.Style) error {
	switch getSingleKeyword(tokens) {
	case "block", "flow-root", "inline", "inline-block":
		style.Display = pr.DisplayBlock
	case "grid":
		style.Display = pr.DisplayGrid
	case "inline-grid":
		style.Display = pr.DisplayInlineGrid
	case "none":
		style.Display = pr.DisplayNone
	default:
		return ErrInvalidValue
	}
	return nil
}

// “direction“ property validation.
func direction(tokens []Token, style *pr.Style) error {
	switch getSingleKeyword(tokens) {
	case "ltr":
		style.Direction = pr.LTR
	case "rtl":
		style.Direction = pr.RTL
	default:
		return ErrInvalidValue
	}
	return nil
}

// “writing-mode“ property validation.
func writingMode(tokens []Token, style *pr.Style) error {
	switch getSingleKeyword(tokens) {
	case "horizontal-tb":
		style.WritingMode = pr.HorizontalTB
	case "vertical-rl":
		style.WritingMode = pr.VerticalRL
	case "vertical-lr":
		style.WritingMode = pr.VerticalLR
	default:
		return ErrInvalidValue
	}
	return nil
}

// Validation for the “width“ and “height“ properties.
func widthHeight(field func(*pr.Style) *pr.Length) validator {
	return func(tokens []Token, style *pr.Style) error {
		if len(tokens) != 1 {
			return ErrInvalidValue
		}
		if length, ok := getLength(tokens[0], false, true); ok {
			*field(style) = length
			return nil
		}
		if getKeyword(tokens[0]) == "auto" {
			*field(style) = pr.AutoLength
			return nil
		}
		return ErrInvalidValue
	}
}

// Validation for the min-* and max-* properties, whose
// initial keyword is `none` or `auto`.
func minMaxWidthHeight(initial string, field func(*pr.Style) *pr.Length) validator {
	return func(tokens []Token, style *pr.Style) error {
		if len(tokens) != 1 {
			return ErrInvalidValue
		}
		if length, ok := getLength(tokens[0], false, true); ok {
			*field(style) = length
			return nil
		}
		if getKeyword(tokens[0]) == initial {
			*field(style) = pr.AutoLength
			return nil
		}
		return ErrInvalidValue
	}
}

// “font-size“ property validation, for absolute lengths only.
func fontSize(tokens []Token, style *pr.Style) error {
	if len(tokens) == 1 {
		if length, ok := getLength(tokens[0], false, false); ok {
			style.FontSize = length.Value
			return nil
		}
	}
	return ErrInvalidValue
}

// “line-height“ property validation. Lengths are stored
// relatively to the font size.
func lineHeight(tokens []Token, style *pr.Style) error {
	if len(tokens) != 1 {
		return ErrInvalidValue
	}
	switch token := tokens[0].(type) {
	case pa.NumberToken:
		if token.Value >= 0 {
			style.LineHeight = token.Value
			return nil
		}
	case pa.PercentageToken:
		if token.Value >= 0 {
			style.LineHeight = token.Value / 100
			return nil
		}
	case pa.IdentToken:
		if token.Value.Lower() == "normal" {
			style.LineHeight = pr.InitialStyle().LineHeight
			return nil
		}
	default:
		if length, ok := getLength(token, false, false); ok && style.FontSize > 0 {
			style.LineHeight = length.Value / style.FontSize
			return nil
		}
	}
	return ErrInvalidValue
}

// “order“ property validation.
func order(tokens []Token, style *pr.Style) error {
	if len(tokens) == 1 {
		if number, ok := tokens[0].(pa.NumberToken); ok && number.IsInteger {
			style.Item.Order = pa.NumericToken(number).IntValue()
			return nil
		}
	}
	return ErrInvalidValue
}

// Validation for the “column-gap“ and "row-gap" property.
func gap(field func(*pr.Style) *pr.Length) validator {
	return func(tokens []Token, style *pr.Style) error {
		if len(tokens) != 1 {
			return ErrInvalidValue
		}
		if length, ok := getLength(tokens[0], false, true); ok {
			*field(style) = length
			return nil
		}
		if getKeyword(tokens[0]) == "normal" {
			*field(style) = pr.PxLength(0)
			return nil
		}
		return ErrInvalidValue
	}
}

// “justify-content“ and “align-content“ properties validation.
// `safe` and `unsafe` are accepted and ignored.
func contentAlignment(isAlign bool, field func(*pr.Style) *pr.ContentAlignment) validator {
	return func(tokens []Token, style *pr.Style) error {
		if len(tokens) == 2 {
			if kw := getKeyword(tokens[0]); kw != "safe" && kw != "unsafe" {
				return ErrInvalidValue
			}
			tokens = tokens[1:]
		}
		var value pr.ContentAlignment
		switch keyword := getSingleKeyword(tokens); keyword {
		case "normal":
			value = pr.ContentNormal
		case "start", "flex-start":
			value = pr.ContentStart
		case "end", "flex-end":
			value = pr.ContentEnd
		case "left", "right":
			if isAlign {
				return ErrInvalidValue
			}
			value = pr.ContentStart
			if keyword == "right" {
				value = pr.ContentEnd
			}
		case "center":
			value = pr.ContentCenter
		case "stretch":
			value = pr.ContentStretch
		case "space-between":
			value = pr.ContentSpaceBetween
		case "space-around":
			value = pr.ContentSpaceAround
		case "space-evenly":
			value = pr.ContentSpaceEvenly
		default:
			return ErrInvalidValue
		}
		*field(style) = value
		return nil
	}
}

// “*-items“ and “*-self“ properties validation.
func itemAlignment(isSelf bool, field func(*pr.Style) *pr.ItemAlignment) validator {
	return func(tokens []Token, style *pr.Style) error {
		if len(tokens) == 2 {
			kw1, kw2 := getKeyword(tokens[0]), getKeyword(tokens[1])
			switch {
			case kw1 == "safe" || kw1 == "unsafe":
				tokens = tokens[1:]
			case kw1 == "first" && kw2 == "baseline", kw1 == "baseline" && kw2 == "first":
				*field(style) = pr.ItemBaseline
				return nil
			default:
				return ErrInvalidValue
			}
		}
		var value pr.ItemAlignment
		switch getSingleKeyword(tokens) {
		case "auto":
			if !isSelf {
				return ErrInvalidValue
			}
			value = pr.ItemAuto
		case "normal":
			value = pr.ItemNormal
		case "start", "self-start", "flex-start", "left":
			value = pr.ItemStart
		case "end", "self-end", "flex-end", "right":
			value = pr.ItemEnd
		case "center":
			value = pr.ItemCenter
		case "stretch":
			value = pr.ItemStretch
		case "baseline":
			value = pr.ItemBaseline
		default:
			return ErrInvalidValue
		}
		*field(style) = value
		return nil
	}
}
