package properties

import "fmt"

// Unit is the unit of a [Length].
type Unit uint8

const (
	UnitAuto Unit = iota
	Px
	Percent
)

// Length is a CSS length, possibly 'auto'.
type Length struct {
	Value Float
	Unit  Unit
}

// AutoLength is the zero value.
var AutoLength = Length{}

func PxLength(v Float) Length { return Length{Value: v, Unit: Px} }

func PercentLength(v Float) Length { return Length{Value: v, Unit: Percent} }

func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// Resolve returns the length in pixels, resolving percentages against basis.
// ok is false for 'auto', and for percentages when basis is not definite.
func (l Length) Resolve(basis Float, basisDefinite bool) (Float, bool) {
	switch l.Unit {
	case Px:
		return l.Value, true
	case Percent:
		if !basisDefinite {
			return 0, false
		}
		return l.Value * basis / 100, true
	default:
		return 0, false
	}
}

func (l Length) String() string {
	switch l.Unit {
	case Px:
		return fmt.Sprintf("%gpx", l.Value)
	case Percent:
		return fmt.Sprintf("%g%%", l.Value)
	default:
		return "auto"
	}
}

type Display uint8

const (
	DisplayBlock Display = iota
	DisplayGrid
	DisplayInlineGrid
	DisplayNone
)

var displayNames = [...]string{
	DisplayBlock:      "block",
	DisplayGrid:       "grid",
	DisplayInlineGrid: "inline-grid",
	DisplayNone:       "none",
}

func (d Display) String() string { return displayNames[d] }

// IsGrid returns true for grid and inline-grid.
func (d Display) IsGrid() bool { return d == DisplayGrid || d == DisplayInlineGrid }

type WritingMode uint8

const (
	HorizontalTB WritingMode = iota
	VerticalRL
	VerticalLR
)

func (wm WritingMode) String() string {
	switch wm {
	case VerticalRL:
		return "vertical-rl"
	case VerticalLR:
		return "vertical-lr"
	default:
		return "horizontal-tb"
	}
}

// IsHorizontal returns true if the inline axis is horizontal.
func (wm WritingMode) IsHorizontal() bool { return wm == HorizontalTB }

type Direction uint8

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ContentAlignment is the value of justify-content and align-content.
type ContentAlignment uint8

const (
	ContentNormal ContentAlignment = iota
	ContentStart
	ContentEnd
	ContentCenter
	ContentStretch
	ContentSpaceBetween
	ContentSpaceAround
	ContentSpaceEvenly
)

var contentAlignmentNames = [...]string{
	ContentNormal:       "normal",
	ContentStart:        "start",
	ContentEnd:          "end",
	ContentCenter:       "center",
	ContentStretch:      "stretch",
	ContentSpaceBetween: "space-between",
	ContentSpaceAround:  "space-around",
	ContentSpaceEvenly:  "space-evenly",
}

func (ca ContentAlignment) String() string { return contentAlignmentNames[ca] }

// IsStretch returns true if auto tracks should be stretched.
func (ca ContentAlignment) IsStretch() bool { return ca == ContentNormal || ca == ContentStretch }

// ItemAlignment is the value of justify-items, align-items,
// justify-self and align-self.
type ItemAlignment uint8

const (
	ItemAuto ItemAlignment = iota // only valid for *-self
	ItemNormal
	ItemStart
	ItemEnd
	ItemCenter
	ItemStretch
	ItemBaseline
)

var itemAlignmentNames = [...]string{
	ItemAuto:     "auto",
	ItemNormal:   "normal",
	ItemStart:    "start",
	ItemEnd:      "end",
	ItemCenter:   "center",
	ItemStretch:  "stretch",
	ItemBaseline: "baseline",
}

func (ia ItemAlignment) String() string { return itemAlignmentNames[ia] }

// GridStyle groups the properties of a grid container.
type GridStyle struct {
	TemplateColumns, TemplateRows []TrackSizingFunction
	LineNames                     NamedGridLines
	TemplateAreas                 GridTemplateAreas
	// AutoColumns and AutoRows are cycled through to size implicit tracks.
	// Empty means 'auto'.
	AutoColumns, AutoRows []TrackSizingFunction

	ColumnGap, RowGap Length

	AutoFlow AutoFlow

	JustifyContent, AlignContent ContentAlignment
	JustifyItems, AlignItems     ItemAlignment

	// SubgridColumns and SubgridRows are set by 'grid-template-{columns,rows}: subgrid'.
	// The template is then empty, and LineNames only holds
	// the optional subgrid line names.
	SubgridColumns, SubgridRows bool
}

// GridItemStyle groups the properties of an item of a grid container.
type GridItemStyle struct {
	ColumnStart, ColumnEnd GridPosition
	RowStart, RowEnd       GridPosition

	Order int

	JustifySelf, AlignSelf ItemAlignment
}

// Style is the computed style of a box. Only the properties
// used by the layout are supported.
type Style struct {
	Grid GridStyle
	Item GridItemStyle

	Width, Height       Length
	MinWidth, MinHeight Length
	MaxWidth, MaxHeight Length

	// FontSize is in pixels, LineHeight is a multiple of FontSize.
	FontSize, LineHeight Float

	Display     Display
	WritingMode WritingMode
	Direction   Direction
}

// InitialStyle returns the style of a box without declarations.
func InitialStyle() Style {
	return Style{
		FontSize:   16,
		LineHeight: 1.2,
	}
}
