package properties

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/webgrid/utils"
)

// Float is the type of CSS lengths.
type Float = utils.Fl

// SizingKind is the tag of a [TrackSizingFunction].
type SizingKind uint8

const (
	Fixed SizingKind = iota // a length or a percentage
	Fr
	Auto
	MinContent
	MaxContent
	FitContent // fit-content(limit)
	MinMax
	Repeat
)

func (k SizingKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Fr:
		return "fr"
	case Auto:
		return "auto"
	case MinContent:
		return "min-content"
	case MaxContent:
		return "max-content"
	case FitContent:
		return "fit-content"
	case MinMax:
		return "minmax"
	case Repeat:
		return "repeat"
	default:
		return fmt.Sprintf("<kind %d>", k)
	}
}

const (
	RepeatAutoFill = -1
	RepeatAutoFit  = -2
)

// TrackSizingFunction is the sizing of one track (or of a repeated group
// of tracks). It is a tagged union, whose valid fields depend on [Kind] :
//   - Fixed : Value, in pixels or in percents of the grid container
//   - Fr : Value is the flex factor
//   - FitContent : Value is the limit, in pixels or percents
//   - MinMax : Min and Max, which are never Repeat nor MinMax
//   - Repeat : Count, Tracks and LineNames (len(Tracks)+1 lists)
type TrackSizingFunction struct {
	Min, Max *TrackSizingFunction

	Tracks    []TrackSizingFunction
	LineNames [][]string

	Value   Float
	Count   int // >= 1, RepeatAutoFill or RepeatAutoFit
	Kind    SizingKind
	Percent bool
}

func NewFixed(px Float) TrackSizingFunction { return TrackSizingFunction{Kind: Fixed, Value: px} }

func NewPercentage(p Float) TrackSizingFunction {
	return TrackSizingFunction{Kind: Fixed, Value: p, Percent: true}
}

func NewFr(weight Float) TrackSizingFunction { return TrackSizingFunction{Kind: Fr, Value: weight} }

func NewAuto() TrackSizingFunction { return TrackSizingFunction{Kind: Auto} }

func NewMinContent() TrackSizingFunction { return TrackSizingFunction{Kind: MinContent} }

func NewMaxContent() TrackSizingFunction { return TrackSizingFunction{Kind: MaxContent} }

func NewFitContent(limit TrackSizingFunction) TrackSizingFunction {
	return TrackSizingFunction{Kind: FitContent, Value: limit.Value, Percent: limit.Percent}
}

func NewMinMax(min, max TrackSizingFunction) TrackSizingFunction {
	return TrackSizingFunction{Kind: MinMax, Min: &min, Max: &max}
}

// NewRepeat returns repeat(count, tracks). lineNames may be nil.
func NewRepeat(count int, tracks []TrackSizingFunction, lineNames [][]string) TrackSizingFunction {
	if lineNames == nil {
		lineNames = make([][]string, len(tracks)+1)
	}
	return TrackSizingFunction{Kind: Repeat, Count: count, Tracks: tracks, LineNames: lineNames}
}

// IsAutoRepeat returns true for repeat(auto-fill, ...) and repeat(auto-fit, ...)
func (tf TrackSizingFunction) IsAutoRepeat() bool {
	return tf.Kind == Repeat && (tf.Count == RepeatAutoFill || tf.Count == RepeatAutoFit)
}

// MinSizingFunction returns the min track sizing function,
// in which flexible sizes are treated as 'auto'.
func (tf TrackSizingFunction) MinSizingFunction() TrackSizingFunction {
	switch tf.Kind {
	case MinMax:
		if tf.Min.Kind == Fr {
			return NewAuto()
		}
		return *tf.Min
	case Fr, FitContent:
		return NewAuto()
	default:
		return tf
	}
}

// MaxSizingFunction returns the max track sizing function.
func (tf TrackSizingFunction) MaxSizingFunction() TrackSizingFunction {
	if tf.Kind == MinMax {
		return *tf.Max
	}
	return tf
}

// IsIntrinsic returns true for content based sizes.
func (tf TrackSizingFunction) IsIntrinsic() bool {
	switch tf.Kind {
	case Auto, MinContent, MaxContent, FitContent:
		return true
	}
	return false
}

// IsFlexible returns true if the max sizing function is a flex factor.
func (tf TrackSizingFunction) IsFlexible() bool { return tf.MaxSizingFunction().Kind == Fr }

// FlexFactor returns the fr weight of the max sizing function, or 0.
func (tf TrackSizingFunction) FlexFactor() Float {
	if max := tf.MaxSizingFunction(); max.Kind == Fr {
		return max.Value
	}
	return 0
}

// IsDefinite returns true for fixed lengths, and for percentages
// when the percentage basis is definite.
func (tf TrackSizingFunction) IsDefinite(percentBasis utils.MaybeFloat) bool {
	return tf.Kind == Fixed && (!tf.Percent || percentBasis.Valid)
}

// Resolve returns the length of a Fixed or FitContent function.
// Percentages are resolved against percentBasis, which must be definite.
func (tf TrackSizingFunction) Resolve(percentBasis Float) Float {
	if tf.Percent {
		return tf.Value * percentBasis / 100
	}
	return tf.Value
}

// Equal performs a deep comparison.
func (tf TrackSizingFunction) Equal(other TrackSizingFunction) bool {
	if tf.Kind != other.Kind || tf.Value != other.Value || tf.Percent != other.Percent || tf.Count != other.Count {
		return false
	}
	switch tf.Kind {
	case MinMax:
		return tf.Min.Equal(*other.Min) && tf.Max.Equal(*other.Max)
	case Repeat:
		if len(tf.Tracks) != len(other.Tracks) || len(tf.LineNames) != len(other.LineNames) {
			return false
		}
		for i := range tf.Tracks {
			if !tf.Tracks[i].Equal(other.Tracks[i]) {
				return false
			}
		}
		for i := range tf.LineNames {
			if strings.Join(tf.LineNames[i], " ") != strings.Join(other.LineNames[i], " ") {
				return false
			}
		}
	}
	return true
}

func (tf TrackSizingFunction) String() string {
	switch tf.Kind {
	case Fixed:
		if tf.Percent {
			return fmt.Sprintf("%g%%", tf.Value)
		}
		return fmt.Sprintf("%gpx", tf.Value)
	case Fr:
		return fmt.Sprintf("%gfr", tf.Value)
	case FitContent:
		unit := "px"
		if tf.Percent {
			unit = "%"
		}
		return fmt.Sprintf("fit-content(%g%s)", tf.Value, unit)
	case MinMax:
		return fmt.Sprintf("minmax(%s, %s)", tf.Min, tf.Max)
	case Repeat:
		count := fmt.Sprint(tf.Count)
		switch tf.Count {
		case RepeatAutoFill:
			count = "auto-fill"
		case RepeatAutoFit:
			count = "auto-fit"
		}
		var chunks []string
		for i, names := range tf.LineNames {
			if len(names) != 0 {
				chunks = append(chunks, "["+strings.Join(names, " ")+"]")
			}
			if i < len(tf.Tracks) {
				chunks = append(chunks, tf.Tracks[i].String())
			}
		}
		return fmt.Sprintf("repeat(%s, %s)", count, strings.Join(chunks, " "))
	default:
		return tf.Kind.String()
	}
}

// PositionKind is the tag of a [GridPosition].
type PositionKind uint8

const (
	PositionAuto PositionKind = iota
	PositionSpan
	PositionExplicit
	PositionNamedArea
)

// GridPosition is the value of grid-{row,column}-{start,end}.
// See https://developer.mozilla.org/en-US/docs/Web/CSS/grid-row-start
//   - auto
//   - span <Integer> [<Name>]
//   - <Integer> [<Name>], Integer being non zero, possibly negative
//   - <Name>, for a named area (or line)
type GridPosition struct {
	Name    string
	Integer int
	Kind    PositionKind
}

func NewSpan(n int, name string) GridPosition {
	return GridPosition{Kind: PositionSpan, Integer: n, Name: name}
}

func NewLine(n int, name string) GridPosition {
	return GridPosition{Kind: PositionExplicit, Integer: n, Name: name}
}

func NewNamedArea(name string) GridPosition {
	return GridPosition{Kind: PositionNamedArea, Name: name}
}

func (gp GridPosition) IsAuto() bool { return gp.Kind == PositionAuto }

func (gp GridPosition) IsSpan() bool { return gp.Kind == PositionSpan }

// IsDefinite returns true for positions which directly name a line.
func (gp GridPosition) IsDefinite() bool {
	return gp.Kind == PositionExplicit || gp.Kind == PositionNamedArea
}

func (gp GridPosition) String() string {
	switch gp.Kind {
	case PositionSpan:
		return strings.TrimSpace(fmt.Sprintf("span %d %s", gp.Integer, gp.Name))
	case PositionExplicit:
		return strings.TrimSpace(fmt.Sprintf("%d %s", gp.Integer, gp.Name))
	case PositionNamedArea:
		return gp.Name
	default:
		return "auto"
	}
}

// NamedGridLines stores the line names of the explicit grid, for each axis.
// When not empty, each list has one more element than the number of
// tracks in the template (repeat() counting for one track, whose names
// are stored in the repeat function).
type NamedGridLines struct {
	Columns, Rows [][]string
}

// GridTemplateAreas is the value of grid-template-areas. An empty list means 'none'.
// Empty cells are stored as "".
type GridTemplateAreas [][]string

// IsNone returns true for the CSS 'none' keyword
func (gt GridTemplateAreas) IsNone() bool { return len(gt) == 0 }

// AutoFlow is the value of grid-auto-flow.
type AutoFlow struct {
	Column bool // false for 'row'
	Dense  bool
}

func (af AutoFlow) String() string {
	s := "row"
	if af.Column {
		s = "column"
	}
	if af.Dense {
		s += " dense"
	}
	return s
}
