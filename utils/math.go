package utils

import (
	"math"
)

// Fl is the floating point type used for every layout length.
type Fl = float64

// Inf is the sentinel used for unbounded growth limits and
// indefinite available sizes.
var Inf = Fl(math.Inf(1))

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func MaxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

func Maxs(values ...Fl) Fl {
	max := values[0]
	for _, w := range values {
		if w > max {
			max = w
		}
	}
	return max
}

func Mins(values ...Fl) Fl {
	min := values[0]
	for _, w := range values {
		if w < min {
			min = w
		}
	}
	return min
}

// Clamp returns v restricted to [min, max]. When min > max, min wins,
// as CSS requires for min/max-width.
func Clamp(v, min, max Fl) Fl {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}

func IsInf(f Fl) bool { return math.IsInf(f, 1) }

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return Fl(math.Round(f*n10) / n10)
}

// MaybeFloat is an optional length. The zero value is "auto",
// ie. an indefinite size.
type MaybeFloat struct {
	V     Fl
	Valid bool
}

// Some returns a definite value.
func Some(v Fl) MaybeFloat { return MaybeFloat{V: v, Valid: true} }

// Or returns the value, or def when m is indefinite.
func (m MaybeFloat) Or(def Fl) Fl {
	if m.Valid {
		return m.V
	}
	return def
}

func (m MaybeFloat) String() string {
	if !m.Valid {
		return "auto"
	}
	return fmtFloat(m.V)
}
