package generator

import (
	"fmt"
	"math"
	"strconv"
)

// Rounding is decided once per generator from the midpoint of its bounds.
type Rounding int

const (
	// RoundWhole rounds to integers, used for byte counts and percentages.
	RoundWhole Rounding = iota
	// RoundFine keeps two decimal places, used for fractions in [0,1].
	RoundFine
)

func RoundingFor(b Bounds) Rounding {
	if b.Mid() <= 1 {
		return RoundFine
	}
	return RoundWhole
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func (r Rounding) Round(value float64) float64 {
	if r == RoundFine {
		return math.Floor(value*100+0.5) / 100
	}
	return math.Floor(value + 0.5)
}

// Snap narrows b to the values the policy can produce, rounding Min up and
// Max down. Bounds with no such value between them are rejected.
func (r Rounding) Snap(b Bounds) (Bounds, error) {
	scale := r.scale()
	snapped := Bounds{
		Min: onGrid(b.Min, scale, math.Ceil),
		Max: onGrid(b.Max, scale, math.Floor),
	}
	if snapped.Min > snapped.Max {
		return Bounds{}, fmt.Errorf("%w: [%v, %v] holds no %s value", ErrInvalidBounds, b.Min, b.Max, r)
	}
	return snapped, nil
}

func (r Rounding) scale() float64 {
	if r == RoundFine {
		return 100
	}
	return 1
}

// onGrid keeps values already on the grid up to float noise, so 0.29 stays
// 0.29 instead of flooring 28.999999999999996.
func onGrid(value, scale float64, snap func(float64) float64) float64 {
	scaled := value * scale
	if nearest := math.Round(scaled); math.Abs(scaled-nearest) < 1e-9 {
		return nearest / scale
	}
	return snap(scaled) / scale
}

func (r Rounding) Format(value float64) string {
	if r == RoundFine {
		return strconv.FormatFloat(r.Round(value), 'f', 2, 64)
	}
	return strconv.FormatFloat(r.Round(value), 'f', 0, 64)
}

func (r Rounding) String() string {
	if r == RoundFine {
		return "fine"
	}
	return "whole"
}
