package generator

import (
	"fmt"
	"math"
)

// Sine follows a sinusoid spanning the bounds, one full cycle every period
// calls to Next.
type Sine struct {
	bounds   Bounds
	limits   Bounds
	rounding Rounding
	mid      float64
	height   float64
	period   int
	index    int
	current  float64
}

func NewSine(bounds Bounds, period int) (*Sine, error) {
	rounding, limits, err := policy(bounds)
	if err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive, got %d", ErrInvalidPeriod, period)
	}
	s := &Sine{
		bounds:   bounds,
		limits:   limits,
		rounding: rounding,
		mid:      rounding.Round(bounds.Mid()),
		height:   rounding.Round((bounds.Max - bounds.Min) / 2),
		period:   period,
	}
	s.current = limits.Clamp(s.mid)
	return s, nil
}

func (s *Sine) Next() float64 {
	x := math.Pi * 2 * float64(s.index) / float64(s.period)
	// mid and height are rounded separately, the sum can overshoot by one unit
	s.current = s.limits.Clamp(s.rounding.Round(math.Sin(x)*s.height + s.mid))

	s.index++
	if s.index >= s.period {
		s.index = 0
	}
	return s.current
}

func (s *Sine) Inc() {}
func (s *Sine) Dec() {}

func (s *Sine) Current() float64 {
	return s.current
}

func (s *Sine) Bounds() Bounds {
	return s.bounds
}

func (s *Sine) Rounding() Rounding {
	return s.rounding
}

func (s *Sine) Period() int {
	return s.period
}

// Phase is the index the next call to Next evaluates.
func (s *Sine) Phase() int {
	return s.index
}
