package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

type Mode string

const (
	ModeSine   Mode = "sine"
	ModeRandom Mode = "random"
	ModeKeys   Mode = "keys"
	ModeFlap   Mode = "flap"
)

var (
	ErrInvalidBounds = errors.New("invalid generator bounds")
	ErrInvalidPeriod = errors.New("invalid generator period")
	ErrUnknownMode   = errors.New("unknown generator mode")
)

// Generator produces a bounded sequence of metric values. Every
// implementation keeps Current() within Bounds() after each call.
type Generator interface {
	// Next returns the value for the current tick.
	Next() float64
	// Inc and Dec move the value by one step. Variants that are not
	// manually controlled ignore them.
	Inc()
	Dec()
	Current() float64
	Bounds() Bounds
	Rounding() Rounding
}

// Source is the entropy used by the random walk. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b Bounds) Validate() error {
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) || math.IsInf(b.Min, 0) || math.IsInf(b.Max, 0) {
		return fmt.Errorf("%w: [%v, %v] is not finite", ErrInvalidBounds, b.Min, b.Max)
	}
	if b.Min > b.Max {
		return fmt.Errorf("%w: min %v is greater than max %v", ErrInvalidBounds, b.Min, b.Max)
	}
	return nil
}

func (b Bounds) Mid() float64 {
	return (b.Max + b.Min) / 2
}

func (b Bounds) Clamp(value float64) float64 {
	return math.Min(math.Max(value, b.Min), b.Max)
}

// policy validates b and returns its rounding along with the clamp limits
// snapped onto that rounding grid.
func policy(b Bounds) (Rounding, Bounds, error) {
	if err := b.Validate(); err != nil {
		return 0, Bounds{}, err
	}
	rounding := RoundingFor(b)
	limits, err := rounding.Snap(b)
	if err != nil {
		return 0, Bounds{}, err
	}
	return rounding, limits, nil
}

// stepSize is a twentieth of the range, rounded with the generator policy.
func (b Bounds) stepSize(r Rounding) float64 {
	return r.Round((b.Max - b.Min) / 20)
}

func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeSine, ModeRandom, ModeKeys, ModeFlap:
		return Mode(value), nil
	case "":
		return ModeSine, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
}

// Params carries everything a generator of any mode could need. Period is
// only read by the sine wave and Source only by the random walk; a nil
// Source falls back to a time-independent default seeded with 1.
type Params struct {
	Bounds Bounds
	Period int
	Source Source
}

// New builds the generator for the given mode.
func New(mode Mode, params Params) (Generator, error) {
	switch mode {
	case ModeSine, "":
		return NewSine(params.Bounds, params.Period)
	case ModeRandom:
		source := params.Source
		if source == nil {
			source = rand.New(rand.NewSource(1)) //#nosec
		}
		return NewRandomWalk(params.Bounds, source)
	case ModeKeys:
		return NewStep(params.Bounds)
	case ModeFlap:
		return NewFlap(params.Bounds)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}
