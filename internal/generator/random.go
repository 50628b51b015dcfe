package generator

const (
	walkDownThreshold = 0.33
	walkUpThreshold   = 0.66
)

// RandomWalk moves one step down, one step up or stays put on every tick,
// with roughly equal odds for each.
type RandomWalk struct {
	bounds   Bounds
	limits   Bounds
	rounding Rounding
	step     float64
	current  float64
	source   Source
}

func NewRandomWalk(bounds Bounds, source Source) (*RandomWalk, error) {
	rounding, limits, err := policy(bounds)
	if err != nil {
		return nil, err
	}
	return &RandomWalk{
		bounds:   bounds,
		limits:   limits,
		rounding: rounding,
		step:     bounds.stepSize(rounding),
		current:  limits.Clamp(rounding.Round(bounds.Mid())),
		source:   source,
	}, nil
}

func (r *RandomWalk) Next() float64 {
	sample := r.source.Float64()

	next := r.current
	if sample <= walkDownThreshold {
		next -= r.step
	} else if sample >= walkUpThreshold {
		next += r.step
	}

	r.current = r.limits.Clamp(r.rounding.Round(next))
	return r.current
}

func (r *RandomWalk) Inc() {}
func (r *RandomWalk) Dec() {}

func (r *RandomWalk) Current() float64 {
	return r.current
}

func (r *RandomWalk) Bounds() Bounds {
	return r.bounds
}

func (r *RandomWalk) Rounding() Rounding {
	return r.rounding
}

func (r *RandomWalk) StepSize() float64 {
	return r.step
}
