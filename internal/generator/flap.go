package generator

// Flap is a square wave: min, max, min, max, ...
type Flap struct {
	bounds   Bounds
	limits   Bounds
	rounding Rounding
	current  float64
	started  bool
}

func NewFlap(bounds Bounds) (*Flap, error) {
	rounding, limits, err := policy(bounds)
	if err != nil {
		return nil, err
	}
	return &Flap{
		bounds:   bounds,
		limits:   limits,
		rounding: rounding,
		current:  limits.Min,
	}, nil
}

func (f *Flap) Next() float64 {
	// the first tick reports min without toggling, so the wave starts low
	// rather than at max
	if !f.started {
		f.started = true
		return f.current
	}
	if f.current == f.limits.Min {
		f.current = f.limits.Max
	} else {
		f.current = f.limits.Min
	}
	return f.current
}

func (f *Flap) Inc() {}
func (f *Flap) Dec() {}

func (f *Flap) Current() float64 {
	return f.current
}

func (f *Flap) Bounds() Bounds {
	return f.bounds
}

func (f *Flap) Rounding() Rounding {
	return f.rounding
}
