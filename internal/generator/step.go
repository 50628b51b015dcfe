package generator

// Step holds its value until an operator moves it with Inc or Dec.
type Step struct {
	bounds   Bounds
	limits   Bounds
	rounding Rounding
	step     float64
	current  float64
}

func NewStep(bounds Bounds) (*Step, error) {
	rounding, limits, err := policy(bounds)
	if err != nil {
		return nil, err
	}
	return &Step{
		bounds:   bounds,
		limits:   limits,
		rounding: rounding,
		step:     bounds.stepSize(rounding),
		current:  limits.Clamp(rounding.Round(bounds.Mid())),
	}, nil
}

// Next does not advance anything.
func (s *Step) Next() float64 {
	return s.current
}

func (s *Step) Inc() {
	s.move(s.step)
}

func (s *Step) Dec() {
	s.move(-s.step)
}

func (s *Step) move(delta float64) {
	s.current = s.limits.Clamp(s.rounding.Round(s.current + delta))
}

func (s *Step) Current() float64 {
	return s.current
}

func (s *Step) Bounds() Bounds {
	return s.bounds
}

func (s *Step) Rounding() Rounding {
	return s.rounding
}

func (s *Step) StepSize() float64 {
	return s.step
}
