package balloon

import "fmt"

// Range is the inclusive [Min, Max] interval a balloon's hidden pop threshold is drawn from.
type Range struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Validate checks that the range can be drawn from.
func (r Range) Validate() error {
	if r.Min < 1 || r.Max < r.Min {
		return fmt.Errorf("%w: [%d,%d]", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Ranges maps every color to its pop threshold range.
type Ranges map[Color]Range

// DefaultRanges returns the factory tuning used when no configuration overrides it.
func DefaultRanges() Ranges {
	return Ranges{
		Red:    {Min: 6, Max: 12},
		Blue:   {Min: 2, Max: 6},
		Green:  {Min: 10, Max: 16},
		Yellow: {Min: 4, Max: 9},
	}
}

// Validate checks that all four colors are present and drawable.
func (rs Ranges) Validate() error {
	for _, c := range Colors {
		r, ok := rs[c]
		if !ok {
			return fmt.Errorf("missing range for color %s", c)
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("color %s: %w", c, err)
		}
	}
	for c := range rs {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownColor, string(c))
		}
	}
	return nil
}

// Weight is the relative chance of a color being picked by a Picker.
type Weight struct {
	Color  Color `yaml:"color" json:"color"`
	Weight int   `yaml:"weight" json:"weight"`
}

// Weights is an ordered list of color weights. Order matters for reproducible picks.
type Weights []Weight

// DefaultWeights returns the production line mix: 30% red, 30% blue, 20% green, 20% yellow.
func DefaultWeights() Weights {
	return Weights{
		{Color: Red, Weight: 30},
		{Color: Blue, Weight: 30},
		{Color: Green, Weight: 20},
		{Color: Yellow, Weight: 20},
	}
}

// Total returns the sum of all weights.
func (ws Weights) Total() int {
	total := 0
	for _, w := range ws {
		total += w.Weight
	}
	return total
}

// Validate checks every weight is non-negative, refers to a known color,
// and that at least one weight is positive.
func (ws Weights) Validate() error {
	for _, w := range ws {
		if !w.Color.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownColor, string(w.Color))
		}
		if w.Weight < 0 {
			return fmt.Errorf("%w: %s has negative weight %d", ErrInvalidWeights, w.Color, w.Weight)
		}
	}
	if ws.Total() <= 0 {
		return fmt.Errorf("%w: total weight must be > 0", ErrInvalidWeights)
	}
	return nil
}
