package balloon

import "errors"

var (
	// ErrUnknownColor indicates a color outside red, blue, green and yellow.
	ErrUnknownColor = errors.New("unknown balloon color")

	// ErrInvalidRange indicates a pop threshold range with min < 1 or max < min.
	ErrInvalidRange = errors.New("invalid pop threshold range")

	// ErrInvalidWeights indicates a weighted picker without positive weights.
	ErrInvalidWeights = errors.New("invalid color weights")
)
