package balloon

import (
	"fmt"
	"strings"
)

// Color identifies a balloon category. Each color has its own pop threshold range.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
)

// Colors lists every balloon color in display order.
var Colors = []Color{Red, Blue, Green, Yellow}

// ParseColor converts a user supplied string into a Color.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return c, nil
}

// Valid reports whether c is one of the four known colors.
func (c Color) Valid() bool {
	switch c {
	case Red, Blue, Green, Yellow:
		return true
	}
	return false
}

func (c Color) String() string {
	return string(c)
}
