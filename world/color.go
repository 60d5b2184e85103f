package world

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RGB is an immutable color value with one byte per channel. Equality is
// structural; the textual form is lowercase hex notation (#rrggbb).
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// White is the default color of every cell.
var White = RGB{R: 255, G: 255, B: 255}

// NewRGB validates that every channel lies in [0, 255].
func NewRGB(r, g, b int) (RGB, error) {
	for _, ch := range [3]int{r, g, b} {
		if ch < 0 || ch > 255 {
			return RGB{}, fmt.Errorf("%w: color channel %d not in range 0-255", ErrValidation, ch)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText renders the color as #rrggbb for JSON world documents.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses any form accepted by ParseColor.
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Colors maps color names to their values. It starts with the ten names the
// CodeHS docs list and the colors CodeHS emits for them. The map is mutable:
// callers may add or remove name-color pairs, and ultra-tier programs see
// the table under the name "color".
var Colors = map[string]RGB{
	"red":    {255, 0, 0},
	"green":  {0, 255, 0},
	"blue":   {0, 0, 255},
	"yellow": {255, 255, 0},
	"cyan":   {0, 255, 255},
	"orange": {255, 165, 0},
	"white":  {255, 255, 255},
	"black":  {0, 0, 0},
	"gray":   {204, 204, 204},
	"purple": {155, 48, 255},
}

var (
	rgbCallPattern      = regexp.MustCompile(`^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	rgbCallNamedPattern = regexp.MustCompile(`^rgb\(\s*r\s*=\s*(\d+)\s*,\s*g\s*=\s*(\d+)\s*,\s*b\s*=\s*(\d+)\s*\)$`)
)

// ParseColor resolves a textual color description into an RGB value.
// Recognized forms, tried in order after lowercasing:
//
//   - a name present in the Colors table
//   - 3-digit hex notation "#rgb" (each digit doubled)
//   - 6-digit hex notation "#rrggbb"
//   - call notation "rgb(r, g, b)" or "rgb(r=…, g=…, b=…)"
func ParseColor(s string) (RGB, error) {
	s = strings.ToLower(s)

	if c, ok := Colors[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		digits := s[1:]
		switch len(digits) {
		case 3:
			if isHex(digits) {
				r := parseHexByte(string([]byte{digits[0], digits[0]}))
				g := parseHexByte(string([]byte{digits[1], digits[1]}))
				b := parseHexByte(string([]byte{digits[2], digits[2]}))
				return RGB{R: r, G: g, B: b}, nil
			}
		case 6:
			if isHex(digits) {
				return RGB{
					R: parseHexByte(digits[0:2]),
					G: parseHexByte(digits[2:4]),
					B: parseHexByte(digits[4:6]),
				}, nil
			}
		}
		return RGB{}, fmt.Errorf("%w: %q is not a valid color string", ErrValidation, s)
	}

	for _, pattern := range []*regexp.Regexp{rgbCallPattern, rgbCallNamedPattern} {
		m := pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		var channels [3]int
		for i, digits := range m[1:] {
			n, err := strconv.Atoi(digits)
			if err != nil {
				return RGB{}, fmt.Errorf("%w: %q is not a valid color string", ErrValidation, s)
			}
			channels[i] = n
		}
		return NewRGB(channels[0], channels[1], channels[2])
	}

	return RGB{}, fmt.Errorf("%w: %q is not a valid color string", ErrValidation, s)
}

// ParseColorGrid resolves a grid of textual color descriptions, as found in
// world documents, into a grid of color values.
func ParseColorGrid(grid [][]string) ([][]RGB, error) {
	colors := make([][]RGB, len(grid))
	for i, row := range grid {
		colors[i] = make([]RGB, len(row))
		for j, s := range row {
			c, err := ParseColor(s)
			if err != nil {
				return nil, fmt.Errorf("colors[%d][%d]: %w", i, j, err)
			}
			colors[i][j] = c
		}
	}
	return colors, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

// parseHexByte assumes its input already passed isHex.
func parseHexByte(s string) uint8 {
	n, _ := strconv.ParseUint(s, 16, 8)
	return uint8(n)
}
