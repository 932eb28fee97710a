package palette

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHex parses "#RGB" or "#RRGGBB". Short forms expand each digit by
// duplication, so "#5F5" equals "#55FF55".
func ParseHex(s string) (RGB, error) {
	if !strings.HasPrefix(s, "#") {
		return RGB{}, fmt.Errorf("invalid hex color %q: missing '#'", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return RGB{}, fmt.Errorf("invalid hex color %q: must be 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// HexToRGB is [ParseHex] for inputs already known to be valid. Invalid input
// yields black.
func HexToRGB(s string) RGB {
	c, _ := ParseHex(s)
	return c
}

// ParseTriple parses a decimal "r,g,b" triple. Components may be surrounded by
// spaces and must fit in a byte.
func ParseTriple(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("invalid color triple %q: want 3 components, got %d", s, len(parts))
	}
	var out [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color triple %q: component %d: %w", s, i+1, err)
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

// Parse accepts either notation: a leading '#' selects [ParseHex], anything
// else is tried as a [ParseTriple] decimal triple.
func Parse(s string) (RGB, error) {
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}
	return ParseTriple(s)
}

// Resolve turns a caller-supplied text/background pair into a [Pair]. Both
// strings must be non-empty and valid; otherwise both are discarded and a
// [Random] pair drawn from src is returned. The boolean reports whether the
// explicit colors were used.
func Resolve(text, background string, src Source) (Pair, bool) {
	if text == "" || background == "" {
		return Random(src), false
	}
	tc, err := Parse(text)
	if err != nil {
		return Random(src), false
	}
	bc, err := Parse(background)
	if err != nil {
		return Random(src), false
	}
	return Pair{Text: tc, Background: bc}, true
}

// String formats c as "#RRGGBB".
func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
