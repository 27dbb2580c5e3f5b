// Package colour provides CSS colour string parsing.
package colour

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrNoPaint is returned by ParseCSS for values that paint nothing at all:
// the "transparent" keyword and fully transparent rgba() colours.
var ErrNoPaint = fmt.Errorf("colour paints nothing")

// ParseCSS parses a CSS colour value as produced by a computed-style
// snapshot: "#rgb", "#rrggbb", "rgb(r, g, b)" or "rgba(r, g, b, a)".
// The returned layer carries the colour's alpha. Fully transparent values
// (including the "transparent" keyword) return ErrNoPaint so callers can
// distinguish "paints nothing" from "unparsable".
func ParseCSS(s string) (Layer, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Layer{}, fmt.Errorf("empty colour value")
	}

	switch s {
	case "transparent", "none":
		return Layer{}, ErrNoPaint
	case "currentcolor", "inherit", "initial", "unset":
		// Keywords the snapshot should already have resolved.
		return Layer{}, fmt.Errorf("unresolved colour keyword %q", s)
	}

	if strings.HasPrefix(s, "#") {
		rgb, err := parseHex(s)
		if err != nil {
			return Layer{}, err
		}
		return Opaque(rgb), nil
	}

	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}

	return Layer{}, fmt.Errorf("unsupported colour value %q", s)
}

// parseHex parses "#rgb" and "#rrggbb" notations.
func parseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		_, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		r = r*16 + r
		g = g*16 + g
		b = b*16 + b
	case 6:
		_, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
	default:
		return RGB{}, fmt.Errorf("invalid hex colour %q: must be 3 or 6 hex digits", s)
	}
	return RGB{R: r, G: g, B: b}, nil
}

// parseRGBFunc parses "rgb(r, g, b)" and "rgba(r, g, b, a)" notations,
// accepting both comma- and space-separated component lists.
func parseRGBFunc(s string) (Layer, error) {
	open := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if open < 0 || end < open {
		return Layer{}, fmt.Errorf("malformed colour function %q", s)
	}

	body := s[open+1 : end]
	body = strings.ReplaceAll(body, "/", " ")
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return Layer{}, fmt.Errorf("colour function %q: want 3 or 4 components, got %d", s, len(fields))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Layer{}, fmt.Errorf("colour component %q: %w", fields[i], err)
		}
		if v < 0 || v > 255 {
			return Layer{}, fmt.Errorf("colour component %v out of range", v)
		}
		ch[i] = uint8(v + 0.5)
	}

	alpha := 1.0
	if len(fields) == 4 {
		v, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return Layer{}, fmt.Errorf("alpha component %q: %w", fields[3], err)
		}
		alpha = clamp01(v)
	}

	if alpha == 0 {
		return Layer{}, ErrNoPaint
	}

	return Layer{Colour: RGB{R: ch[0], G: ch[1], B: ch[2]}, Alpha: alpha}, nil
}
