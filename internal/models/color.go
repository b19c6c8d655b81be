package models

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color. Two colors match only when every channel is equal.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseColor parses "#rrggbb", "#rgb" or the same without the leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("parse color: empty string")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustParseColor is ParseColor for package-level literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the "#rrggbb" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Palette is the fixed, ordered set of colors challenges are drawn from.
type Palette []Color

// DefaultPalette is the stock eight-color palette.
var DefaultPalette = Palette{
	MustParseColor("#fbd600"), // Yellow
	MustParseColor("#ffffff"), // White
	MustParseColor("#ff6b6b"), // Red
	MustParseColor("#4ecdc4"), // Teal
	MustParseColor("#45b7d1"), // Blue
	MustParseColor("#96ceb4"), // Green
	MustParseColor("#ffeaa7"), // Light Yellow
	MustParseColor("#dda0dd"), // Plum
}

// ParsePalette parses a comma separated list of colors.
func ParsePalette(s string) (Palette, error) {
	var p Palette
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseColor(part)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the palette can produce challenges: at least two colors, no duplicates.
func (p Palette) Validate() error {
	if len(p) < 2 {
		return fmt.Errorf("palette needs at least 2 colors, got %d", len(p))
	}
	seen := make(map[Color]struct{}, len(p))
	for _, c := range p {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("palette contains %s more than once", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Contains reports whether c is one of the palette colors.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Without returns the palette colors that are not equal to c.
func (p Palette) Without(c Color) Palette {
	out := make(Palette, 0, len(p))
	for _, pc := range p {
		if pc != c {
			out = append(out, pc)
		}
	}
	return out
}

// String renders the palette as a comma separated hex list, the format ParsePalette reads.
func (p Palette) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.Hex()
	}
	return strings.Join(parts, ",")
}
