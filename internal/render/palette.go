package render

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a sequential colour ramp sampled by blending between stops.
type Palette struct {
	stops []colorful.Color
}

// ylOrRd is the ColorBrewer YlOrRd 9-class ramp, light to dark.
var ylOrRd = []string{
	"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c",
	"#fc4e2a", "#e31a1c", "#bd0026", "#800026",
}

// YlOrRd returns the yellow-orange-red ramp.
func YlOrRd() Palette {
	p, err := NewPalette(ylOrRd...)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPalette builds a ramp from at least two hex colours.
func NewPalette(hex ...string) (Palette, error) {
	if len(hex) < 2 {
		return Palette{}, fmt.Errorf("palette needs at least 2 colours, got %d", len(hex))
	}
	stops := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("parse colour %q: %w", h, err)
		}
		stops[i] = c
	}
	return Palette{stops: stops}, nil
}

// At returns the colour at t in [0, 1]; values outside are clamped.
func (p Palette) At(t float64) colorful.Color {
	if math.IsNaN(t) || t <= 0 {
		return p.stops[0]
	}
	if t >= 1 {
		return p.stops[len(p.stops)-1]
	}
	pos := t * float64(len(p.stops)-1)
	i := int(pos)
	return p.stops[i].BlendLab(p.stops[i+1], pos-float64(i)).Clamped()
}

// Scale maps v in [lo, hi] onto the ramp. A zero-width range maps to the
// darkest colour.
func (p Palette) Scale(v, lo, hi float64) colorful.Color {
	if hi <= lo {
		return p.At(1)
	}
	return p.At((v - lo) / (hi - lo))
}

// Stops returns the ramp's stops as hex strings.
func (p Palette) Stops() []string {
	out := make([]string, len(p.stops))
	for i, c := range p.stops {
		out[i] = c.Hex()
	}
	return out
}
