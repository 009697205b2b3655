// Package color provides the float32 color type used by the sample buffers
// and the conversions between linear light, sRGB and 8-bit storage.
package color

// RGBA is a straight-alpha color with float32 components.
// RGB components are linear unless a caller says otherwise.
type RGBA struct {
	R, G, B, A float32
}

// Transparent is the zero color.
var Transparent = RGBA{}

// Add returns the component-wise sum c + o.
func (c RGBA) Add(o RGBA) RGBA {
	return RGBA{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale multiplies every component by s.
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Lerp interpolates between a and b: a + (b-a)*t.
func Lerp(a, b RGBA, t float32) RGBA {
	return RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// Clamp saturates every component to [0,1].
func (c RGBA) Clamp() RGBA {
	return RGBA{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
