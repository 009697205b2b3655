package softgpu

import (
	stdcolor "image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgpu/internal/color"
)

// Color is a straight-alpha color in linear light with float32 components,
// nominally in [0, 1]. Fragment shaders return Colors; values outside the
// range saturate when the frame is resolved.
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

// RGB creates an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// FromGPU converts a gputypes.Color (float64 components) to a Color.
func FromGPU(c gputypes.Color) Color {
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)}
}

// GPU converts c to a gputypes.Color.
func (c Color) GPU() gputypes.Color {
	return gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// FromColor converts a standard library color to a Color. The input is
// treated as linear; use FromSRGB for display-referred colors.
func FromColor(c stdcolor.Color) Color {
	n := stdcolor.NRGBAModel.Convert(c).(stdcolor.NRGBA)
	return Color(color.FromBytes(n.R, n.G, n.B, n.A, false))
}

// FromSRGB decodes 8-bit sRGB components into linear light.
func FromSRGB(r, g, b, a uint8) Color {
	return Color(color.FromBytes(r, g, b, a, true))
}

// Lerp interpolates between c and o: c + (o-c)*t.
func (c Color) Lerp(o Color, t float32) Color {
	return Color(color.Lerp(color.RGBA(c), color.RGBA(o), t))
}

// Mul multiplies c component-wise by o. Shaders use it to modulate a texel
// by a vertex color.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Scale multiplies the RGB components by s, leaving alpha unchanged.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}
