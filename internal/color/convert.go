package color

import "github.com/chewxy/math32"

// SRGBToLinear applies the sRGB EOTF to a single component in [0,1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math32.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB applies the sRGB OETF to a single component in [0,1].
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math32.Pow(l, 1.0/2.4) - 0.055
}

// Unorm8 maps a component in [0,1] to a byte with rounding.
// Values outside the range saturate.
func Unorm8(v float32) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}

// FromUnorm8 maps a byte to [0,1].
func FromUnorm8(b uint8) float32 {
	return float32(b) / 255.0
}

// FromBytes builds a color from four 8-bit unorm components.
// If srgb is set, the RGB channels are decoded to linear light.
func FromBytes(r, g, b, a uint8, srgb bool) RGBA {
	if srgb {
		return RGBA{
			R: SRGBToLinearFast(r),
			G: SRGBToLinearFast(g),
			B: SRGBToLinearFast(b),
			A: FromUnorm8(a),
		}
	}
	return RGBA{FromUnorm8(r), FromUnorm8(g), FromUnorm8(b), FromUnorm8(a)}
}

// ToBytes encodes c as four 8-bit unorm components.
// If srgb is set, the RGB channels are encoded with the sRGB curve.
// Alpha is always stored linearly.
func (c RGBA) ToBytes(srgb bool) (r, g, b, a uint8) {
	if srgb {
		return LinearToSRGBFast(c.R), LinearToSRGBFast(c.G), LinearToSRGBFast(c.B), Unorm8(c.A)
	}
	return Unorm8(c.R), Unorm8(c.G), Unorm8(c.B), Unorm8(c.A)
}
