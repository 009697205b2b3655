// Package image holds immutable texel buffers and the nearest/bilinear
// sampler used by fragment shaders.
package image

// Format represents a texel storage layout.
type Format uint8

const (
	// FormatRGBA8 is 32-bit RGBA, straight alpha (4 bytes per texel).
	FormatRGBA8 Format = iota

	// FormatBGRA8 is 32-bit BGRA, straight alpha (4 bytes per texel).
	FormatBGRA8

	// FormatGray8 is 8-bit luminance (1 byte per texel, opaque).
	FormatGray8

	formatCount
)

var bytesPerTexel = [formatCount]int{
	FormatRGBA8: 4,
	FormatBGRA8: 4,
	FormatGray8: 1,
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// BytesPerTexel returns the size of one texel, or 0 for unknown formats.
func (f Format) BytesPerTexel() int {
	if !f.IsValid() {
		return 0
	}
	return bytesPerTexel[f]
}

// RowBytes returns the minimum number of bytes for a row of width texels.
func (f Format) RowBytes(width int) int {
	return f.BytesPerTexel() * width
}

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	case FormatGray8:
		return "Gray8"
	default:
		return "Unknown"
	}
}
