package image

import (
	"errors"

	"github.com/gogpu/softgpu/internal/color"
)

// Common errors for buffer construction.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrDataSize is returned when the texel data does not match the dimensions.
	ErrDataSize = errors.New("image: data size does not match dimensions")
)

// Buf is an immutable, tightly packed texel buffer.
//
// A Buf owns its bytes: constructors copy the input, so it is safe to read
// from any number of goroutines without synchronization.
type Buf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
	srgb   bool
}

// New copies data into a new buffer. len(data) must equal
// format.RowBytes(width)*height. If srgb is set, color channels are stored
// sRGB-encoded and decoded to linear light on read.
func New(width, height int, format Format, srgb bool, data []byte) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	stride := format.RowBytes(width)
	if len(data) != stride*height {
		return nil, ErrDataSize
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Buf{
		data:   owned,
		width:  width,
		height: height,
		stride: stride,
		format: format,
		srgb:   srgb,
	}, nil
}

// Width returns the buffer width in texels.
func (b *Buf) Width() int { return b.width }

// Height returns the buffer height in texels.
func (b *Buf) Height() int { return b.height }

// Format returns the storage layout.
func (b *Buf) Format() Format { return b.format }

// SRGB reports whether color channels are sRGB-encoded.
func (b *Buf) SRGB() bool { return b.srgb }

// Bytes returns a copy of the raw texel data.
func (b *Buf) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Texel returns the texel at (x, y) as a linear color.
// Coordinates must already be inside the buffer.
func (b *Buf) Texel(x, y int) color.RGBA {
	i := y*b.stride + x*bytesPerTexel[b.format]
	switch b.format {
	case FormatBGRA8:
		return color.FromBytes(b.data[i+2], b.data[i+1], b.data[i], b.data[i+3], b.srgb)
	case FormatGray8:
		v := b.data[i]
		return color.FromBytes(v, v, v, 255, b.srgb)
	default:
		return color.FromBytes(b.data[i], b.data[i+1], b.data[i+2], b.data[i+3], b.srgb)
	}
}
