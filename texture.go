package softgpu

import (
	"fmt"
	stdimage "image"
	"io"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgpu/internal/image"
)

// Texture is an immutable 2D image that fragment shaders sample through
// Uniforms. It owns a private copy of its texels and is safe to share
// between pipelines and goroutines.
type Texture struct {
	buf    *image.Buf
	format gputypes.TextureFormat
}

var _ gpucontext.Texture = (*Texture)(nil)

// NewTexture creates a texture from tightly packed rows of pix.
//
// Supported formats are RGBA8Unorm, RGBA8UnormSrgb, BGRA8Unorm,
// BGRA8UnormSrgb and R8Unorm (sampled as grey). sRGB formats are decoded to
// linear light when sampled.
func NewTexture(width, height int, format gputypes.TextureFormat, pix []byte) (*Texture, error) {
	f, srgb, ok := texelFormat(format)
	if !ok {
		return nil, fmt.Errorf("%w: format %s", ErrInvalidTexture, format)
	}
	buf, err := image.New(width, height, f, srgb, pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTexture, err)
	}
	return &Texture{buf: buf, format: format}, nil
}

// TextureFromImage converts img into an RGBA8 texture. When srgb is set
// the texture is tagged RGBA8UnormSrgb and decoded to linear on sampling,
// which is what display-referred images such as PNG photos need.
func TextureFromImage(img stdimage.Image, srgb bool) (*Texture, error) {
	buf, err := image.FromStdImage(img, srgb)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTexture, err)
	}
	return &Texture{buf: buf, format: rgbaFormat(srgb)}, nil
}

// DecodeTexture decodes a PNG, JPEG, GIF, BMP, TIFF or WebP stream.
func DecodeTexture(r io.Reader, srgb bool) (*Texture, error) {
	buf, err := image.Decode(r, srgb)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTexture, err)
	}
	return &Texture{buf: buf, format: rgbaFormat(srgb)}, nil
}

// LoadTexture reads and decodes the image file at path.
func LoadTexture(path string, srgb bool) (*Texture, error) {
	buf, err := image.Load(path, srgb)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTexture, err)
	}
	return &Texture{buf: buf, format: rgbaFormat(srgb)}, nil
}

// Width returns the width in texels.
func (t *Texture) Width() int { return t.buf.Width() }

// Height returns the height in texels.
func (t *Texture) Height() int { return t.buf.Height() }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Texel returns texel (x, y) in linear light. Coordinates are clamped to
// the texture.
func (t *Texture) Texel(x, y int) Color {
	x = min(max(x, 0), t.buf.Width()-1)
	y = min(max(y, 0), t.buf.Height()-1)
	return Color(t.buf.Texel(x, y))
}

// Sample reads the texture at normalized (u, v) using the address modes and
// magnification filter of desc.
func (t *Texture) Sample(u, v float32, desc gputypes.SamplerDescriptor) Color {
	return Color(samplerState(desc).Sample(t.buf, u, v))
}

// Image returns the stored texels as an *image.NRGBA.
func (t *Texture) Image() *stdimage.NRGBA {
	return t.buf.ToStdImage()
}

func texelFormat(f gputypes.TextureFormat) (format image.Format, srgb, ok bool) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return image.FormatRGBA8, false, true
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return image.FormatRGBA8, true, true
	case gputypes.TextureFormatBGRA8Unorm:
		return image.FormatBGRA8, false, true
	case gputypes.TextureFormatBGRA8UnormSrgb:
		return image.FormatBGRA8, true, true
	case gputypes.TextureFormatR8Unorm:
		return image.FormatGray8, false, true
	default:
		return 0, false, false
	}
}

func rgbaFormat(srgb bool) gputypes.TextureFormat {
	if srgb {
		return gputypes.TextureFormatRGBA8UnormSrgb
	}
	return gputypes.TextureFormatRGBA8Unorm
}
