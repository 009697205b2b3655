package image

import (
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Load decodes the image file at path into an RGBA8 buffer.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognized by content.
func Load(path string, srgb bool) (*Buf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, srgb)
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader, srgb bool) (*Buf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img, srgb)
}

// FromStdImage converts any image.Image to an RGBA8 buffer with straight
// alpha. The top-left of img.Bounds() becomes texel (0,0).
func FromStdImage(img image.Image, srgb bool) (*Buf, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}

	// Fast path: tightly packed NRGBA already has the target layout.
	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*w && n.Rect.Min == (image.Point{}) {
		return New(w, h, FormatRGBA8, srgb, n.Pix)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return New(w, h, FormatRGBA8, srgb, dst.Pix)
}

// ToStdImage converts the buffer to an *image.NRGBA holding the stored bytes.
func (b *Buf) ToStdImage() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := y*b.stride + x*bytesPerTexel[b.format]
			o := dst.PixOffset(x, y)
			switch b.format {
			case FormatBGRA8:
				dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = b.data[i+2], b.data[i+1], b.data[i], b.data[i+3]
			case FormatGray8:
				dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = b.data[i], b.data[i], b.data[i], 255
			default:
				copy(dst.Pix[o:o+4], b.data[i:i+4])
			}
		}
	}
	return dst
}
