package msaa

import (
	"image"

	"github.com/gogpu/softgpu/internal/color"
)

// Layout describes the byte layout of a resolved 4-byte-per-pixel target.
type Layout struct {
	// BGRA swaps the red and blue bytes.
	BGRA bool
	// SRGB encodes color channels with the sRGB curve. Alpha stays linear.
	SRGB bool
}

// ResolveRect box-filters the pixels in r into dst, whose rows start every
// stride bytes with pixel (0, 0) at offset 0.
func (b *Buffer) ResolveRect(dst []byte, stride int, r image.Rectangle, l Layout) {
	r = r.Intersect(image.Rect(0, 0, b.width, b.height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := dst[y*stride:]
		for x := r.Min.X; x < r.Max.X; x++ {
			l.put(row[x*4:x*4+4], b.Resolve(x, y))
		}
	}
}

func (l Layout) put(px []byte, c color.RGBA) {
	r, g, b, a := c.ToBytes(l.SRGB)
	if l.BGRA {
		r, b = b, r
	}
	px[0], px[1], px[2], px[3] = r, g, b, a
}
