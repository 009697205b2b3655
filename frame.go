package softgpu

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Frame is a resolved framebuffer: 4 bytes per pixel in the pipeline's
// output format, rows top to bottom.
//
// Frame implements image.Image. Pixels are straight (non-premultiplied)
// alpha.
type Frame struct {
	width, height int
	stride        int
	pix           []byte
	format        gputypes.TextureFormat
	stats         FrameStats
	damage        []image.Rectangle
}

var (
	_ image.Image  = (*Frame)(nil)
	_ ResizeSource = gpucontext.EventSource(nil)
)

func newFrame(width, height int, format gputypes.TextureFormat) *Frame {
	return &Frame{
		width:  width,
		height: height,
		stride: width * 4,
		pix:    make([]byte, width*height*4),
		format: format,
	}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Stride returns the number of bytes per row.
func (f *Frame) Stride() int { return f.stride }

// Format returns the byte layout of Pix.
func (f *Frame) Format() gputypes.TextureFormat { return f.format }

// Pix returns the pixel bytes. The slice aliases the frame; do not modify it.
func (f *Frame) Pix() []byte { return f.pix }

// Stats returns the counters of the draws that produced the frame.
func (f *Frame) Stats() FrameStats { return f.stats }

// Damage returns the pixel rectangles rewritten by the Present that
// produced the frame. Pixels outside them equal the previous frame.
func (f *Frame) Damage() []image.Rectangle { return f.damage }

// Clone returns a deep copy that is not affected by later Presents.
func (f *Frame) Clone() *Frame {
	c := *f
	c.pix = append([]byte(nil), f.pix...)
	c.damage = append([]image.Rectangle(nil), f.damage...)
	return &c
}

func (f *Frame) bgra() bool {
	return f.format == gputypes.TextureFormatBGRA8Unorm || f.format == gputypes.TextureFormatBGRA8UnormSrgb
}

// ColorModel implements the image.Image interface.
func (f *Frame) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements the image.Image interface.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// At implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return color.NRGBA{}
	}
	i := y*f.stride + x*4
	c := color.NRGBA{R: f.pix[i], G: f.pix[i+1], B: f.pix[i+2], A: f.pix[i+3]}
	if f.bgra() {
		c.R, c.B = c.B, c.R
	}
	return c
}

// ToImage returns the frame as an *image.NRGBA in RGBA byte order.
func (f *Frame) ToImage() *image.NRGBA {
	img := image.NewNRGBA(f.Bounds())
	copy(img.Pix, f.pix)
	if f.bgra() {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}
	return img
}

// SavePNG writes the frame to a PNG file.
func (f *Frame) SavePNG(path string) error {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	return png.Encode(file, f.ToImage())
}

// UploadTo copies the frame into a host texture of the same size and
// format, such as a window surface texture.
func (f *Frame) UploadTo(dst gpucontext.TextureUpdater) error {
	if err := dst.UpdateData(f.pix); err != nil {
		return fmt.Errorf("softgpu: texture upload failed: %w", err)
	}
	return nil
}

// UploadDamage copies only the rectangles listed by Damage into a host
// texture, one region at a time. dst must already hold the previous frame.
// The data slice passed to UpdateRegion is reused between calls.
func (f *Frame) UploadDamage(dst gpucontext.TextureRegionUpdater) error {
	var buf []byte
	for _, r := range f.damage {
		buf = buf[:0]
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := y * f.stride
			buf = append(buf, f.pix[row+r.Min.X*4:row+r.Max.X*4]...)
		}
		if err := dst.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), buf); err != nil {
			return fmt.Errorf("softgpu: region upload failed: %w", err)
		}
	}
	return nil
}

// ResizeSource delivers window resize notifications, as the event source
// of a gpucontext host does.
type ResizeSource interface {
	OnResize(fn func(width, height int))
}

// AttachEvents resizes the pipeline whenever src reports a new size.
// Zero sizes, sent by some hosts while minimized, are ignored.
func (p *Pipeline) AttachEvents(src ResizeSource) {
	src.OnResize(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		if err := p.Resize(width, height); err != nil {
			Logger().Warn("softgpu: resize from host failed", "width", width, "height", height, "err", err)
		}
	})
}
