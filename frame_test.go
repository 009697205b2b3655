package softgpu

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// mockTexture records uploads like a host window texture.
type mockTexture struct {
	data    []byte
	updated int
	err     error
}

func (m *mockTexture) UpdateData(data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

// mockEvents stores the resize callback so tests can fire it.
type mockEvents struct {
	onResize func(int, int)
}

func (m *mockEvents) OnResize(fn func(width, height int)) {
	m.onResize = fn
}

// mockRegions records region uploads.
type mockRegions struct {
	rects []image.Rectangle
	bytes int
	first []byte
	err   error
}

func (m *mockRegions) UpdateRegion(x, y, w, h int, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if len(data) != w*h*4 {
		return fmt.Errorf("region %dx%d got %d bytes", w, h, len(data))
	}
	if m.first == nil {
		m.first = append([]byte(nil), data[:4]...)
	}
	m.rects = append(m.rects, image.Rect(x, y, x+w, y+h))
	m.bytes += len(data)
	return nil
}

func redFrame(t *testing.T, format gputypes.TextureFormat) *Frame {
	t.Helper()
	p := mustNew(t, 3, 2, WithOutputFormat(format), WithClearColor(RGB(1, 0, 0)))
	return p.Present()
}

func TestFrameImage(t *testing.T) {
	for _, format := range []gputypes.TextureFormat{
		gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatBGRA8Unorm,
	} {
		t.Run(format.String(), func(t *testing.T) {
			f := redFrame(t, format)
			if b := f.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
				t.Fatalf("Bounds() = %v, want 3x2", b)
			}
			if f.ColorModel() != color.NRGBAModel {
				t.Error("ColorModel() is not NRGBA")
			}
			want := color.NRGBA{R: 255, A: 255}
			if got := f.At(2, 1); got != want {
				t.Errorf("At(2,1) = %v, want %v", got, want)
			}
			if got := f.At(5, 5); got != (color.NRGBA{}) {
				t.Errorf("At outside = %v, want zero", got)
			}
			img := f.ToImage()
			if got := img.NRGBAAt(0, 0); got != want {
				t.Errorf("ToImage().NRGBAAt(0,0) = %v, want %v", got, want)
			}
		})
	}
}

func TestFrameSavePNG(t *testing.T) {
	f := redFrame(t, gputypes.TextureFormatBGRA8Unorm)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := f.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("png.Decode() = %v", err)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("decoded pixel = %v %v %v %v, want opaque red", r, g, b, a)
	}

	if err := f.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("SavePNG() into a missing directory succeeded")
	}
}

func TestFrameUploadTo(t *testing.T) {
	f := redFrame(t, gputypes.TextureFormatRGBA8Unorm)

	tex := &mockTexture{}
	if err := f.UploadTo(tex); err != nil {
		t.Fatalf("UploadTo() = %v", err)
	}
	if tex.updated != 1 || len(tex.data) != 3*2*4 {
		t.Fatalf("upload: %d calls, %d bytes", tex.updated, len(tex.data))
	}
	if tex.data[0] != 255 || tex.data[3] != 255 {
		t.Errorf("first pixel = %v, want red", tex.data[:4])
	}

	errGone := errors.New("device lost")
	if err := f.UploadTo(&mockTexture{err: errGone}); !errors.Is(err, errGone) {
		t.Errorf("UploadTo() = %v, want wrapped %v", err, errGone)
	}
}

func TestFrameUploadDamage(t *testing.T) {
	const w, h = 130, 70
	p := mustNew(t, w, h)
	p.Present()
	p.Present()

	tri := pixelTriangle(w, h, [3]image.Point{{70, 4}, {100, 4}, {70, 30}})
	if err := p.Draw(tri, clipProgram(solid(White), 0), nil); err != nil {
		t.Fatal(err)
	}
	f := p.Present()
	tile := image.Rect(64, 0, 128, 64)
	if d := f.Damage(); len(d) != 1 || d[0] != tile {
		t.Fatalf("Damage() = %v, want [%v]", d, tile)
	}

	tex := &mockRegions{}
	if err := f.UploadDamage(tex); err != nil {
		t.Fatalf("UploadDamage() = %v", err)
	}
	if len(tex.rects) != 1 || tex.rects[0] != tile || tex.bytes != 64*64*4 {
		t.Errorf("uploaded %v (%d bytes)", tex.rects, tex.bytes)
	}
	if want := pixel(f, 64, 0); string(tex.first) != string(want[:]) {
		t.Errorf("first uploaded pixel = %v, want %v", tex.first, want)
	}

	errGone := errors.New("device lost")
	if err := f.UploadDamage(&mockRegions{err: errGone}); !errors.Is(err, errGone) {
		t.Errorf("UploadDamage() = %v, want wrapped %v", err, errGone)
	}

	if d := p.Present().Damage(); len(d) != 1 {
		t.Errorf("next frame damage = %v, want the stale tile", d)
	}
	if d := p.Present().Damage(); len(d) != 0 {
		t.Errorf("idle frame damage = %v, want none", d)
	}
}

func TestAttachNullEventSource(t *testing.T) {
	p := mustNew(t, 4, 4)
	p.AttachEvents(gpucontext.NullEventSource{})
	if p.Width() != 4 {
		t.Errorf("width = %d, want 4", p.Width())
	}
}

func TestFrameClone(t *testing.T) {
	f := redFrame(t, gputypes.TextureFormatRGBA8Unorm)
	c := f.Clone()
	c.Pix()[0] = 7
	if f.Pix()[0] != 255 {
		t.Error("Clone shares pixel memory with the original")
	}
	if c.Width() != f.Width() || c.Format() != f.Format() {
		t.Error("Clone lost metadata")
	}
}

func TestAttachEvents(t *testing.T) {
	p := mustNew(t, 4, 4)
	ev := &mockEvents{}
	p.AttachEvents(ev)
	if ev.onResize == nil {
		t.Fatal("AttachEvents did not register a resize callback")
	}

	ev.onResize(10, 20)
	if p.Width() != 10 || p.Height() != 20 {
		t.Errorf("size = %dx%d, want 10x20", p.Width(), p.Height())
	}

	// minimized windows report zero size
	ev.onResize(0, 0)
	if p.Width() != 10 {
		t.Errorf("zero-size event changed width to %d", p.Width())
	}

	f := p.Present()
	if f.Width() != 10 || f.Height() != 20 {
		t.Errorf("frame = %dx%d, want 10x20", f.Width(), f.Height())
	}
}
