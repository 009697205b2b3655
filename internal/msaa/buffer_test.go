package msaa

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgpu/internal/color"
)

func newBuffer(t *testing.T, w, h, n int) *Buffer {
	t.Helper()
	b, err := New(w, h, n, DefaultState())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return b
}

func TestNew_InvalidSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h, n int
	}{
		{"zero width", 0, 1, 4},
		{"negative height", 1, -1, 4},
		{"zero samples", 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.w, tt.h, tt.n, DefaultState()); err != ErrInvalidSize {
				t.Errorf("New error = %v, want ErrInvalidSize", err)
			}
		})
	}
}

func TestAccumulate_NearerWins(t *testing.T) {
	b := newBuffer(t, 1, 1, 1)
	red := color.RGBA{R: 1, A: 1}
	blue := color.RGBA{B: 1, A: 1}

	if !b.Accumulate(0, 0, 0, red, 0.5) {
		t.Fatal("first sample rejected")
	}
	if b.Accumulate(0, 0, 0, blue, 0.7) {
		t.Error("farther sample passed")
	}
	if b.Accumulate(0, 0, 0, blue, 0.5) {
		t.Error("equal depth passed with Less")
	}
	if c, d := b.Sample(0, 0, 0); c != red || d != 0.5 {
		t.Errorf("stored %+v @ %v, want red @ 0.5", c, d)
	}
	if !b.Accumulate(0, 0, 0, blue, 0.2) {
		t.Error("nearer sample rejected")
	}
	if c, _ := b.Sample(0, 0, 0); c != blue {
		t.Errorf("stored %+v, want blue", c)
	}
}

func TestSetState_KeepsStoredSamples(t *testing.T) {
	b := newBuffer(t, 1, 1, 1)
	red := color.RGBA{R: 1, A: 1}
	blue := color.RGBA{B: 1, A: 1}
	b.Accumulate(0, 0, 0, red, 0.5)

	s := b.State()
	s.Compare = gputypes.CompareFunctionAlways
	b.SetState(s)
	if b.State().Compare != gputypes.CompareFunctionAlways {
		t.Fatalf("State().Compare = %v, want Always", b.State().Compare)
	}
	if c, d := b.Sample(0, 0, 0); c != red || d != 0.5 {
		t.Fatalf("SetState changed stored sample to %+v @ %v", c, d)
	}
	if !b.Accumulate(0, 0, 0, blue, 0.9) {
		t.Error("farther sample rejected with Always")
	}
	if c, d := b.Sample(0, 0, 0); c != blue || d != 0.9 {
		t.Errorf("stored %+v @ %v, want blue @ 0.9", c, d)
	}
}

func TestAccumulate_FarClearDepthRejects(t *testing.T) {
	b := newBuffer(t, 1, 1, 1)
	if b.Accumulate(0, 0, 0, color.RGBA{R: 1, A: 1}, 1) {
		t.Error("sample at clear depth passed Less")
	}
}

func TestAccumulate_DepthWriteDisabled(t *testing.T) {
	s := DefaultState()
	s.DepthWrite = false
	b, err := New(1, 1, 1, s)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.Accumulate(0, 0, 0, color.RGBA{R: 1, A: 1}, 0.5)
	if _, d := b.Sample(0, 0, 0); d != 1 {
		t.Errorf("depth = %v, want untouched 1", d)
	}
	// Without depth writes a farther sample still passes against the clear depth.
	if !b.Accumulate(0, 0, 0, color.RGBA{G: 1, A: 1}, 0.9) {
		t.Error("sample rejected against clear depth")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		fn   gputypes.CompareFunction
		a, b float32
		want bool
	}{
		{gputypes.CompareFunctionUndefined, 0.1, 0.2, true},
		{gputypes.CompareFunctionNever, 0.1, 0.2, false},
		{gputypes.CompareFunctionLess, 0.2, 0.2, false},
		{gputypes.CompareFunctionLessEqual, 0.2, 0.2, true},
		{gputypes.CompareFunctionEqual, 0.2, 0.2, true},
		{gputypes.CompareFunctionNotEqual, 0.2, 0.2, false},
		{gputypes.CompareFunctionGreater, 0.3, 0.2, true},
		{gputypes.CompareFunctionGreaterEqual, 0.1, 0.2, false},
		{gputypes.CompareFunctionAlways, 5, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.fn.String(), func(t *testing.T) {
			if got := Compare(tt.fn, tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v, %v) = %v, want %v", tt.fn, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestResolve_PartialCoverage(t *testing.T) {
	bg := color.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1}
	fg := color.RGBA{R: 1, G: 0.5, B: 0, A: 1}
	for _, n := range []int{1, 2, 4, 8, 16} {
		for k := 0; k <= n; k++ {
			s := DefaultState()
			s.ClearColor = bg
			b, err := New(1, 1, n, s)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			for i := range k {
				b.Accumulate(0, 0, i, fg, 0.5)
			}
			got := b.Resolve(0, 0)
			f := float32(k) / float32(n)
			want := fg.Scale(f).Add(bg.Scale(1 - f))
			if !near(got, want, 1e-5) {
				t.Errorf("n=%d k=%d: resolve %+v, want %+v", n, k, got, want)
			}
		}
	}
}

func TestClearRect(t *testing.T) {
	b := newBuffer(t, 4, 4, 2)
	fg := color.RGBA{G: 1, A: 1}
	for y := range 4 {
		for x := range 4 {
			b.Accumulate(x, y, 0, fg, 0.5)
			b.Accumulate(x, y, 1, fg, 0.5)
		}
	}
	b.ClearRect(image.Rect(1, 1, 3, 3))
	for y := range 4 {
		for x := range 4 {
			inside := x >= 1 && x < 3 && y >= 1 && y < 3
			c, _ := b.Sample(x, y, 1)
			if inside != (c == b.State().ClearColor) {
				t.Errorf("pixel (%d,%d): %+v after ClearRect", x, y, c)
			}
		}
	}
}

func TestResolveRect_Layouts(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   [4]byte
	}{
		{"rgba", Layout{}, [4]byte{255, 128, 0, 255}},
		{"bgra", Layout{BGRA: true}, [4]byte{0, 128, 255, 255}},
		{"srgb", Layout{SRGB: true}, [4]byte{255, 188, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuffer(t, 2, 1, 1)
			b.Accumulate(1, 0, 0, color.RGBA{R: 1, G: 0.5, A: 1}, 0.5)
			dst := make([]byte, 8)
			b.ResolveRect(dst, 8, image.Rect(0, 0, 2, 1), tt.layout)
			var got [4]byte
			copy(got[:], dst[4:])
			if got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
			if dst[3] != 255 || dst[0] != 0 {
				t.Errorf("background pixel = %v, want opaque black", dst[:4])
			}
		})
	}
}

func TestResize(t *testing.T) {
	b := newBuffer(t, 2, 2, 4)
	b.Accumulate(0, 0, 0, color.RGBA{R: 1, A: 1}, 0.1)
	if err := b.Resize(3, 1, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if b.Width() != 3 || b.Height() != 1 || b.Samples() != 2 {
		t.Fatalf("size = %dx%dx%d", b.Width(), b.Height(), b.Samples())
	}
	if c, d := b.Sample(0, 0, 0); c != b.State().ClearColor || d != 1 {
		t.Errorf("resized buffer not cleared: %+v @ %v", c, d)
	}
	if err := b.Resize(0, 1, 1); err != ErrInvalidSize {
		t.Errorf("Resize(0,...) error = %v", err)
	}
}

func near(a, b color.RGBA, eps float64) bool {
	return math.Abs(float64(a.R-b.R)) <= eps && math.Abs(float64(a.G-b.G)) <= eps &&
		math.Abs(float64(a.B-b.B)) <= eps && math.Abs(float64(a.A-b.A)) <= eps
}
