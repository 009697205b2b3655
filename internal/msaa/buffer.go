// Package msaa stores per-sample color and depth and resolves them into
// pixels with a box filter.
package msaa

import (
	"errors"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgpu/internal/color"
)

// ErrInvalidSize is returned for non-positive dimensions or sample counts.
var ErrInvalidSize = errors.New("msaa: invalid size")

// State configures the per-sample tests and the clear values.
type State struct {
	// Compare decides whether an incoming depth replaces the stored one.
	// Undefined behaves like Less: nearer wins.
	Compare gputypes.CompareFunction
	// DepthWrite stores the depth of passing samples.
	DepthWrite bool

	ClearColor color.RGBA
	ClearDepth float32
}

// DefaultState returns the nearer-wins configuration with an opaque black
// clear color and the far-plane clear depth.
func DefaultState() State {
	return State{
		Compare:    gputypes.CompareFunctionLess,
		DepthWrite: true,
		ClearColor: color.RGBA{A: 1},
		ClearDepth: 1,
	}
}

// Buffer holds N color and depth samples per pixel.
//
// Samples of one pixel are contiguous. A Buffer is not safe for concurrent
// use.
type Buffer struct {
	width, height, samples int
	state                  State

	color []color.RGBA
	depth []float32
}

// New allocates a cleared buffer.
func New(width, height, samples int, state State) (*Buffer, error) {
	b := &Buffer{state: state}
	if err := b.Resize(width, height, samples); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize reallocates the buffer and clears it. Previous contents are lost.
func (b *Buffer) Resize(width, height, samples int) error {
	if width <= 0 || height <= 0 || samples <= 0 {
		return ErrInvalidSize
	}
	n := width * height * samples
	b.width, b.height, b.samples = width, height, samples
	if cap(b.color) >= n {
		b.color = b.color[:n]
		b.depth = b.depth[:n]
	} else {
		b.color = make([]color.RGBA, n)
		b.depth = make([]float32, n)
	}
	b.Clear()
	return nil
}

// SetState replaces the test configuration. It does not clear.
func (b *Buffer) SetState(s State) {
	b.state = s
}

// State returns the current configuration.
func (b *Buffer) State() State {
	return b.state
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Samples returns the number of samples per pixel.
func (b *Buffer) Samples() int { return b.samples }

// Clear resets every sample to the clear color and depth.
func (b *Buffer) Clear() {
	b.ClearRect(image.Rect(0, 0, b.width, b.height))
}

// ClearRect resets the samples of the pixels in r.
func (b *Buffer) ClearRect(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, b.width, b.height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		lo := b.index(r.Min.X, y, 0)
		hi := b.index(r.Max.X, y, 0)
		c, d := b.color[lo:hi], b.depth[lo:hi]
		for i := range c {
			c[i] = b.state.ClearColor
			d[i] = b.state.ClearDepth
		}
	}
}

func (b *Buffer) index(x, y, i int) int {
	return (y*b.width+x)*b.samples + i
}

// DepthTest reports whether depth would pass against sample i of pixel
// (x, y) without modifying the buffer.
func (b *Buffer) DepthTest(x, y, i int, depth float32) bool {
	return Compare(b.state.Compare, depth, b.depth[b.index(x, y, i)])
}

// Accumulate applies the depth test to sample i of pixel (x, y) and, when it
// passes, stores c and (if depth writes are enabled) depth. It reports
// whether the sample passed.
func (b *Buffer) Accumulate(x, y, i int, c color.RGBA, depth float32) bool {
	idx := b.index(x, y, i)
	if !Compare(b.state.Compare, depth, b.depth[idx]) {
		return false
	}
	b.color[idx] = c
	if b.state.DepthWrite {
		b.depth[idx] = depth
	}
	return true
}

// Sample returns the stored color and depth of sample i of pixel (x, y).
func (b *Buffer) Sample(x, y, i int) (color.RGBA, float32) {
	idx := b.index(x, y, i)
	return b.color[idx], b.depth[idx]
}

// Resolve returns the arithmetic mean of the samples of pixel (x, y).
// Untouched samples contribute the clear color.
func (b *Buffer) Resolve(x, y int) color.RGBA {
	lo := b.index(x, y, 0)
	var sum color.RGBA
	for _, c := range b.color[lo : lo+b.samples] {
		sum = sum.Add(c)
	}
	return sum.Scale(1 / float32(b.samples))
}

// Compare evaluates fn for an incoming and a stored depth.
func Compare(fn gputypes.CompareFunction, incoming, stored float32) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionEqual:
		return incoming == stored
	case gputypes.CompareFunctionLessEqual:
		return incoming <= stored
	case gputypes.CompareFunctionGreater:
		return incoming > stored
	case gputypes.CompareFunctionNotEqual:
		return incoming != stored
	case gputypes.CompareFunctionGreaterEqual:
		return incoming >= stored
	case gputypes.CompareFunctionAlways:
		return true
	default:
		return incoming < stored
	}
}
