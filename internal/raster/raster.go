// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster converts clipped clip-space triangles into sample points.
//
// Vertex positions are projected to the screen and snapped to 26.6 fixed
// point. Coverage is decided by exact integer edge functions with a top-left
// fill rule, so triangles sharing an edge partition its samples: no sample is
// covered twice and none is dropped. Depth is interpolated linearly in screen
// space; attributes are interpolated perspective-correctly.
package raster

import (
	"image"
	"iter"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/softgpu/internal/clip"
)

// Sample is one covered sub-sample of a pixel. Traversals yield covered
// samples only.
//
// A Sample yielded by an iterator is owned by the Rasterizer and is
// overwritten on the next step; copy what must outlive the loop body.
type Sample struct {
	X, Y  int // pixel
	Index int // sub-sample index into the pattern

	// Linear holds the screen-space barycentric weights, summing to 1.
	Linear [3]float32
	// Perspective holds the perspective-corrected weights, summing to 1.
	Perspective [3]float32

	// Depth is z/w interpolated linearly in screen space.
	Depth float32
	// Attrs holds the perspective-correct interpolated attributes.
	Attrs []float32

	FrontFacing bool
}

// Fragment is one pixel touched by a triangle, with a coverage mask over its
// sub-samples. Attributes are evaluated once per pixel: at the pixel centre
// when every sample is covered, otherwise at the first covered sample.
type Fragment struct {
	X, Y     int
	Coverage uint32 // bit i set when sample i is covered
	// Depth holds per-sample depth, valid for covered samples only.
	Depth [MaxSamples]float32

	Perspective [3]float32
	Attrs       []float32

	FrontFacing bool
}

// Rasterizer walks triangles over a fixed viewport. It reuses its scratch
// Sample, Fragment and attribute storage between steps, so a Rasterizer
// serves one traversal at a time and must not be shared between goroutines.
type Rasterizer struct {
	width, height int
	pattern       Pattern
	sampleMask    uint32
	scissor       image.Rectangle
	ccwFront      bool

	setup  setup
	offset [3][MaxSamples]int64 // per-edge weight delta of each sample from the pixel corner
	attrs  []float32
	sample Sample
	frag   Fragment
}

// New creates a rasterizer for a width x height viewport using pattern.
func New(width, height int, pattern Pattern) *Rasterizer {
	r := &Rasterizer{ccwFront: true}
	r.Reset(width, height, pattern)
	return r
}

// Reset changes the viewport and pattern and clears the scissor.
func (r *Rasterizer) Reset(width, height int, pattern Pattern) {
	r.width, r.height = width, height
	r.pattern = pattern
	r.sampleMask = ^uint32(0)
	r.scissor = image.Rect(0, 0, width, height)
}

// SetScissor restricts traversal to rect intersected with the viewport.
func (r *Rasterizer) SetScissor(rect image.Rectangle) {
	r.scissor = rect.Intersect(image.Rect(0, 0, r.width, r.height))
}

// SetSampleMask disables samples whose bit is clear.
func (r *Rasterizer) SetSampleMask(mask uint32) {
	r.sampleMask = mask
}

// SetFrontFaceCCW selects which winding in normalized device coordinates
// counts as front facing.
func (r *Rasterizer) SetFrontFaceCCW(ccw bool) {
	r.ccwFront = ccw
}

// SampleCount returns the number of samples per pixel.
func (r *Rasterizer) SampleCount() int {
	return len(r.pattern)
}

// Winding reports whether tri is counter-clockwise in normalized device
// coordinates after snapping. ok is false for zero-area triangles.
func (r *Rasterizer) Winding(tri *clip.Triangle) (ccw, ok bool) {
	var p [3]fixed.Point26_6
	for i := range tri {
		p[i], _, _ = project(&tri[i], r.width, r.height)
	}
	a := cross(p[1].Sub(p[0]), p[2].Sub(p[0]))
	return a < 0, a != 0
}

// Bounds returns the pixels a traversal of tri may visit, clipped to the
// viewport but not to the scissor. It is empty for zero-area triangles.
func (r *Rasterizer) Bounds(tri *clip.Triangle) image.Rectangle {
	var s setup
	if !s.init(tri, r.width, r.height, image.Rect(0, 0, r.width, r.height)) {
		return image.Rectangle{}
	}
	return s.bounds
}

// prepare runs triangle setup and sizes the attribute scratch.
func (r *Rasterizer) prepare(tri *clip.Triangle) bool {
	if !r.setup.init(tri, r.width, r.height, r.scissor) {
		return false
	}
	for k, e := range r.setup.edges {
		for s, o := range r.pattern {
			r.offset[k][s] = e.a*int64(o.X) + e.b*int64(o.Y)
		}
	}
	n := len(tri[0].Attrs)
	if cap(r.attrs) < n {
		r.attrs = make([]float32, n)
	}
	r.attrs = r.attrs[:n]
	return true
}

// Samples returns the covered sample points of tri in row-major pixel order,
// samples in pattern order within a pixel. Setup runs lazily on the first
// step; zero-area and off-screen triangles yield nothing. tri's vertices
// must satisfy w > 0 and share one attribute arity.
func (r *Rasterizer) Samples(tri *clip.Triangle) iter.Seq[*Sample] {
	return func(yield func(*Sample) bool) {
		if !r.prepare(tri) {
			return
		}
		st := &r.setup
		smp := &r.sample
		smp.FrontFacing = st.ccw == r.ccwFront
		smp.Attrs = r.attrs
		n := len(r.pattern)

		for y := st.bounds.Min.Y; y < st.bounds.Max.Y; y++ {
			corner := fixed.Point26_6{X: fixed.I(st.bounds.Min.X), Y: fixed.I(y)}
			base := [3]int64{st.weight(0, corner), st.weight(1, corner), st.weight(2, corner)}
			for x := st.bounds.Min.X; x < st.bounds.Max.X; x++ {
				for s := range n {
					if r.sampleMask&(1<<s) == 0 {
						continue
					}
					var w [3]int64
					if !r.cover(base, s, &w) {
						continue
					}
					smp.X, smp.Y, smp.Index = x, y, s
					r.interpolate(tri, w, &smp.Linear, &smp.Perspective, &smp.Depth)
					if !yield(smp) {
						return
					}
				}
				for k := range base {
					base[k] += st.edges[k].a * 64
				}
			}
		}
	}
}

// Fragments returns one Fragment per pixel with at least one covered sample,
// in row-major order.
func (r *Rasterizer) Fragments(tri *clip.Triangle) iter.Seq[*Fragment] {
	return func(yield func(*Fragment) bool) {
		if !r.prepare(tri) {
			return
		}
		st := &r.setup
		f := &r.frag
		f.FrontFacing = st.ccw == r.ccwFront
		f.Attrs = r.attrs
		n := len(r.pattern)
		full := uint32(1)<<n - 1

		for y := st.bounds.Min.Y; y < st.bounds.Max.Y; y++ {
			corner := fixed.Point26_6{X: fixed.I(st.bounds.Min.X), Y: fixed.I(y)}
			base := [3]int64{st.weight(0, corner), st.weight(1, corner), st.weight(2, corner)}
			for x := st.bounds.Min.X; x < st.bounds.Max.X; x++ {
				var mask uint32
				first := -1
				var firstW [3]int64
				for s := range n {
					if r.sampleMask&(1<<s) == 0 {
						continue
					}
					var w [3]int64
					if !r.cover(base, s, &w) {
						continue
					}
					mask |= 1 << s
					f.Depth[s] = r.depthAt(w)
					if first < 0 {
						first, firstW = s, w
					}
				}

				if mask != 0 {
					w := firstW
					if mask == full {
						p := fixed.Point26_6{X: fixed.I(x) + Centre.X, Y: fixed.I(y) + Centre.Y}
						w = [3]int64{st.weight(0, p), st.weight(1, p), st.weight(2, p)}
					}
					f.X, f.Y, f.Coverage = x, y, mask
					var lin [3]float32
					var depth float32
					r.interpolate(tri, w, &lin, &f.Perspective, &depth)
					if !yield(f) {
						return
					}
				}

				for k := range base {
					base[k] += st.edges[k].a * 64
				}
			}
		}
	}
}

// cover evaluates the three edge functions for sample s of the pixel whose
// corner weights are base, applying the top-left rule.
func (r *Rasterizer) cover(base [3]int64, s int, w *[3]int64) bool {
	for k := range 3 {
		w[k] = base[k] + r.offset[k][s]
		if w[k]+r.setup.edges[k].bias < 0 {
			return false
		}
	}
	return true
}

func (r *Rasterizer) depthAt(w [3]int64) float32 {
	st := &r.setup
	inv := 1 / float64(st.area)
	return float32(float64(w[0])*inv)*st.depth[0] +
		float32(float64(w[1])*inv)*st.depth[1] +
		float32(float64(w[2])*inv)*st.depth[2]
}

// interpolate turns integer weights into screen-space and perspective-correct
// barycentrics, depth, and attributes written to r.attrs.
func (r *Rasterizer) interpolate(tri *clip.Triangle, w [3]int64, lin, persp *[3]float32, depth *float32) {
	st := &r.setup
	inv := 1 / float64(st.area)
	var q [3]float32
	var sum float32
	for k := range 3 {
		lin[k] = float32(float64(w[k]) * inv)
		q[k] = lin[k] * st.invW[k]
		sum += q[k]
	}
	*depth = lin[0]*st.depth[0] + lin[1]*st.depth[1] + lin[2]*st.depth[2]
	for k := range 3 {
		persp[k] = q[k] / sum
	}

	a0, a1, a2 := tri[0].Attrs, tri[1].Attrs, tri[2].Attrs
	for i := range r.attrs {
		r.attrs[i] = persp[0]*a0[i] + persp[1]*a1[i] + persp[2]*a2[i]
	}
}
