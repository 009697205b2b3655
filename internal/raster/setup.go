// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/softgpu/internal/clip"
)

// maxScreen bounds snapped coordinates so edge products stay well inside int64.
const maxScreen = 1 << 20

// edge is one integer edge function, pre-multiplied by the triangle's
// orientation so that its value is non-negative inside.
//
// For the edge i->j the value at p is a*(p.x-xi) + b*(p.y-yi), the signed
// area of (i, j, p). It is the unnormalized barycentric weight of the
// vertex opposite the edge.
type edge struct {
	a, b int64
	// bias is 0 for top-left edges and -1 otherwise, so that
	// w+bias >= 0 implements the fill rule on integer values.
	bias int64
}

// setup holds per-triangle state derived once before traversal.
type setup struct {
	pos   [3]fixed.Point26_6
	invW  [3]float32
	depth [3]float32
	edges [3]edge
	area  int64 // |2 * signed area| in 1/64 px squared units
	ccw   bool  // counter-clockwise in normalized device coordinates (y up)

	bounds image.Rectangle // pixels to visit, max exclusive
}

// toFixed snaps a screen coordinate to 26.6 fixed point.
func toFixed(f float32) fixed.Int26_6 {
	f *= 64
	switch {
	case !(f > -maxScreen):
		return -maxScreen
	case f > maxScreen:
		return maxScreen
	}
	return fixed.Int26_6(math32.Round(f))
}

// project performs the perspective divide and viewport transform.
// w must be positive, which clipping guarantees.
func project(v *clip.Vertex, width, height int) (p fixed.Point26_6, invW, depth float32) {
	invW = 1 / v.Pos[3]
	nx := v.Pos[0] * invW
	ny := v.Pos[1] * invW
	depth = v.Pos[2] * invW
	p.X = toFixed((nx + 1) * 0.5 * float32(width))
	p.Y = toFixed((1 - ny) * 0.5 * float32(height))
	return p, invW, depth
}

// init prepares tri for traversal inside clipRect. It reports false when the
// triangle has zero area or touches no pixel of clipRect.
func (s *setup) init(tri *clip.Triangle, width, height int, clipRect image.Rectangle) bool {
	for i := range tri {
		s.pos[i], s.invW[i], s.depth[i] = project(&tri[i], width, height)
	}

	p0, p1, p2 := s.pos[0], s.pos[1], s.pos[2]
	area := cross(p1.Sub(p0), p2.Sub(p0))
	if area == 0 {
		return false
	}
	sign := int64(1)
	if area < 0 {
		sign = -1
	}
	s.area = area * sign
	// Screen space is y-down, so a negative screen area is CCW in NDC.
	s.ccw = area < 0

	// Edge k is opposite vertex k.
	for k := range 3 {
		i, j := s.pos[(k+1)%3], s.pos[(k+2)%3]
		a := -int64(j.Y-i.Y) * sign
		b := int64(j.X-i.X) * sign
		var bias int64 = -1
		if a > 0 || (a == 0 && b > 0) {
			bias = 0
		}
		s.edges[k] = edge{a: a, b: b, bias: bias}
	}

	minX, maxX := minMax3(p0.X, p1.X, p2.X)
	minY, maxY := minMax3(p0.Y, p1.Y, p2.Y)
	s.bounds = image.Rect(minX.Floor(), minY.Floor(), maxX.Floor()+1, maxY.Floor()+1).Intersect(clipRect)
	return !s.bounds.Empty()
}

// weight evaluates edge k at p. The result is the unnormalized barycentric
// weight of vertex k, positive inside the triangle.
func (s *setup) weight(k int, p fixed.Point26_6) int64 {
	o := s.pos[(k+1)%3]
	e := s.edges[k]
	return e.a*int64(p.X-o.X) + e.b*int64(p.Y-o.Y)
}

func cross(u, v fixed.Point26_6) int64 {
	return int64(u.X)*int64(v.Y) - int64(u.Y)*int64(v.X)
}

func minMax3(a, b, c fixed.Int26_6) (lo, hi fixed.Int26_6) {
	lo, hi = a, a
	for _, v := range [2]fixed.Int26_6{b, c} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
