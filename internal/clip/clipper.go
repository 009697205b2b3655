// Package clip clips clip-space triangles against the view frustum.
//
// The visible volume is -w <= x <= w, -w <= y <= w, 0 <= z <= w, plus a
// guard plane w >= WEpsilon so that every retained vertex can be safely
// divided by w. Distances are evaluated in homogeneous coordinates, before
// any perspective divide.
package clip

// WEpsilon is the smallest w a clipped vertex may carry.
const WEpsilon = 1e-5

// Vertex is a clip-space position with its varyings.
type Vertex struct {
	Pos   [4]float32
	Attrs []float32
}

// Triangle is three vertices; their order defines the winding.
type Triangle [3]Vertex

// Plane identifies one clipping half-space.
type Plane uint8

// Clipping planes, in the order they are applied.
const (
	PlaneW Plane = iota
	PlaneNear
	PlaneFar
	PlaneLeft
	PlaneRight
	PlaneBottom
	PlaneTop

	planeCount
)

// Distance returns the signed distance of p from the plane boundary.
// Non-negative values are inside.
func (pl Plane) Distance(p [4]float32) float32 {
	x, y, z, w := p[0], p[1], p[2], p[3]
	switch pl {
	case PlaneW:
		return w - WEpsilon
	case PlaneNear:
		return z
	case PlaneFar:
		return w - z
	case PlaneLeft:
		return w + x
	case PlaneRight:
		return w - x
	case PlaneBottom:
		return w + y
	default:
		return w - y
	}
}

// Outcode returns a bit mask of the planes p lies outside of.
// Bit i corresponds to Plane(i).
func Outcode(p [4]float32) uint8 {
	var code uint8
	for pl := Plane(0); pl < planeCount; pl++ {
		if !(pl.Distance(p) >= 0) { // NaN is outside
			code |= 1 << pl
		}
	}
	return code
}

// Clipper reuses polygon scratch space across calls.
// A Clipper must not be used from multiple goroutines at once.
type Clipper struct {
	poly [2][]Vertex
}

// Clip appends the visible part of tri to dst as zero or more triangles and
// returns the extended slice.
//
// A triangle entirely inside the volume is appended unchanged. A triangle
// entirely outside one plane contributes nothing. Otherwise the clipped
// polygon is fan-triangulated from its first vertex, preserving winding.
// Vertices created on plane crossings carry freshly allocated attribute
// slices; input vertices are passed through as-is.
func (c *Clipper) Clip(tri Triangle, dst []Triangle) []Triangle {
	c0, c1, c2 := Outcode(tri[0].Pos), Outcode(tri[1].Pos), Outcode(tri[2].Pos)
	if c0|c1|c2 == 0 {
		return append(dst, tri)
	}
	if c0&c1&c2 != 0 {
		return dst
	}
	crossed := c0 | c1 | c2

	in := append(c.poly[0][:0], tri[0], tri[1], tri[2])
	out := c.poly[1][:0]
	for pl := Plane(0); pl < planeCount; pl++ {
		if crossed&(1<<pl) == 0 {
			continue
		}
		out = clipPolygon(in, out[:0], pl)
		in, out = out, in
		if len(in) < 3 {
			c.poly[0], c.poly[1] = in, out
			return dst
		}
	}
	c.poly[0], c.poly[1] = in, out

	for i := 1; i+1 < len(in); i++ {
		dst = append(dst, Triangle{in[0], in[i], in[i+1]})
	}
	return dst
}

// clipPolygon runs one Sutherland-Hodgman pass of in against pl.
func clipPolygon(in, out []Vertex, pl Plane) []Vertex {
	n := len(in)
	for i := range n {
		cur, next := in[i], in[(i+1)%n]
		dc, dn := pl.Distance(cur.Pos), pl.Distance(next.Pos)
		curIn, nextIn := dc >= 0, dn >= 0

		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			// Interpolate from the inside endpoint so both triangles sharing
			// this edge produce the identical crossing vertex.
			if curIn {
				out = append(out, intersect(cur, next, dc/(dc-dn)))
			} else {
				out = append(out, intersect(next, cur, dn/(dn-dc)))
			}
		}
	}
	return out
}

// intersect returns a + (b-a)*t for position and every attribute.
func intersect(a, b Vertex, t float32) Vertex {
	var v Vertex
	for i := range v.Pos {
		v.Pos[i] = a.Pos[i] + (b.Pos[i]-a.Pos[i])*t
	}
	if len(a.Attrs) > 0 {
		v.Attrs = make([]float32, len(a.Attrs))
		for i := range v.Attrs {
			v.Attrs[i] = a.Attrs[i] + (b.Attrs[i]-a.Attrs[i])*t
		}
	}
	return v
}
