package softgpu

import (
	"fmt"

	"github.com/chewxy/math32"
)

// StandardAttributes is the attribute arity of the built-in meshes:
// color (r, g, b, a) followed by texture coordinates (u, v).
const StandardAttributes = 6

// Mesh is an indexed triangle list. When Indices is nil, every three
// consecutive vertices form a triangle.
type Mesh struct {
	Vertices []VertexIn
	Indices  []uint32
}

// TriangleCount returns the number of triangles the mesh describes.
func (m *Mesh) TriangleCount() int {
	if m.Indices == nil {
		return len(m.Vertices) / 3
	}
	return len(m.Indices) / 3
}

// validate checks the index buffer.
func (m *Mesh) validate() error {
	n := len(m.Indices)
	if m.Indices == nil {
		n = len(m.Vertices)
	}
	if n%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrIndexOutOfRange, n)
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at %d, %d vertices", ErrIndexOutOfRange, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// index returns the vertex index of corner k of triangle t.
func (m *Mesh) index(t, k int) int {
	if m.Indices == nil {
		return t*3 + k
	}
	return int(m.Indices[t*3+k])
}

// TriangleMesh returns a non-indexed mesh of one triangle.
func TriangleMesh(a, b, c VertexIn) *Mesh {
	return &Mesh{Vertices: []VertexIn{a, b, c}}
}

func standardVertex(p Vec3, c Color, u, v float32) VertexIn {
	return VertexIn{Position: p, Attributes: []float32{c.R, c.G, c.B, c.A, u, v}}
}

// Quad returns a size x size square in the XY plane centered on the
// origin, facing +Z with counter-clockwise winding. Corners are colored
// red, blue, green and white, with texture coordinates covering [0,1].
func Quad(size float32) *Mesh {
	h := size / 2
	return &Mesh{
		Vertices: []VertexIn{
			standardVertex(Vec3{-h, -h, 0}, RGB(1, 0, 0), 0, 1),
			standardVertex(Vec3{h, -h, 0}, RGB(0, 0, 1), 1, 1),
			standardVertex(Vec3{h, h, 0}, RGB(0, 1, 0), 1, 0),
			standardVertex(Vec3{-h, h, 0}, White, 0, 0),
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Cube returns an axis-aligned cube of the given edge length centered on
// the origin. Each face has its own four vertices so texture coordinates
// span [0,1] per face, and faces wind counter-clockwise seen from outside.
func Cube(size float32) *Mesh {
	h := size / 2
	faces := [6][3]Vec3{
		// normal, u axis, v axis with u x v = normal
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	}
	palette := [3]Color{RGB(1, 0, 0), RGB(0, 0, 1), RGB(0, 1, 0)}
	corners := [4][4]float32{
		// su, sv, tex u, tex v
		{-1, -1, 0, 1},
		{1, -1, 1, 1},
		{1, 1, 1, 0},
		{-1, 1, 0, 0},
	}

	m := &Mesh{}
	for _, face := range faces {
		n, u, v := face[0], face[1], face[2]
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			p := Vec3{
				(n[0] + c[0]*u[0] + c[1]*v[0]) * h,
				(n[1] + c[0]*u[1] + c[1]*v[1]) * h,
				(n[2] + c[0]*u[2] + c[1]*v[2]) * h,
			}
			col := palette[len(m.Vertices)%3]
			m.Vertices = append(m.Vertices, standardVertex(p, col, c[2], c[3]))
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Sphere returns a UV sphere of the given radius. Vertex colors are the
// absolute value of the unit normal; texture coordinates map longitude to
// u and latitude to v. Triangles touching the poles are degenerate.
func Sphere(radius float32, rings, segments int) *Mesh {
	rings = max(rings, 2)
	segments = max(segments, 3)

	m := &Mesh{}
	cols := segments + 1
	for i := 0; i <= rings; i++ {
		v := float32(i) / float32(rings)
		st, ct := math32.Sincos(math32.Pi * v)
		for j := 0; j <= segments; j++ {
			u := float32(j) / float32(segments)
			sp, cp := math32.Sincos(2 * math32.Pi * u)
			n := Vec3{st * cp, ct, st * sp}
			c := Color{math32.Abs(n[0]), math32.Abs(n[1]), math32.Abs(n[2]), 1}
			m.Vertices = append(m.Vertices, standardVertex(Vec3{n[0] * radius, n[1] * radius, n[2] * radius}, c, u, v))

			if i < rings && j < segments {
				a := uint32(i*cols + j)
				b := uint32((i+1)*cols + j)
				m.Indices = append(m.Indices, a, a+1, b+1, a, b+1, b)
			}
		}
	}
	return m
}
