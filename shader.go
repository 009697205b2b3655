package softgpu

// VertexIn is one input vertex: an object-space position and a
// user-defined attribute vector (colors, UVs, normals...).
type VertexIn struct {
	Position   Vec3
	Attributes []float32
}

// Vertex is a homogeneous clip-space vertex produced by a vertex shader.
//
// Position may have any w before clipping. Attributes is the varying vector
// interpolated across the triangle; its length must equal the program's
// VertexOutputs.
type Vertex struct {
	Position   Vec4
	Attributes []float32
}

// Fragment is the input of a fragment shader.
//
// Attributes holds the perspective-correct interpolated varyings. The slice
// is reused between invocations: a shader must not retain it.
type Fragment struct {
	// X and Y are the pixel coordinates, origin top-left.
	X, Y int
	// Sample is the sub-sample index in per-sample shading, or -1 when the
	// fragment is shaded once per pixel.
	Sample int
	// Depth is the interpolated z/w in [0, 1].
	Depth float32
	// Barycentric holds the perspective-correct weights of the three
	// triangle vertices.
	Barycentric [3]float32
	Attributes  []float32
	FrontFacing bool
}

// VertexShader transforms one input vertex into clip space.
// It must be a pure function of its arguments.
type VertexShader func(in VertexIn, u *Uniforms) Vertex

// FragmentShader computes the color of one fragment. Returning discard=true
// drops the fragment: it writes neither color nor depth. It must be a pure
// function of its arguments.
type FragmentShader func(in *Fragment, u *Uniforms) (c Color, discard bool)

// Program pairs a vertex and a fragment shader with the attribute arity
// each side declares. The arities must agree; Draw verifies them before
// rasterizing anything.
type Program struct {
	Vertex         VertexShader
	Fragment       FragmentShader
	VertexOutputs  int
	FragmentInputs int
}

func (p *Program) validate() error {
	if p == nil || p.Vertex == nil || p.Fragment == nil {
		return ErrNilProgram
	}
	if p.VertexOutputs != p.FragmentInputs || p.VertexOutputs < 0 {
		return ErrAttributeArity
	}
	return nil
}
