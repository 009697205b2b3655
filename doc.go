// Package softgpu is a software implementation of the fixed-function part of
// a GPU triangle pipeline.
//
// # Overview
//
// A Pipeline takes triangles with arbitrary per-vertex attributes, runs a
// user-supplied vertex shader, clips the result in homogeneous clip space,
// rasterizes it with multisample anti-aliasing and a depth test, runs a
// user-supplied fragment shader and resolves the samples into an 8-bit
// image. Shaders are plain Go functions.
//
// # Quick Start
//
//	p, err := softgpu.New(640, 480, softgpu.WithSampleCount(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	prog := &softgpu.Program{
//	    Vertex: func(in softgpu.VertexIn, u *softgpu.Uniforms) softgpu.Vertex {
//	        return softgpu.Vertex{Position: u.MVP().MulPoint(in.Position), Attributes: in.Attributes}
//	    },
//	    Fragment: func(f *softgpu.Fragment, u *softgpu.Uniforms) (softgpu.Color, bool) {
//	        a := f.Attributes
//	        return softgpu.Color{R: a[0], G: a[1], B: a[2], A: a[3]}, false
//	    },
//	    VertexOutputs:  softgpu.StandardAttributes,
//	    FragmentInputs: softgpu.StandardAttributes,
//	}
//
//	u := softgpu.NewUniforms()
//	u.Projection = softgpu.Perspective(math.Pi/3, 640.0/480.0, 0.1, 100)
//	u.View = softgpu.LookAt(softgpu.Vec3{0, 0, 3}, softgpu.Vec3{}, softgpu.Vec3{0, 1, 0})
//
//	if err := p.Draw(softgpu.Cube(1), prog, u); err != nil {
//	    log.Fatal(err)
//	}
//	_ = p.Present().SavePNG("cube.png")
//
// # Coordinate Conventions
//
// Clip space follows WebGPU: a vertex is visible when -w <= x <= w,
// -w <= y <= w and 0 <= z <= w. Normalized device y points up; pixel rows
// are numbered from the top. Pixel centres sit at half-integer
// coordinates. Depth is z/w, and nearer samples win by default.
//
// # Rasterization Rules
//
// Vertices are snapped to 1/64 pixel and coverage is decided with exact
// integer edge functions and a top-left fill rule: triangles that share an
// edge never cover the same sample twice and never leave a gap. Attributes
// are interpolated perspective-correctly; depth is interpolated linearly in
// screen space.
//
// # Multisampling
//
// Each pixel stores 1, 2, 4, 8 or 16 color and depth samples at fixed
// sub-pixel positions. Present averages them with a box filter, so a pixel
// half covered by a white triangle on black resolves to mid grey. The
// fragment shader runs per sample by default, or once per pixel with
// WithShadingRate(PerPixel).
//
// # Concurrency
//
// A Pipeline renders on the calling goroutine in submission order. Its
// methods lock a mutex, so it may be shared, but draws never overlap. Use
// one Pipeline per goroutine to render independent frames in parallel.
//
// Present resolves only the 64x64 tiles that were drawn into during the
// current or previous frame. Static regions keep their resolved pixels.
// Frame.Damage lists the resolved tiles, and Frame.UploadDamage copies only
// those to a host texture.
package softgpu
