package softgpu

import (
	"fmt"
	"image"
	"math/bits"
	"sync"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgpu/internal/clip"
	"github.com/gogpu/softgpu/internal/color"
	"github.com/gogpu/softgpu/internal/msaa"
	"github.com/gogpu/softgpu/internal/parallel"
	"github.com/gogpu/softgpu/internal/raster"
)

// MaxDimension is the largest supported framebuffer width or height.
const MaxDimension = 1 << 14

// FrameStats counts the work done since the last Present or Clear.
type FrameStats struct {
	Draws     int // accepted Draw calls
	Triangles int // triangles submitted
	Clipped   int // triangles produced by clipping, before culling
	Culled    int // triangles dropped by face culling or zero area

	FragmentsShaded int // fragment shader invocations
	Discarded       int // invocations that discarded
	SamplesWritten  int // samples that passed the depth test
	DepthRejected   int // samples that failed the depth test

	TilesResolved int // 64x64 tiles resolved by Present
}

// Pipeline is a software triangle pipeline with a multisampled color and
// depth accumulator.
//
// A frame is built by any number of Draw calls and finished by Present,
// which resolves the samples into 8-bit pixels and clears the accumulator
// for the next frame. Triangles are processed in submission order, so with
// equal depths the later draw wins.
//
// Presenting only resolves the 64x64 tiles drawn into during this frame or
// the previous one; the rest of the frame already holds the clear color.
//
// Pipeline methods are safe for concurrent use; calls are serialized.
type Pipeline struct {
	mu     sync.Mutex
	opts   options
	closed bool

	width, height int
	pattern       raster.Pattern
	sampleMask    uint32
	layout        msaa.Layout

	accum   *msaa.Buffer
	damage  *parallel.TileGrid
	clipper clip.Clipper
	rast    *raster.Rasterizer
	frame   *Frame

	shaded []clip.Vertex
	tris   []clip.Triangle
	frag   Fragment

	stats FrameStats
}

// New creates a pipeline rendering into a width x height framebuffer.
func New(width, height int, opts ...Option) (*Pipeline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	n := int(o.multisample.Count)
	pattern, ok := raster.PatternFor(n)
	if !ok {
		Logger().Warn("softgpu: unsupported sample count", "count", n)
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleCount, n)
	}
	layout, ok := outputLayout(o.format)
	if !ok {
		Logger().Warn("softgpu: unsupported output format", "format", o.format)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, o.format)
	}

	mask := uint32(o.multisample.Mask) //nolint:gosec // only the low 16 bits are meaningful
	if mask == 0 {
		mask = ^uint32(0)
	}

	accum, err := msaa.New(width, height, n, msaa.State{
		Compare:    o.depthStencil.DepthCompare,
		DepthWrite: o.depthStencil.DepthWriteEnabled,
		ClearColor: color.RGBA(o.clearColor),
		ClearDepth: o.clearDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDimensions, err)
	}

	p := &Pipeline{
		opts:       o,
		width:      width,
		height:     height,
		pattern:    pattern,
		sampleMask: mask,
		layout:     layout,
		accum:      accum,
		damage:     parallel.NewTileGrid(width, height),
		frame:      newFrame(width, height, o.format),
	}
	p.rast = raster.New(width, height, pattern)
	p.rast.SetSampleMask(mask)
	p.rast.SetFrontFaceCCW(o.primitive.FrontFace == gputypes.FrontFaceCCW)

	Logger().Debug("softgpu: pipeline created",
		"width", width,
		"height", height,
		"samples", n,
		"format", o.format,
		"shading", o.shadingRate,
	)
	return p, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		Logger().Warn("softgpu: invalid dimensions", "width", width, "height", height)
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

func outputLayout(f gputypes.TextureFormat) (msaa.Layout, bool) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return msaa.Layout{}, true
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return msaa.Layout{SRGB: true}, true
	case gputypes.TextureFormatBGRA8Unorm:
		return msaa.Layout{BGRA: true}, true
	case gputypes.TextureFormatBGRA8UnormSrgb:
		return msaa.Layout{BGRA: true, SRGB: true}, true
	default:
		return msaa.Layout{}, false
	}
}

// Width returns the framebuffer width.
func (p *Pipeline) Width() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width
}

// Height returns the framebuffer height.
func (p *Pipeline) Height() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.height
}

// SampleCount returns the number of samples per pixel.
func (p *Pipeline) SampleCount() int {
	return len(p.pattern)
}

// Format returns the output texture format of presented frames.
func (p *Pipeline) Format() gputypes.TextureFormat {
	return p.opts.format
}

// Draw rasterizes the triangles of mesh with prog into the current frame.
//
// Every vertex is shaded once, then triangles are assembled from the index
// list, clipped against the view volume, optionally culled, rasterized and
// shaded. Configuration errors are reported before any sample is written:
// a nil or mismatched program, bad indices, or a vertex shader returning
// the wrong number of attributes. Geometry that is degenerate or entirely
// outside the view is not an error.
func (p *Pipeline) Draw(mesh *Mesh, prog *Program, u *Uniforms) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if err := prog.validate(); err != nil {
		Logger().Warn("softgpu: draw rejected", "err", err)
		return err
	}
	if mesh == nil {
		return nil
	}
	if err := mesh.validate(); err != nil {
		Logger().Warn("softgpu: draw rejected", "err", err)
		return err
	}
	if u == nil {
		u = NewUniforms()
	}
	if err := p.shadeVertices(mesh, prog, u); err != nil {
		Logger().Warn("softgpu: draw rejected", "err", err)
		return err
	}

	p.assemble(mesh)
	p.stats.Draws++
	p.stats.Triangles += mesh.TriangleCount()

	for i := range p.tris {
		p.damage.MarkDirty(p.rast.Bounds(&p.tris[i]))
		p.shade(&p.tris[i], prog, u)
	}
	return nil
}

// DrawTriangles draws a non-indexed list of triangles.
func (p *Pipeline) DrawTriangles(tris [][3]VertexIn, prog *Program, u *Uniforms) error {
	m := &Mesh{Vertices: make([]VertexIn, 0, len(tris)*3)}
	for _, t := range tris {
		m.Vertices = append(m.Vertices, t[0], t[1], t[2])
	}
	return p.Draw(m, prog, u)
}

// shadeVertices runs the vertex shader once per mesh vertex.
func (p *Pipeline) shadeVertices(mesh *Mesh, prog *Program, u *Uniforms) error {
	p.shaded = p.shaded[:0]
	for i, in := range mesh.Vertices {
		v := prog.Vertex(in, u)
		if len(v.Attributes) != prog.VertexOutputs {
			return fmt.Errorf("%w: vertex %d has %d attributes, program declares %d",
				ErrAttributeArity, i, len(v.Attributes), prog.VertexOutputs)
		}
		p.shaded = append(p.shaded, clip.Vertex{Pos: v.Position, Attrs: v.Attributes})
	}
	return nil
}

// assemble builds, clips and culls the triangles of mesh into p.tris.
func (p *Pipeline) assemble(mesh *Mesh) {
	p.tris = p.tris[:0]
	clipped := 0
	for t := range mesh.TriangleCount() {
		tri := clip.Triangle{
			p.shaded[mesh.index(t, 0)],
			p.shaded[mesh.index(t, 1)],
			p.shaded[mesh.index(t, 2)],
		}
		before := len(p.tris)
		p.tris = p.clipper.Clip(tri, p.tris)
		clipped += len(p.tris) - before
	}
	p.stats.Clipped += clipped

	kept := p.tris[:0]
	for i := range p.tris {
		if p.culled(&p.tris[i]) {
			p.stats.Culled++
			continue
		}
		kept = append(kept, p.tris[i])
	}
	p.tris = kept
}

func (p *Pipeline) culled(tri *clip.Triangle) bool {
	ccw, ok := p.rast.Winding(tri)
	if !ok {
		return true
	}
	front := ccw == (p.opts.primitive.FrontFace == gputypes.FrontFaceCCW)
	switch p.opts.primitive.CullMode {
	case gputypes.CullModeBack:
		return !front
	case gputypes.CullModeFront:
		return front
	default:
		return false
	}
}

// shade rasterizes one clipped triangle and writes the shaded samples to
// the accumulator.
func (p *Pipeline) shade(tri *clip.Triangle, prog *Program, u *Uniforms) {
	if p.opts.shadingRate == PerPixel {
		p.shadePixels(tri, prog, u)
		return
	}

	st := &p.stats
	f := &p.frag
	for s := range p.rast.Samples(tri) {
		if !p.accum.DepthTest(s.X, s.Y, s.Index, s.Depth) {
			st.DepthRejected++
			continue
		}
		f.X, f.Y, f.Sample = s.X, s.Y, s.Index
		f.Depth = s.Depth
		f.Barycentric = s.Perspective
		f.Attributes = s.Attrs
		f.FrontFacing = s.FrontFacing

		c, discard := prog.Fragment(f, u)
		st.FragmentsShaded++
		if discard {
			st.Discarded++
			continue
		}
		if !p.alphaCovers(c.A, s.Index) {
			continue
		}
		if p.accum.Accumulate(s.X, s.Y, s.Index, color.RGBA(c), s.Depth) {
			st.SamplesWritten++
		} else {
			st.DepthRejected++
		}
	}
}

// shadePixels shades once per covered pixel and writes the color to every
// covered sample that passes the depth test.
func (p *Pipeline) shadePixels(tri *clip.Triangle, prog *Program, u *Uniforms) {
	st := &p.stats
	f := &p.frag
	for fr := range p.rast.Fragments(tri) {
		live := uint32(0)
		for m := fr.Coverage; m != 0; m &= m - 1 {
			i := bits.TrailingZeros32(m)
			if p.accum.DepthTest(fr.X, fr.Y, i, fr.Depth[i]) {
				live |= 1 << i
			} else {
				st.DepthRejected++
			}
		}
		if live == 0 {
			continue
		}

		f.X, f.Y, f.Sample = fr.X, fr.Y, -1
		f.Depth = fr.Depth[bits.TrailingZeros32(fr.Coverage)]
		f.Barycentric = fr.Perspective
		f.Attributes = fr.Attrs
		f.FrontFacing = fr.FrontFacing

		c, discard := prog.Fragment(f, u)
		st.FragmentsShaded++
		if discard {
			st.Discarded++
			continue
		}
		for m := live; m != 0; m &= m - 1 {
			i := bits.TrailingZeros32(m)
			if !p.alphaCovers(c.A, i) {
				continue
			}
			if p.accum.Accumulate(fr.X, fr.Y, i, color.RGBA(c), fr.Depth[i]) {
				st.SamplesWritten++
			} else {
				st.DepthRejected++
			}
		}
	}
}

// alphaCovers implements alpha-to-coverage: with it enabled, sample i
// survives only when i < round(alpha * samples).
func (p *Pipeline) alphaCovers(alpha float32, i int) bool {
	if !p.opts.multisample.AlphaToCoverageEnabled {
		return true
	}
	n := float32(len(p.pattern))
	keep := int(math32.Round(min(max(alpha, 0), 1) * n))
	return i < keep
}

// Clear discards the current frame: every sample is reset to the clear
// color and depth, and the statistics are zeroed.
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.damage.ForEach(func(t *parallel.Tile) {
		if t.Dirty {
			p.accum.ClearRect(t.Rect)
		}
	})
	p.stats = FrameStats{}
}

// Present resolves the current frame and starts a new one.
//
// Each pixel becomes the mean of its samples, encoded in the output format.
// The accumulator is then cleared. The returned Frame is owned by the
// pipeline and stays valid until the next Present or Resize; use Clone to
// keep it longer. Present on a closed pipeline returns nil.
func (p *Pipeline) Present() *Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.frame.damage = p.frame.damage[:0]
	for _, t := range p.damage.Pending() {
		p.accum.ResolveRect(p.frame.pix, p.frame.stride, t.Rect, p.layout)
		if t.Dirty {
			p.accum.ClearRect(t.Rect)
		}
		p.frame.damage = append(p.frame.damage, t.Rect)
		p.stats.TilesResolved++
	}
	p.damage.Advance()

	Logger().Debug("softgpu: frame presented",
		"width", p.width,
		"height", p.height,
		"draws", p.stats.Draws,
		"triangles", p.stats.Triangles,
		"culled", p.stats.Culled,
		"fragments", p.stats.FragmentsShaded,
		"samples", p.stats.SamplesWritten,
		"tiles", p.stats.TilesResolved,
	)
	p.frame.stats = p.stats
	p.stats = FrameStats{}
	return p.frame
}

// SetScissor restricts rasterization to r intersected with the framebuffer.
// An empty r removes the restriction. Resize also removes it.
func (p *Pipeline) SetScissor(r image.Rectangle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r.Empty() {
		r = image.Rect(0, 0, p.width, p.height)
	}
	p.rast.SetScissor(r)
}

// SetDepthStencil replaces the depth compare function and write mask for
// subsequent draws. Stored depths and the frame in progress are kept.
func (p *Pipeline) SetDepthStencil(ds gputypes.DepthStencilState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.depthStencil = ds
	st := p.accum.State()
	st.Compare, st.DepthWrite = ds.DepthCompare, ds.DepthWriteEnabled
	p.accum.SetState(st)
}

// Stats returns the counters of the frame in progress.
func (p *Pipeline) Stats() FrameStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Resize changes the framebuffer size. The frame in progress is discarded
// and previously presented Frames must no longer be used.
func (p *Pipeline) Resize(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	if width == p.width && height == p.height {
		return nil
	}

	if err := p.accum.Resize(width, height, len(p.pattern)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDimensions, err)
	}
	p.width, p.height = width, height
	p.frame = newFrame(width, height, p.opts.format)
	p.damage.Resize(width, height)
	p.rast.Reset(width, height, p.pattern)
	p.rast.SetSampleMask(p.sampleMask)
	p.stats = FrameStats{}

	Logger().Debug("softgpu: resized", "width", width, "height", height)
	return nil
}

// Close releases the framebuffers. Further Draw and Resize calls return
// ErrClosed and Present returns nil. Close is safe to call multiple times.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.shaded, p.tris = nil, nil
}
