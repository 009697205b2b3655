package softgpu

import "github.com/gogpu/gputypes"

// ShadingRate selects how often the fragment shader runs per pixel.
type ShadingRate int

const (
	// PerSample runs the fragment shader once for every covered sample.
	// Edges are anti-aliased and interior detail is supersampled.
	PerSample ShadingRate = iota

	// PerPixel runs the fragment shader once per covered pixel and writes
	// the result to every covered sample that passes the depth test.
	// Only geometric edges are anti-aliased.
	PerPixel
)

// String returns the shading rate name.
func (r ShadingRate) String() string {
	switch r {
	case PerSample:
		return "PerSample"
	case PerPixel:
		return "PerPixel"
	default:
		return "Unknown"
	}
}

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := softgpu.New(640, 480,
//	    softgpu.WithSampleCount(8),
//	    softgpu.WithPrimitive(gputypes.PrimitiveState{CullMode: gputypes.CullModeBack}),
//	)
type Option func(*options)

// options holds the Pipeline configuration.
type options struct {
	multisample  gputypes.MultisampleState
	depthStencil gputypes.DepthStencilState
	primitive    gputypes.PrimitiveState
	clearColor   Color
	clearDepth   float32
	format       gputypes.TextureFormat
	shadingRate  ShadingRate
}

// defaultOptions returns 4x multisampling, nearer-wins depth testing with
// writes, no culling, an opaque black background and RGBA8 output.
func defaultOptions() options {
	return options{
		multisample: gputypes.MultisampleState{Count: 4, Mask: ^uint64(0)},
		depthStencil: gputypes.DepthStencilState{
			Format:            gputypes.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
		},
		primitive:  gputypes.PrimitiveState{FrontFace: gputypes.FrontFaceCCW, CullMode: gputypes.CullModeNone},
		clearColor: Black,
		clearDepth: 1,
		format:     gputypes.TextureFormatRGBA8Unorm,
	}
}

// WithSampleCount sets the number of samples per pixel: 1, 2, 4, 8 or 16.
func WithSampleCount(n int) Option {
	return func(o *options) {
		o.multisample.Count = uint32(n) //nolint:gosec // validated in New
	}
}

// WithMultisample sets the sample count and sample mask. Bit i of Mask
// enables sample i. A zero Mask enables every sample.
// AlphaToCoverageEnabled keeps sample i of a fragment only when
// i < round(alpha * count).
func WithMultisample(ms gputypes.MultisampleState) Option {
	return func(o *options) {
		o.multisample = ms
	}
}

// WithDepthStencil sets the depth comparison and depth write flag.
// Stencil state is ignored.
func WithDepthStencil(ds gputypes.DepthStencilState) Option {
	return func(o *options) {
		o.depthStencil = ds
	}
}

// WithPrimitive sets the front face winding and the cull mode.
// Topology is always a triangle list.
func WithPrimitive(ps gputypes.PrimitiveState) Option {
	return func(o *options) {
		o.primitive = ps
	}
}

// WithClearColor sets the color untouched samples resolve to.
func WithClearColor(c Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithClearDepth sets the depth samples are cleared to. The default is 1,
// the far plane.
func WithClearDepth(d float32) Option {
	return func(o *options) {
		o.clearDepth = d
	}
}

// WithOutputFormat sets the byte layout of presented frames: RGBA8Unorm,
// RGBA8UnormSrgb, BGRA8Unorm or BGRA8UnormSrgb.
func WithOutputFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithShadingRate selects per-sample or per-pixel fragment shading.
func WithShadingRate(r ShadingRate) Option {
	return func(o *options) {
		o.shadingRate = r
	}
}
