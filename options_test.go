package softgpu

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func apply(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TestDefaultOptions checks the configuration New uses without options.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()

	if o.multisample.Count != 4 {
		t.Errorf("sample count = %d, want 4", o.multisample.Count)
	}
	if o.multisample.Mask != ^uint64(0) {
		t.Errorf("sample mask = %#x, want all bits", o.multisample.Mask)
	}
	if o.depthStencil.DepthCompare != gputypes.CompareFunctionLess || !o.depthStencil.DepthWriteEnabled {
		t.Errorf("depth state = %+v, want Less with writes", o.depthStencil)
	}
	if o.primitive.CullMode != gputypes.CullModeNone || o.primitive.FrontFace != gputypes.FrontFaceCCW {
		t.Errorf("primitive state = %+v, want CCW without culling", o.primitive)
	}
	if o.clearColor != Black || o.clearDepth != 1 {
		t.Errorf("clear = %v / %v, want black / 1", o.clearColor, o.clearDepth)
	}
	if o.format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", o.format)
	}
	if o.shadingRate != PerSample {
		t.Errorf("shading rate = %v, want PerSample", o.shadingRate)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(o options) bool
	}{
		{
			name:  "sample count",
			opt:   WithSampleCount(16),
			check: func(o options) bool { return o.multisample.Count == 16 },
		},
		{
			name: "multisample",
			opt: WithMultisample(gputypes.MultisampleState{
				Count: 8, Mask: 0x0f, AlphaToCoverageEnabled: true,
			}),
			check: func(o options) bool {
				return o.multisample.Count == 8 && o.multisample.Mask == 0x0f && o.multisample.AlphaToCoverageEnabled
			},
		},
		{
			name: "depth stencil",
			opt: WithDepthStencil(gputypes.DepthStencilState{
				DepthCompare: gputypes.CompareFunctionGreater,
			}),
			check: func(o options) bool {
				return o.depthStencil.DepthCompare == gputypes.CompareFunctionGreater && !o.depthStencil.DepthWriteEnabled
			},
		},
		{
			name: "primitive",
			opt:  WithPrimitive(gputypes.PrimitiveState{FrontFace: gputypes.FrontFaceCW, CullMode: gputypes.CullModeBack}),
			check: func(o options) bool {
				return o.primitive.FrontFace == gputypes.FrontFaceCW && o.primitive.CullMode == gputypes.CullModeBack
			},
		},
		{
			name:  "clear color",
			opt:   WithClearColor(White),
			check: func(o options) bool { return o.clearColor == White },
		},
		{
			name:  "clear depth",
			opt:   WithClearDepth(0),
			check: func(o options) bool { return o.clearDepth == 0 },
		},
		{
			name:  "output format",
			opt:   WithOutputFormat(gputypes.TextureFormatBGRA8UnormSrgb),
			check: func(o options) bool { return o.format == gputypes.TextureFormatBGRA8UnormSrgb },
		},
		{
			name:  "shading rate",
			opt:   WithShadingRate(PerPixel),
			check: func(o options) bool { return o.shadingRate == PerPixel },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if o := apply(tt.opt); !tt.check(o) {
				t.Errorf("option not applied: %+v", o)
			}
		})
	}
}

// TestOptionsLastWins checks that later options override earlier ones.
func TestOptionsLastWins(t *testing.T) {
	o := apply(WithSampleCount(2), WithSampleCount(8))
	if o.multisample.Count != 8 {
		t.Errorf("sample count = %d, want 8", o.multisample.Count)
	}
	// WithSampleCount only touches the count.
	o = apply(WithMultisample(gputypes.MultisampleState{Count: 2, Mask: 1}), WithSampleCount(4))
	if o.multisample.Mask != 1 {
		t.Errorf("mask = %#x, want 1", o.multisample.Mask)
	}
}
