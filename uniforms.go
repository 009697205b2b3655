package softgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgpu/internal/image"
)

// TextureHandle identifies a texture bound to Uniforms.
type TextureHandle int

// binding is a texture together with the sampler state used to read it.
type binding struct {
	tex     *Texture
	sampler image.Sampler
}

// Uniforms is the constant state shared by every shader invocation of a
// draw call: transforms, bound textures and a free-form payload.
//
// Uniforms must not be modified while a Draw using it is in progress.
type Uniforms struct {
	Model      Mat4
	View       Mat4
	Projection Mat4

	// Custom carries any extra per-draw data a program needs.
	Custom any

	bindings []binding
}

// NewUniforms returns Uniforms with identity transforms.
func NewUniforms() *Uniforms {
	return &Uniforms{Model: Identity(), View: Identity(), Projection: Identity()}
}

// MVP returns Projection * View * Model.
func (u *Uniforms) MVP() Mat4 {
	return Mul(u.Projection, Mul(u.View, u.Model))
}

// BindTexture binds t with the default sampler (clamp to edge, bilinear)
// and returns its handle.
func (u *Uniforms) BindTexture(t *Texture) TextureHandle {
	return u.BindTextureSampler(t, DefaultSampler())
}

// BindTextureSampler binds t read through desc and returns its handle.
// Only the address modes and the magnification filter of desc are used.
func (u *Uniforms) BindTextureSampler(t *Texture, desc gputypes.SamplerDescriptor) TextureHandle {
	u.bindings = append(u.bindings, binding{tex: t, sampler: samplerState(desc)})
	return TextureHandle(len(u.bindings) - 1)
}

// Sample reads the texture bound at h at (s, t). Unbound handles read as
// transparent black.
func (u *Uniforms) Sample(h TextureHandle, s, t float32) Color {
	if h < 0 || int(h) >= len(u.bindings) {
		return Transparent
	}
	b := u.bindings[h]
	if b.tex == nil {
		return Transparent
	}
	return Color(b.sampler.Sample(b.tex.buf, s, t))
}

// Texture returns the texture bound at h, or nil.
func (u *Uniforms) Texture(h TextureHandle) *Texture {
	if h < 0 || int(h) >= len(u.bindings) {
		return nil
	}
	return u.bindings[h].tex
}

// DefaultSampler returns the sampler descriptor used by BindTexture:
// clamp to edge on every axis with linear filtering.
func DefaultSampler() gputypes.SamplerDescriptor {
	d := gputypes.DefaultSamplerDescriptor()
	d.AddressModeU = gputypes.AddressModeClampToEdge
	d.AddressModeV = gputypes.AddressModeClampToEdge
	d.MagFilter = gputypes.FilterModeLinear
	d.MinFilter = gputypes.FilterModeLinear
	return d
}

func samplerState(d gputypes.SamplerDescriptor) image.Sampler {
	return image.Sampler{
		AddressU: d.AddressModeU,
		AddressV: d.AddressModeV,
		Filter:   d.MagFilter,
	}
}
