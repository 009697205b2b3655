package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgpu"
	"github.com/gogpu/softgpu/internal/cache"
)

// checkerSize is the edge length in texels of the built-in checker texture.
const checkerSize = 8

// checkerTexture returns a two-tone sRGB checkerboard.
func checkerTexture() (*softgpu.Texture, error) {
	img := image.NewNRGBA(image.Rect(0, 0, checkerSize, checkerSize))
	for y := range checkerSize {
		for x := range checkerSize {
			c := color.NRGBA{R: 235, G: 235, B: 235, A: 255}
			if (x+y)%2 == 1 {
				c = color.NRGBA{R: 40, G: 60, B: 90, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return softgpu.TextureFromImage(img, true)
}

// drawable is an object with its mesh and texture prepared.
type drawable struct {
	obj  Object
	mesh *softgpu.Mesh
	tex  *softgpu.Texture
}

// prepare builds the mesh and texture of every object. Objects with the
// same mesh and size, or the same texture, share one instance.
func prepare(s *Scene) ([]drawable, error) {
	meshes := cache.New[string, *softgpu.Mesh](0)
	textures := cache.New[string, *softgpu.Texture](0)

	out := make([]drawable, 0, len(s.Objects))
	for i, o := range s.Objects {
		key := fmt.Sprintf("%s/%g", strings.ToLower(o.Mesh), o.Size)
		m, err := meshes.Load(key, o.mesh)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		d := drawable{obj: o, mesh: m}
		if o.Texture != "" {
			d.tex, err = textures.Load(o.Texture, func() (*softgpu.Texture, error) {
				if o.Texture == "checker" {
					return checkerTexture()
				}
				return softgpu.LoadTexture(o.Texture, true)
			})
			if err != nil {
				return nil, fmt.Errorf("object %d: %w", i, err)
			}
		}
		out = append(out, d)
	}
	st := textures.Stats()
	softgpu.Logger().Debug("scene prepared", "objects", len(out), "meshes", meshes.Len(),
		"textures", textures.Len(), "texture_hits", st.Hits)
	return out, nil
}

// program shades vertex colors, modulated by the texture bound at slot 0
// when there is one.
func program(textured bool) *softgpu.Program {
	return &softgpu.Program{
		Vertex: func(in softgpu.VertexIn, u *softgpu.Uniforms) softgpu.Vertex {
			return softgpu.Vertex{Position: u.MVP().MulPoint(in.Position), Attributes: in.Attributes}
		},
		Fragment: func(f *softgpu.Fragment, u *softgpu.Uniforms) (softgpu.Color, bool) {
			a := f.Attributes
			c := softgpu.Color{R: a[0], G: a[1], B: a[2], A: a[3]}
			if textured {
				c = c.Lerp(softgpu.White, 0.6).Mul(u.Sample(0, a[4], a[5]))
			}
			return c, false
		},
		VertexOutputs:  softgpu.StandardAttributes,
		FragmentInputs: softgpu.StandardAttributes,
	}
}

// renderFrame draws every object of the scene rotated by spin degrees and
// presents the result.
func renderFrame(p *softgpu.Pipeline, s *Scene, objs []drawable, spin float32) (*softgpu.Frame, error) {
	for i, d := range objs {
		u := s.Uniforms()
		u.Model = d.obj.model(spin)
		if d.tex != nil {
			desc := softgpu.DefaultSampler()
			desc.AddressModeU = gputypes.AddressModeRepeat
			desc.AddressModeV = gputypes.AddressModeRepeat
			desc.MagFilter = gputypes.FilterModeNearest
			u.BindTextureSampler(d.tex, desc)
		}
		if err := p.Draw(d.mesh, program(d.tex != nil), u); err != nil {
			return nil, fmt.Errorf("drawing object %d: %w", i, err)
		}
	}
	return p.Present(), nil
}
