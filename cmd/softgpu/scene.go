package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/softgpu"
)

// Scene is the YAML description of what to render.
type Scene struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Samples int    `yaml:"samples"`
	Workers int    `yaml:"workers"` // frames rendered at once; 0 = GOMAXPROCS
	Shading string `yaml:"shading"` // per-sample | per-pixel
	Format  string `yaml:"format"`  // rgba8unorm | rgba8unorm-srgb | bgra8unorm | bgra8unorm-srgb
	Cull    string `yaml:"cull"`    // none | front | back

	Background [3]float32 `yaml:"background"`
	Camera     Camera     `yaml:"camera"`

	// Frames renders an animation; Spin rotates every object about Y by
	// that many degrees per frame.
	Frames int     `yaml:"frames"`
	Spin   float32 `yaml:"spin"`

	Objects []Object `yaml:"objects"`
}

// Camera is a perspective camera.
type Camera struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	FOV    float32    `yaml:"fov"` // vertical, degrees
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

// Object places one built-in mesh in the scene.
type Object struct {
	Mesh     string     `yaml:"mesh"` // quad | cube | sphere
	Size     float32    `yaml:"size"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // degrees about X, Y, Z
	Texture  string     `yaml:"texture"`  // image file; "checker" for a built-in pattern
}

// DefaultScene is rendered when no scene file is given.
func DefaultScene() *Scene {
	return &Scene{
		Width:      640,
		Height:     480,
		Samples:    4,
		Workers:    1,
		Shading:    "per-sample",
		Format:     "rgba8unorm-srgb",
		Cull:       "back",
		Background: [3]float32{0.02, 0.02, 0.04},
		Camera: Camera{
			Eye:  [3]float32{0, 1.2, 3.5},
			FOV:  60,
			Near: 0.1,
			Far:  100,
		},
		Frames: 1,
		Objects: []Object{
			{Mesh: "cube", Size: 1.2, Rotation: [3]float32{20, 35, 0}, Texture: "checker"},
			{Mesh: "sphere", Size: 0.6, Position: [3]float32{1.6, 0, -0.5}},
			{Mesh: "quad", Size: 6, Position: [3]float32{0, -0.9, 0}, Rotation: [3]float32{-90, 0, 0}, Texture: "checker"},
		},
	}
}

// LoadScene reads a scene file. Fields missing from the file keep the
// values of DefaultScene, except Objects which is replaced when present.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes a YAML scene on top of DefaultScene.
func ParseScene(data []byte) (*Scene, error) {
	s := DefaultScene()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the fields the pipeline does not validate itself.
func (s *Scene) Validate() error {
	if s.Frames < 1 {
		return fmt.Errorf("scene: frames must be at least 1, got %d", s.Frames)
	}
	if s.Workers < 0 {
		return fmt.Errorf("scene: workers must not be negative, got %d", s.Workers)
	}
	if _, err := s.shadingRate(); err != nil {
		return err
	}
	if _, err := s.format(); err != nil {
		return err
	}
	if _, err := s.cullMode(); err != nil {
		return err
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		return fmt.Errorf("scene: invalid camera range near=%v far=%v", s.Camera.Near, s.Camera.Far)
	}
	for i, o := range s.Objects {
		if _, err := o.mesh(); err != nil {
			return fmt.Errorf("scene: object %d: %w", i, err)
		}
	}
	return nil
}

func (s *Scene) shadingRate() (softgpu.ShadingRate, error) {
	switch strings.ToLower(s.Shading) {
	case "", "per-sample":
		return softgpu.PerSample, nil
	case "per-pixel":
		return softgpu.PerPixel, nil
	default:
		return 0, fmt.Errorf("scene: unknown shading %q", s.Shading)
	}
}

func (s *Scene) format() (gputypes.TextureFormat, error) {
	switch strings.ToLower(s.Format) {
	case "", "rgba8unorm":
		return gputypes.TextureFormatRGBA8Unorm, nil
	case "rgba8unorm-srgb":
		return gputypes.TextureFormatRGBA8UnormSrgb, nil
	case "bgra8unorm":
		return gputypes.TextureFormatBGRA8Unorm, nil
	case "bgra8unorm-srgb":
		return gputypes.TextureFormatBGRA8UnormSrgb, nil
	default:
		return 0, fmt.Errorf("scene: unknown format %q", s.Format)
	}
}

func (s *Scene) cullMode() (gputypes.CullMode, error) {
	switch strings.ToLower(s.Cull) {
	case "", "none":
		return gputypes.CullModeNone, nil
	case "front":
		return gputypes.CullModeFront, nil
	case "back":
		return gputypes.CullModeBack, nil
	default:
		return 0, fmt.Errorf("scene: unknown cull mode %q", s.Cull)
	}
}

// Options converts the scene settings into pipeline options.
func (s *Scene) Options() []softgpu.Option {
	rate, _ := s.shadingRate()
	format, _ := s.format()
	cull, _ := s.cullMode()
	bg := s.Background
	return []softgpu.Option{
		softgpu.WithSampleCount(s.Samples),
		softgpu.WithShadingRate(rate),
		softgpu.WithOutputFormat(format),
		softgpu.WithPrimitive(gputypes.PrimitiveState{FrontFace: gputypes.FrontFaceCCW, CullMode: cull}),
		softgpu.WithClearColor(softgpu.RGB(bg[0], bg[1], bg[2])),
	}
}

// Uniforms returns the camera transforms.
func (s *Scene) Uniforms() *softgpu.Uniforms {
	c := s.Camera
	u := softgpu.NewUniforms()
	u.Projection = softgpu.Perspective(radians(c.FOV), float32(s.Width)/float32(s.Height), c.Near, c.Far)
	u.View = softgpu.LookAt(c.Eye, c.Target, softgpu.Vec3{0, 1, 0})
	return u
}

func (o Object) mesh() (*softgpu.Mesh, error) {
	size := o.Size
	if size == 0 {
		size = 1
	}
	switch strings.ToLower(o.Mesh) {
	case "quad":
		return softgpu.Quad(size), nil
	case "cube":
		return softgpu.Cube(size), nil
	case "sphere":
		return softgpu.Sphere(size, 16, 32), nil
	default:
		return nil, fmt.Errorf("unknown mesh %q", o.Mesh)
	}
}

// model returns the object transform with the extra spin about Y applied
// first.
func (o Object) model(spin float32) softgpu.Mat4 {
	r := o.Rotation
	rot := softgpu.Mul(softgpu.RotateZ(radians(r[2])),
		softgpu.Mul(softgpu.RotateY(radians(r[1])), softgpu.RotateX(radians(r[0]))))
	p := o.Position
	return softgpu.Mul(softgpu.Translate(p[0], p[1], p[2]), softgpu.Mul(softgpu.RotateY(radians(spin)), rot))
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
