package softgpu

import (
	"math"
	"testing"
)

const matEps = 1e-5

func vecNear(a, b Vec4) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > matEps {
			return false
		}
	}
	return true
}

func TestMatrixTransforms(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec4
	}{
		{"identity", Identity(), Vec3{1, 2, 3}, Vec4{1, 2, 3, 1}},
		{"translate", Translate(1, -2, 3), Vec3{1, 1, 1}, Vec4{2, -1, 4, 1}},
		{"scale", Scale(2, 3, 4), Vec3{1, 1, 1}, Vec4{2, 3, 4, 1}},
		{"rotate x 90", RotateX(math.Pi / 2), Vec3{0, 1, 0}, Vec4{0, 0, 1, 1}},
		{"rotate y 90", RotateY(math.Pi / 2), Vec3{0, 0, 1}, Vec4{1, 0, 0, 1}},
		{"rotate z 90", RotateZ(math.Pi / 2), Vec3{1, 0, 0}, Vec4{0, 1, 0, 1}},
		{"translate after scale", Mul(Translate(1, 0, 0), Scale(2, 2, 2)), Vec3{1, 1, 1}, Vec4{3, 2, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulPoint(tt.in); !vecNear(got, tt.want) {
				t.Errorf("MulPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMulIdentity(t *testing.T) {
	m := Mul(RotateY(0.3), Translate(1, 2, 3))
	if got := Mul(Identity(), m); got != m {
		t.Errorf("I*M = %v, want %v", got, m)
	}
	if got := Mul(m, Identity()); got != m {
		t.Errorf("M*I = %v, want %v", got, m)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.5, 10
	p := Perspective(math.Pi/2, 1, near, far)

	tests := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near plane", -near, 0},
		{"far plane", -far, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := p.MulPoint(Vec3{0, 0, tt.z})
			if c[3] <= 0 {
				t.Fatalf("w = %v, want positive in front of the camera", c[3])
			}
			if d := c[2] / c[3]; math.Abs(float64(d-tt.depth)) > matEps {
				t.Errorf("z/w = %v, want %v", d, tt.depth)
			}
		})
	}

	// fovY = 90 degrees maps y = -z to the top of the view
	c := p.MulPoint(Vec3{0, 2, -2})
	if y := c[1] / c[3]; math.Abs(float64(y-1)) > matEps {
		t.Errorf("y/w = %v, want 1", y)
	}
}

func TestOrthographic(t *testing.T) {
	o := Orthographic(-2, 2, -1, 1, 1, 5)
	if got := o.MulPoint(Vec3{2, 1, -1}); !vecNear(got, Vec4{1, 1, 0, 1}) {
		t.Errorf("near corner = %v", got)
	}
	if got := o.MulPoint(Vec3{-2, -1, -5}); !vecNear(got, Vec4{-1, -1, 1, 1}) {
		t.Errorf("far corner = %v", got)
	}
}

func TestLookAt(t *testing.T) {
	v := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	if got := v.MulPoint(Vec3{}); !vecNear(got, Vec4{0, 0, -5, 1}) {
		t.Errorf("target in view space = %v, want (0,0,-5)", got)
	}
	if got := v.MulPoint(Vec3{1, 0, 0}); !vecNear(got, Vec4{1, 0, -5, 1}) {
		t.Errorf("+x in view space = %v, want (1,0,-5)", got)
	}
}

func TestMVP(t *testing.T) {
	u := NewUniforms()
	u.Model = Translate(1, 0, 0)
	u.View = Translate(0, 1, 0)
	u.Projection = Scale(2, 2, 2)
	if got := u.MVP().MulPoint(Vec3{}); !vecNear(got, Vec4{2, 2, 0, 1}) {
		t.Errorf("MVP origin = %v, want (2,2,0)", got)
	}
}
