package image

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgpu/internal/color"
)

// maxCoord bounds texel coordinates before integer conversion so huge or
// infinite UVs cannot overflow.
const maxCoord = 1 << 24

// Sampler describes how normalized coordinates address a Buf.
// The zero value clamps to edge and filters with nearest neighbour.
type Sampler struct {
	AddressU gputypes.AddressMode
	AddressV gputypes.AddressMode
	Filter   gputypes.FilterMode
}

// Sample reads b at normalized coordinates (u, v), where (0,0) is the
// top-left corner of texel (0,0) and (1,1) the bottom-right corner of the
// last texel. Texel centres lie at ((i+0.5)/width, (j+0.5)/height).
func (s Sampler) Sample(b *Buf, u, v float32) color.RGBA {
	if s.Filter == gputypes.FilterModeLinear {
		return s.bilinear(b, u, v)
	}
	return s.nearest(b, u, v)
}

func (s Sampler) nearest(b *Buf, u, v float32) color.RGBA {
	x := wrap(floorIndex(u*float32(b.width)), b.width, s.AddressU)
	y := wrap(floorIndex(v*float32(b.height)), b.height, s.AddressV)
	return b.Texel(x, y)
}

func (s Sampler) bilinear(b *Buf, u, v float32) color.RGBA {
	fx := u*float32(b.width) - 0.5
	fy := v*float32(b.height) - 0.5

	ix := floorIndex(fx)
	iy := floorIndex(fy)
	tx := fraction(fx, ix)
	ty := fraction(fy, iy)

	x0 := wrap(ix, b.width, s.AddressU)
	x1 := wrap(ix+1, b.width, s.AddressU)
	y0 := wrap(iy, b.height, s.AddressV)
	y1 := wrap(iy+1, b.height, s.AddressV)

	c00 := b.Texel(x0, y0)
	c10 := b.Texel(x1, y0)
	c01 := b.Texel(x0, y1)
	c11 := b.Texel(x1, y1)

	return color.Lerp(color.Lerp(c00, c10, tx), color.Lerp(c01, c11, tx), ty)
}

// floorIndex converts a continuous texel coordinate to an integer index.
// NaN maps to 0.
func floorIndex(f float32) int {
	if !(f > -maxCoord) {
		if math32.IsNaN(f) {
			return 0
		}
		return -maxCoord
	}
	if f > maxCoord {
		return maxCoord
	}
	return int(math32.Floor(f))
}

// fraction returns f - i in [0,1), or 0 when f was saturated by floorIndex.
func fraction(f float32, i int) float32 {
	t := f - float32(i)
	if !(t >= 0 && t < 1) {
		return 0
	}
	return t
}

// wrap maps an arbitrary texel index into [0, n) according to mode.
func wrap(i, n int, mode gputypes.AddressMode) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case gputypes.AddressModeMirrorRepeat:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default:
		return clamp(i, 0, n-1)
	}
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
