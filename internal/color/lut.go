package color

// sRGBToLinearLUT decodes an sRGB byte to linear float32.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT encodes linear [0,1] quantized to 12 bits as an sRGB byte.
// 4096 entries keep the round trip within one byte of the exact curve.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = SRGBToLinear(float32(i) / 255.0)
	}
	for i := range linearToSRGBLUT {
		linearToSRGBLUT[i] = Unorm8(LinearToSRGB(float32(i) / 4095.0))
	}
}

// SRGBToLinearFast decodes an sRGB byte using a lookup table.
//
//	l := SRGBToLinearFast(128) // ~0.2159
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast encodes a linear component as an sRGB byte using a
// lookup table. Input is clamped to [0,1]; NaN encodes as 0.
//
//	s := LinearToSRGBFast(0.5) // 188
func LinearToSRGBFast(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return linearToSRGBLUT[int(l*4095.0+0.5)]
}
