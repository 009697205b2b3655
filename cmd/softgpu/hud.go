package main

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/softgpu"
)

var printer = message.NewPrinter(language.English)

// statsLine summarizes a frame with grouped thousands.
func statsLine(n int, st softgpu.FrameStats) string {
	return printer.Sprintf("frame %d: %d tris, %d culled, %d fragments, %d samples",
		n, st.Triangles, st.Culled, st.FragmentsShaded, st.SamplesWritten)
}

// drawHUD writes lines of text into the top-left corner of img.
func drawHUD(img *image.NRGBA, lines ...string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 160, A: 255}),
		Face: face,
	}
	lineHeight := face.Metrics().Height
	y := fixed.I(4) + face.Metrics().Ascent
	for _, line := range lines {
		d.Dot = fixed.Point26_6{X: fixed.I(4), Y: y}
		d.DrawString(line)
		y += lineHeight
	}
}
