package main

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// writePreview prints img to w as rows of upper half blocks, two image rows
// per text line, scaled to cols columns. Colors degrade to what the
// terminal supports.
func writePreview(w io.Writer, img *image.NRGBA, cols int) error {
	b := img.Bounds()
	if cols <= 0 || b.Empty() {
		return nil
	}
	cols = min(cols, b.Dx())
	rows := b.Dy() * cols / b.Dx()
	rows += rows % 2

	out := termenv.NewOutput(w)
	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := range cols {
			top := hexAt(img, x*b.Dx()/cols, y*b.Dy()/rows)
			bottom := hexAt(img, x*b.Dx()/cols, min((y+1)*b.Dy()/rows, b.Dy()-1))
			sb.WriteString(out.String("▀").Foreground(out.Color(top)).Background(out.Color(bottom)).String())
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func hexAt(img *image.NRGBA, x, y int) string {
	c := img.NRGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
