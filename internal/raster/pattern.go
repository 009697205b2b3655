// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "golang.org/x/image/math/fixed"

// MaxSamples is the largest supported sample count.
const MaxSamples = 16

// Pattern lists sub-sample positions inside a pixel, as offsets from its
// top-left corner in 26.6 fixed point (1/64 pixel).
type Pattern []fixed.Point26_6

// std converts offsets given in 1/16 pixel from the pixel centre, the unit
// used by the standard multisample tables, into a Pattern.
func std(offsets ...[2]int) Pattern {
	p := make(Pattern, len(offsets))
	for i, o := range offsets {
		p[i] = fixed.Point26_6{
			X: fixed.Int26_6((8 + o[0]) * 4),
			Y: fixed.Int26_6((8 + o[1]) * 4),
		}
	}
	return p
}

var patterns = map[int]Pattern{
	1: {{X: 32, Y: 32}},
	2: std([2]int{4, 4}, [2]int{-4, -4}),
	// Rotated grid: no two samples share a row or column.
	4: {{X: 40, Y: 8}, {X: 56, Y: 40}, {X: 24, Y: 56}, {X: 8, Y: 24}},
	8: std(
		[2]int{1, -3}, [2]int{-1, 3}, [2]int{5, 1}, [2]int{-3, -5},
		[2]int{-5, 5}, [2]int{-7, -1}, [2]int{3, 7}, [2]int{7, -7},
	),
	16: std(
		[2]int{1, 1}, [2]int{-1, -3}, [2]int{-3, 2}, [2]int{4, -1},
		[2]int{-5, -2}, [2]int{2, 5}, [2]int{5, 3}, [2]int{3, -5},
		[2]int{-2, 6}, [2]int{0, -7}, [2]int{-4, -6}, [2]int{-6, 4},
		[2]int{-8, 0}, [2]int{7, -4}, [2]int{6, 7}, [2]int{-7, -8},
	),
}

// PatternFor returns the sample pattern for count samples per pixel.
// Supported counts are 1, 2, 4, 8 and 16.
func PatternFor(count int) (Pattern, bool) {
	p, ok := patterns[count]
	return p, ok
}

// Centre is the pixel centre offset.
var Centre = fixed.Point26_6{X: 32, Y: 32}
