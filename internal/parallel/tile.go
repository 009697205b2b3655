// Package parallel provides the screen tile grid used to track which parts
// of a frame changed, and a worker pool for running independent jobs.
//
// The framebuffer is divided into 64x64 pixel tiles. A tile is dirty when
// something was drawn into it during the current frame and stale when it
// was dirty during the previous one, so its presented pixels are out of
// date. Only tiles that are dirty or stale need resolving.
//
// Thread safety: TileGrid is NOT thread-safe. WorkerPool is.
package parallel

import "image"

// Tile size in pixels.
const (
	TileWidth  = 64
	TileHeight = 64
)

// Tile is one cell of the grid.
type Tile struct {
	// X and Y are the tile column and row.
	X, Y int

	// Rect is the pixel area covered, clipped to the framebuffer.
	Rect image.Rectangle

	// Dirty marks tiles drawn into during the current frame.
	Dirty bool

	// Stale marks tiles whose presented pixels predate the last clear.
	Stale bool
}

// NeedsResolve reports whether the presented pixels of the tile may differ
// from its samples.
func (t *Tile) NeedsResolve() bool {
	return t.Dirty || t.Stale
}

// Advance ends a frame: what was drawn becomes stale.
func (t *Tile) Advance() {
	t.Stale = t.Dirty
	t.Dirty = false
}
