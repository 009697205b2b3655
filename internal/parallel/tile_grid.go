package parallel

import "image"

// TileGrid covers a framebuffer with tiles. Edge tiles are smaller when the
// size is not a multiple of the tile size. Tiles are stored row-major.
type TileGrid struct {
	tiles  []Tile
	tilesX int
	tilesY int
	width  int
	height int
}

// NewTileGrid creates a grid for a width x height framebuffer.
func NewTileGrid(width, height int) *TileGrid {
	g := &TileGrid{}
	g.Resize(width, height)
	return g
}

// Resize rebuilds the grid with every tile dirty. Non-positive sizes
// produce an empty grid.
func (g *TileGrid) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		*g = TileGrid{}
		return
	}

	g.width, g.height = width, height
	g.tilesX = (width + TileWidth - 1) / TileWidth
	g.tilesY = (height + TileHeight - 1) / TileHeight
	g.tiles = make([]Tile, g.tilesX*g.tilesY)

	bounds := image.Rect(0, 0, width, height)
	for ty := range g.tilesY {
		for tx := range g.tilesX {
			r := image.Rect(tx*TileWidth, ty*TileHeight, (tx+1)*TileWidth, (ty+1)*TileHeight)
			g.tiles[ty*g.tilesX+tx] = Tile{X: tx, Y: ty, Rect: r.Intersect(bounds), Dirty: true}
		}
	}
}

// TileAt returns the tile at tile coordinates (tx, ty), or nil.
func (g *TileGrid) TileAt(tx, ty int) *Tile {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return nil
	}
	return &g.tiles[ty*g.tilesX+tx]
}

// TileAtPixel returns the tile containing pixel (px, py), or nil.
func (g *TileGrid) TileAtPixel(px, py int) *Tile {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return nil
	}
	return g.TileAt(px/TileWidth, py/TileHeight)
}

// MarkDirty marks every tile overlapping r. Parts of r outside the
// framebuffer are ignored.
func (g *TileGrid) MarkDirty(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, g.width, g.height))
	if r.Empty() {
		return
	}
	for ty := r.Min.Y / TileHeight; ty <= (r.Max.Y-1)/TileHeight; ty++ {
		for tx := r.Min.X / TileWidth; tx <= (r.Max.X-1)/TileWidth; tx++ {
			g.tiles[ty*g.tilesX+tx].Dirty = true
		}
	}
}

// Pending returns the tiles that need resolving, in row-major order.
func (g *TileGrid) Pending() []*Tile {
	var out []*Tile
	for i := range g.tiles {
		if g.tiles[i].NeedsResolve() {
			out = append(out, &g.tiles[i])
		}
	}
	return out
}

// Advance ends a frame on every tile.
func (g *TileGrid) Advance() {
	for i := range g.tiles {
		g.tiles[i].Advance()
	}
}

// ForEach calls fn for each tile in row-major order.
func (g *TileGrid) ForEach(fn func(*Tile)) {
	for i := range g.tiles {
		fn(&g.tiles[i])
	}
}

// TileCount returns the number of tiles.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int { return g.tilesY }
