package world

import "github.com/swift2d/engine/engine/math"

const defaultTileSize = 32

// Tilemap is the fixed-size tile background a world owns. Tiles are stored
// row-major as small integers indexing into a tile sheet.
type Tilemap struct {
	size     math.Vec2u
	tileSize math.Vec2u
	tiles    []int
}

// NewTilemap creates a map covering the given pixel size with default-sized
// tiles.
func NewTilemap(size math.Vec2u) *Tilemap {
	cols := size.X / defaultTileSize
	rows := size.Y / defaultTileSize
	if size.X%defaultTileSize != 0 {
		cols++
	}
	if size.Y%defaultTileSize != 0 {
		rows++
	}
	return &Tilemap{
		size:     math.Vec2u{X: cols, Y: rows},
		tileSize: math.Vec2u{X: defaultTileSize, Y: defaultTileSize},
		tiles:    make([]int, cols*rows),
	}
}

func (t *Tilemap) Size() math.Vec2u {
	return t.size
}

func (t *Tilemap) TileSize() math.Vec2u {
	return t.tileSize
}

// Tile returns the tile number at the given cell, clamping out-of-range
// coordinates to the nearest edge.
func (t *Tilemap) Tile(x, y int) int {
	cx := math.Clamp(x, 0, int(t.size.X)-1)
	cy := math.Clamp(y, 0, int(t.size.Y)-1)
	return t.tiles[cy*int(t.size.X)+cx]
}

// SetTile writes the tile number at the given cell; out-of-range writes are
// dropped.
func (t *Tilemap) SetTile(x, y, tile int) {
	if x < 0 || y < 0 || x >= int(t.size.X) || y >= int(t.size.Y) {
		return
	}
	t.tiles[y*int(t.size.X)+x] = tile
}
