package renderer

import (
	"image"
	"math/rand"
)

// DefaultTileSize is the edge length of the square tiles handed to workers
const DefaultTileSize = 64

// Tile is a rectangular region of the image rendered as one unit. Each
// tile owns a random generator seeded from its ID, so a render produces
// the same image regardless of worker count and scheduling
type Tile struct {
	ID     int
	Bounds image.Rectangle
	Random *rand.Rand
}

// NewTile creates a tile with a deterministic random stream
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(int64(id) + 42)), // +42 keeps the first tile off seed 0
	}
}

// NewTileGrid covers a width by height image with tiles of at most
// tileSize pixels per side. Edge tiles shrink to the image bounds
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles = append(tiles, NewTile(len(tiles), image.Rect(x0, y0, x1, y1)))
		}
	}

	return tiles
}
