package mosaic

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	img "github.com/tilecraft/mosaicgen/internal/imaging"
)

// ErrEmptyLibrary is returned by BuildCatalog when no usable tile image
// remains after filtering.
var ErrEmptyLibrary = errors.New("mosaic: no usable tile images in library")

// Tile is a fixed-size candidate image usable as a mosaic building
// block, together with its precomputed average color and its stable
// position in the catalog.
//
// Tiles are immutable after construction. The catalog owns them; the
// color index and the assembler hold references only.
type Tile struct {
	// Image is the tile's pixel data, hard-resized to exactly the
	// catalog's tile dimensions.
	Image *image.NRGBA

	// Color is the arithmetic mean of each channel over all pixels.
	Color img.RGBColor

	// Index is the tile's position in the catalog, 0-based.
	Index int
}

// TileCatalog is an ordered, immutable collection of tiles sharing
// identical dimensions. Build one per mosaic run with BuildCatalog.
type TileCatalog struct {
	tiles      []Tile
	tileWidth  int
	tileHeight int
}

// BuildCatalog constructs a tile catalog from decoded source images.
//
// Every source is hard-resized (aspect ratio not preserved) to exactly
// tileWidth x tileHeight using Lanczos resampling, and its average
// color is computed over the resized pixels. Nil entries in the slice
// are skipped; upstream loading has already logged and dropped
// undecodable files.
//
// Parameters:
//   - sources: Decoded candidate images, in catalog order.
//   - tileWidth, tileHeight: Target tile dimensions in pixels.
//
// Returns:
//   - *TileCatalog: The catalog, with tiles indexed 0..N-1 in source
//     order.
//   - error: ErrEmptyLibrary if no usable image was supplied, or
//     ErrInvalidDimensions if tileWidth or tileHeight is not positive.
//
// Source images may be discarded after this call; the catalog holds
// only the resized copies.
func BuildCatalog(sources []image.Image, tileWidth, tileHeight int) (*TileCatalog, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, ErrInvalidDimensions
	}

	tiles := make([]Tile, 0, len(sources))
	for _, src := range sources {
		if src == nil || src.Bounds().Empty() {
			continue
		}
		resized := imaging.Resize(src, tileWidth, tileHeight, imaging.Lanczos)
		tiles = append(tiles, Tile{
			Image: resized,
			Color: img.AverageColor(resized),
			Index: len(tiles),
		})
	}

	if len(tiles) == 0 {
		return nil, ErrEmptyLibrary
	}

	return &TileCatalog{
		tiles:      tiles,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
	}, nil
}

// Len returns the number of tiles in the catalog.
func (c *TileCatalog) Len() int {
	return len(c.tiles)
}

// Tile returns the tile at the given catalog index.
func (c *TileCatalog) Tile(i int) Tile {
	return c.tiles[i]
}

// TileSize returns the shared width and height of all tiles.
func (c *TileCatalog) TileSize() (int, int) {
	return c.tileWidth, c.tileHeight
}
