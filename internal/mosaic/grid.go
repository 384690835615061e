package mosaic

import (
	"errors"
	"math"
)

// ErrInvalidDimensions is returned when a size or density parameter is
// not positive.
var ErrInvalidDimensions = errors.New("mosaic: dimensions and density factor must be positive")

// Grid describes the mosaic layout: how many cells cover the target
// image, the footprint each cell samples from the target, and the size
// every placed tile has in the output.
//
// Cell size and tile size are distinct spaces: cells live in target
// pixels, tiles in output pixels. A density factor above 1 shrinks the
// cells (finer sampling, more tiles) while the placed tiles stay at the
// configured tile size, so the output grows accordingly.
type Grid struct {
	Columns    int `json:"columns"`
	Rows       int `json:"rows"`
	CellWidth  int `json:"cell_width"`  // sampling footprint, target px
	CellHeight int `json:"cell_height"` // sampling footprint, target px
	TileWidth  int `json:"tile_width"`  // placement size, output px
	TileHeight int `json:"tile_height"` // placement size, output px
}

// OutputWidth returns the width of the assembled mosaic in pixels.
func (g Grid) OutputWidth() int { return g.Columns * g.TileWidth }

// OutputHeight returns the height of the assembled mosaic in pixels.
func (g Grid) OutputHeight() int { return g.Rows * g.TileHeight }

// Cells returns the total number of grid cells.
func (g Grid) Cells() int { return g.Columns * g.Rows }

// PlanGrid computes the mosaic grid for a target image.
//
// The density factor scales the sampling cell inversely: the effective
// cell is the tile size divided by the factor (floored at one pixel),
// and the grid is however many such cells it takes to cover the target,
// rounding up. factor=1.0 samples one tile-sized cell per tile;
// factor=2.0 samples half-size cells, yielding roughly twice the
// columns and rows.
//
// Parameters:
//   - targetWidth, targetHeight: Target image dimensions in pixels.
//   - tileWidth, tileHeight: Tile dimensions in pixels.
//   - factor: Positive density factor.
//
// Returns:
//   - Grid: Columns and rows are always >= 1; cell dimensions are
//     always >= 1 pixel.
//   - error: ErrInvalidDimensions if any dimension or the factor is
//     not positive. No partial grid is produced on error.
func PlanGrid(targetWidth, targetHeight, tileWidth, tileHeight int, factor float64) (Grid, error) {
	if targetWidth <= 0 || targetHeight <= 0 || tileWidth <= 0 || tileHeight <= 0 || factor <= 0 {
		return Grid{}, ErrInvalidDimensions
	}

	cellW := int(math.Ceil(float64(tileWidth) / factor))
	cellH := int(math.Ceil(float64(tileHeight) / factor))
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}

	columns := (targetWidth + cellW - 1) / cellW
	rows := (targetHeight + cellH - 1) / cellH
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}

	return Grid{
		Columns:    columns,
		Rows:       rows,
		CellWidth:  cellW,
		CellHeight: cellH,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}, nil
}
