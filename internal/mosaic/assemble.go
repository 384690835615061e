package mosaic

import (
	"image"
	"runtime"
	"sync"

	xdraw "golang.org/x/image/draw"

	img "github.com/tilecraft/mosaicgen/internal/imaging"
)

// AssembleOptions tunes an assembly run. The zero value (or a nil
// pointer) selects the defaults.
type AssembleOptions struct {
	// Workers is the number of goroutines used for the parallel
	// phases. Zero or negative selects runtime.NumCPU().
	Workers int

	// Progress, when non-nil, is invoked after each tile placement
	// with the number of placed cells and the total. Invocations are
	// serialized; done is strictly increasing from 1 to total.
	Progress func(done, total int)
}

// Assemble produces the mosaic for a target image.
//
// For every grid cell, row-major from the top-left: the covered target
// region is averaged (clamped to the image at the right and bottom
// edges), the color index picks a tile via CyclingPick, and the tile is
// copied into the corresponding cell of the output.
//
// The output is Columns*TileWidth by Rows*TileHeight pixels, which may
// differ slightly from the target's dimensions scaled by the density
// factor due to integer rounding.
//
// Assembly always terminates with a complete mosaic; there are no
// failure modes once the inputs are valid.
//
// # Determinism
//
// Bucket cursors are reset at the start of every run, so identical
// target, grid, and catalog always produce byte-identical output. To
// keep that guarantee under parallelism, the run is split into three
// phases: region averaging (parallel across rows), cursor-advancing
// tile picks (sequential, row-major), and pixel placement (parallel
// across rows). Only the middle phase touches mutable state.
func Assemble(target image.Image, grid Grid, index *ColorIndex, opts *AssembleOptions) *image.NRGBA {
	if opts == nil {
		opts = &AssembleOptions{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	index.ResetCursors()

	total := grid.Cells()
	bounds := target.Bounds()

	// Phase 1: average color of every cell's target region.
	averages := make([]img.RGBColor, total)
	forEachRow(grid.Rows, workers, func(row int) {
		for col := 0; col < grid.Columns; col++ {
			region := image.Rect(
				bounds.Min.X+col*grid.CellWidth,
				bounds.Min.Y+row*grid.CellHeight,
				bounds.Min.X+(col+1)*grid.CellWidth,
				bounds.Min.Y+(row+1)*grid.CellHeight,
			)
			averages[row*grid.Columns+col] = img.AverageColorRegion(target, region)
		}
	})

	// Phase 2: cycling picks, strictly row-major.
	picks := make([]int, total)
	for cell := 0; cell < total; cell++ {
		picks[cell] = index.CyclingPick(averages[cell])
	}

	// Phase 3: copy the selected tiles into the output.
	out := image.NewNRGBA(image.Rect(0, 0, grid.OutputWidth(), grid.OutputHeight()))
	var progressMu sync.Mutex
	done := 0
	forEachRow(grid.Rows, workers, func(row int) {
		for col := 0; col < grid.Columns; col++ {
			tile := index.Catalog().Tile(picks[row*grid.Columns+col])
			dp := image.Pt(col*grid.TileWidth, row*grid.TileHeight)
			xdraw.Copy(out, dp, tile.Image, tile.Image.Bounds(), xdraw.Src, nil)

			if opts.Progress != nil {
				progressMu.Lock()
				done++
				opts.Progress(done, total)
				progressMu.Unlock()
			}
		}
	})

	return out
}

// forEachRow runs fn for every row index on a pool of worker
// goroutines, returning once all rows are processed.
func forEachRow(rows, workers int, fn func(row int)) {
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		for row := 0; row < rows; row++ {
			fn(row)
		}
		return
	}

	rowCh := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for row := range rowCh {
				fn(row)
			}
		}()
	}
	for row := 0; row < rows; row++ {
		rowCh <- row
	}
	close(rowCh)
	wg.Wait()
}
