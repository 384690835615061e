package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// GridPreview draws the mosaic cell boundaries over a copy of the
// target image. Useful for tuning the density factor before committing
// to a full assembly run.
//
// Parameters:
//   - img: The target image.
//   - cellWidth, cellHeight: Cell dimensions in target pixels, as
//     computed by the grid planner.
//   - gridColorHex: Line color as "#RRGGBB" or "#RRGGBBAA". An
//     unparseable value falls back to semi-transparent red.
//
// Returns a new RGBA image; the input is not modified.
func GridPreview(img image.Image, cellWidth, cellHeight int, gridColorHex string) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gridColor, err := ParseHexColor(gridColorHex)
	if err != nil {
		gridColor = color.RGBA{255, 0, 0, 128}
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	// Vertical cell boundaries
	for x := cellWidth; x < width; x += cellWidth {
		for y := 0; y < height; y++ {
			result.Set(x, y, gridColor)
		}
	}

	// Horizontal cell boundaries
	for y := cellHeight; y < height; y += cellHeight {
		for x := 0; x < width; x++ {
			result.Set(x, y, gridColor)
		}
	}

	return result
}
