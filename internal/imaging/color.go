package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color in "#RRGGBB" format.
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// DistanceSq returns the squared Euclidean distance to another color.
//
// Squared distance preserves ordering and avoids the square root, which
// is all nearest-neighbor matching needs. The maximum possible value is
// 3*255*255 = 195075.
func (c RGBColor) DistanceSq(o RGBColor) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// Channel returns the component selected by axis: 0=R, 1=G, 2=B.
// Used by spatial indexing code that treats a color as a 3-D point.
func (c RGBColor) Channel(axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// AverageColor computes the arithmetic mean of each color channel over
// all pixels of an image.
//
// Parameters:
//   - img: The source image. Must have a non-empty bounds rectangle.
//
// Returns:
//   - RGBColor: Per-channel means, truncated to 8 bits.
//
// Pixels are read through the image.Image interface and scaled from
// Go's native 16-bit representation down to 8 bits before summing, so
// the result is exact for 8-bit sources: a solid-color image averages
// to exactly its fill color.
func AverageColor(img image.Image) RGBColor {
	return AverageColorRegion(img, img.Bounds())
}

// AverageColorRegion computes the per-channel mean over a rectangular
// region of an image.
//
// Parameters:
//   - img: The source image.
//   - region: The region to average. It is intersected with the image
//     bounds first; callers may pass rectangles that overhang the right
//     or bottom edge (partial cells at a grid boundary).
//
// Returns:
//   - RGBColor: Per-channel means. An empty intersection yields black.
func AverageColorRegion(img image.Image, region image.Rectangle) RGBColor {
	bounds := region.Intersect(img.Bounds())
	if bounds.Empty() {
		return RGBColor{}
	}

	var rSum, gSum, bSum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(b >> 8)
		}
	}

	n := uint64(bounds.Dx() * bounds.Dy())
	return RGBColor{
		R: uint8(rSum / n),
		G: uint8(gSum / n),
		B: uint8(bSum / n),
	}
}

// ParseHexColor parses a hex color string like "#FF0000" or "#FF000080".
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
