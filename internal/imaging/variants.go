package imaging

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zip"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteColor is a named target color for tile tinting.
type PaletteColor struct {
	Name string
	Hex  string
}

// BasicPalette is the default tinting palette: six versatile colors plus
// magenta. Black and white are pulled slightly toward gray so tinted
// tiles keep some tonal detail.
var BasicPalette = []PaletteColor{
	{Name: "red", Hex: "#FF0000"},
	{Name: "blue", Hex: "#0000FF"},
	{Name: "yellow", Hex: "#FFFF00"},
	{Name: "black", Hex: "#1E1E1E"},
	{Name: "white", Hex: "#E6E6E6"},
	{Name: "green", Hex: "#008000"},
	{Name: "magenta", Hex: "#FF00FF"},
}

// Tint converts an image to grayscale and recolors it toward a target
// color: black pixels stay black, white pixels become the target, and
// midtones are blended proportionally to their luminance.
//
// Parameters:
//   - img: The source image.
//   - hex: Target color in "#RRGGBB" form.
//
// Returns:
//   - *image.NRGBA: The tinted image, same dimensions as the source,
//     fully opaque.
//   - error: Non-nil if the hex color cannot be parsed.
func Tint(img image.Image, hex string) (*image.NRGBA, error) {
	target, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid tint color %q: %w", hex, err)
	}

	gray := effect.Grayscale(img)

	// Precompute the black-to-target ramp once; every pixel then maps
	// through its luminance.
	black := colorful.Color{}
	var ramp [256][3]uint8
	for i := 0; i < 256; i++ {
		r, g, b := black.BlendRgb(target, float64(i)/255.0).RGB255()
		ramp[i] = [3]uint8{r, g, b}
	}

	bounds := gray.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Grayscale output has R=G=B, so any channel is the luminance.
			lum := gray.RGBAAt(x, y).R
			c := ramp[lum]
			i := out.PixOffset(x-bounds.Min.X, y-bounds.Min.Y)
			out.Pix[i] = c[0]
			out.Pix[i+1] = c[1]
			out.Pix[i+2] = c[2]
			out.Pix[i+3] = 0xFF
		}
	}

	return out, nil
}

// GenerateVariants produces one tinted copy of every source image for
// every palette color and writes them as PNG files into outDir.
//
// Output files are named "<index>_<colorname>.png". The directory is
// created if it does not exist. Sources that fail to tint are skipped
// with a warning rather than aborting the batch.
//
// Returns the number of variant files written.
func GenerateVariants(images []image.Image, palette []PaletteColor, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create variant directory: %w", err)
	}

	written := 0
	for i, img := range images {
		for _, pc := range palette {
			tinted, err := Tint(img, pc.Hex)
			if err != nil {
				return written, err
			}
			name := filepath.Join(outDir, fmt.Sprintf("%04d_%s.png", i, pc.Name))
			if err := imaging.Save(tinted, name); err != nil {
				log.Printf("Warning: failed to write variant %s: %v", name, err)
				continue
			}
			written++
		}
	}

	return written, nil
}

// WriteArchive packs every regular file directly inside dir into a new
// zip archive at archivePath, using deflate compression. Entry names
// are the bare file names, without the directory prefix.
func WriteArchive(dir, archivePath string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	entries, err := os.ReadDir(dir)
	if err != nil {
		zw.Close()
		return fmt.Errorf("failed to read variant directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addArchiveEntry(zw, dir, entry.Name()); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func addArchiveEntry(zw *zip.Writer, dir, name string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", name, err)
	}
	return nil
}
