package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// imageExtensions lists the file extensions considered image candidates
// when scanning a directory or archive. Anything else is silently
// ignored; candidates that then fail to decode are skipped with a
// logged warning.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// LoadImage loads and decodes a single image file.
//
// Parameters:
//   - path: Path to the image. Supported formats are PNG, JPEG, GIF,
//     BMP, TIFF, and WebP.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the
//     format (e.g., *image.RGBA, *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be opened or decoded.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return img, nil
}

// LoadSources loads all decodable images from a tile source, which may
// be either a directory of image files or a zip archive of them.
//
// Parameters:
//   - path: Path to a directory or a ".zip" archive.
//
// Returns:
//   - []image.Image: Decoded images in deterministic (lexical) order.
//     Undecodable entries are skipped, never fatal; the slice may be
//     empty if nothing decoded.
//   - error: Non-nil only if the path itself cannot be read or is
//     neither a directory nor a zip archive.
func LoadSources(path string) ([]image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat tile source: %w", err)
	}
	if info.IsDir() {
		return LoadDirectory(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return LoadArchive(path)
	}
	return nil, fmt.Errorf("tile source %s is neither a directory nor a zip archive", path)
}

// LoadDirectory decodes every image file found directly in a directory.
//
// Files whose extension is not a known image format are ignored. Files
// that look like images but fail to decode (corrupt or zero-byte) are
// skipped with a warning logged to the standard logger; a bad file
// never aborts the scan.
func LoadDirectory(dir string) ([]image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile directory: %w", err)
	}

	var images []image.Image
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		img, err := LoadImage(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: skipping %s: %v", entry.Name(), err)
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

// LoadArchive decodes every image file stored in a zip archive.
//
// Directory entries and macOS metadata ("__MACOSX" resource forks) are
// ignored. Entries that fail to decode are skipped with a warning, same
// as LoadDirectory.
func LoadArchive(path string) ([]image.Image, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	var images []image.Image
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX") {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(f.Name))] {
			continue
		}
		img, err := decodeArchiveEntry(f)
		if err != nil {
			log.Printf("Warning: skipping %s in %s: %v", f.Name, filepath.Base(path), err)
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

func decodeArchiveEntry(f *zip.File) (image.Image, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
