// Package config loads mosaicgen's run parameters from an optional
// YAML file, falling back to built-in defaults.
package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the paths and parameters for a mosaic run. The engine
// itself never reads configuration; the CLI resolves a Config and
// passes plain validated values down.
type Config struct {
	// BaseImage is the path to the target image.
	BaseImage string `yaml:"base_image"`

	// TileSource is a directory or zip archive of tile images.
	TileSource string `yaml:"tile_source"`

	// OutputDir receives the generated mosaic files.
	OutputDir string `yaml:"output_dir"`

	// TileWidth and TileHeight are the tile dimensions in pixels.
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`

	// DensityFactor adjusts mosaic detail: 1.0 = one cell per tile
	// size, >1.0 = more, smaller cells (finer mosaic).
	DensityFactor float64 `yaml:"density_factor"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseImage:     "base_image.png",
		TileSource:    "tiles_archive.zip",
		OutputDir:     "mosaic_results",
		TileWidth:     50,
		TileHeight:    50,
		DensityFactor: 1.0,
	}
}

// Load reads a YAML config file over the defaults.
//
// A missing file is not an error: a warning is logged and the defaults
// are returned, so a bare invocation still works. A file that exists
// but cannot be parsed is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: config file %q not found, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all parameters are usable before the pipeline
// starts. It reports the first problem found.
func (c Config) Validate() error {
	if c.BaseImage == "" {
		return fmt.Errorf("base_image must be set")
	}
	if c.TileSource == "" {
		return fmt.Errorf("tile_source must be set")
	}
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return fmt.Errorf("tile dimensions must be positive, got %dx%d", c.TileWidth, c.TileHeight)
	}
	if c.DensityFactor <= 0 {
		return fmt.Errorf("density_factor must be positive, got %g", c.DensityFactor)
	}
	return nil
}
