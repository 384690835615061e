package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	flag "github.com/spf13/pflag"

	"github.com/tilecraft/mosaicgen/internal/config"
	img "github.com/tilecraft/mosaicgen/internal/imaging"
	"github.com/tilecraft/mosaicgen/internal/mosaic"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout stays clean for shell use)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("mosaicgen %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "prepare-tiles":
			if err := runPrepareTiles(os.Args[2:]); err != nil {
				log.Fatalf("prepare-tiles: %v", err)
			}
			return
		case "preview":
			if err := runPreview(os.Args[2:]); err != nil {
				log.Fatalf("preview: %v", err)
			}
			return
		}
	}

	if err := runGenerate(os.Args[1:]); err != nil {
		log.Fatalf("mosaicgen: %v", err)
	}
}

func printUsage() {
	fmt.Println("mosaicgen - grid-based photo mosaic generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mosaicgen [flags]                generate a mosaic")
	fmt.Println("  mosaicgen prepare-tiles [flags]  build a palette-tinted tile library")
	fmt.Println("  mosaicgen preview [flags]        render the sampling grid over the target")
	fmt.Println()
	fmt.Println("Flags (generate):")
	fmt.Println("  --config PATH        YAML config file (default mosaicgen.yaml)")
	fmt.Println("  --base PATH          target image")
	fmt.Println("  --tiles PATH         tile directory or zip archive")
	fmt.Println("  --out-dir PATH       output directory")
	fmt.Println("  --tile-width N       tile width in pixels")
	fmt.Println("  --tile-height N      tile height in pixels")
	fmt.Println("  --density F          grid density factor (>1 = finer mosaic)")
	fmt.Println("  --workers N          worker goroutines (0 = all CPUs)")
	fmt.Println("  --format EXT         output format: png or jpg")
	fmt.Println()
	fmt.Println("Run 'mosaicgen <subcommand> --help' for subcommand flags.")
}

// resolveConfig loads the config file and applies any flags the user
// set explicitly on top of it.
func resolveConfig(fs *flag.FlagSet, configPath string, cfg *config.Config,
	base, tiles, outDir *string, tileW, tileH *int, density *float64) error {

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	*cfg = loaded

	if fs.Changed("base") {
		cfg.BaseImage = *base
	}
	if fs.Changed("tiles") {
		cfg.TileSource = *tiles
	}
	if fs.Changed("out-dir") {
		cfg.OutputDir = *outDir
	}
	if fs.Changed("tile-width") {
		cfg.TileWidth = *tileW
	}
	if fs.Changed("tile-height") {
		cfg.TileHeight = *tileH
	}
	if fs.Changed("density") {
		cfg.DensityFactor = *density
	}

	return cfg.Validate()
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("mosaicgen", flag.ExitOnError)
	configPath := fs.String("config", "mosaicgen.yaml", "YAML config file")
	base := fs.String("base", "", "target image")
	tiles := fs.String("tiles", "", "tile directory or zip archive")
	outDir := fs.String("out-dir", "", "output directory")
	tileW := fs.Int("tile-width", 0, "tile width in pixels")
	tileH := fs.Int("tile-height", 0, "tile height in pixels")
	density := fs.Float64("density", 0, "grid density factor")
	workers := fs.Int("workers", 0, "worker goroutines (0 = all CPUs)")
	format := fs.String("format", "png", "output format: png or jpg")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg config.Config
	if err := resolveConfig(fs, *configPath, &cfg, base, tiles, outDir, tileW, tileH, density); err != nil {
		return err
	}
	if *format != "png" && *format != "jpg" {
		return fmt.Errorf("unsupported output format %q", *format)
	}

	start := time.Now()

	target, err := img.LoadImage(cfg.BaseImage)
	if err != nil {
		return err
	}
	bounds := target.Bounds()
	log.Printf("Loaded base image %s (%dx%d)", cfg.BaseImage, bounds.Dx(), bounds.Dy())

	sources, err := img.LoadSources(cfg.TileSource)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d tile images from %s", len(sources), cfg.TileSource)

	catalog, err := mosaic.BuildCatalog(sources, cfg.TileWidth, cfg.TileHeight)
	if err != nil {
		return err
	}
	index := mosaic.BuildIndex(catalog)
	log.Printf("Catalog: %d tiles, %d unique average colors", catalog.Len(), index.UniqueColors())

	grid, err := mosaic.PlanGrid(bounds.Dx(), bounds.Dy(), cfg.TileWidth, cfg.TileHeight, cfg.DensityFactor)
	if err != nil {
		return err
	}
	log.Printf("Grid: %dx%d cells, %dx%d px sampling footprint, output %dx%d px",
		grid.Columns, grid.Rows, grid.CellWidth, grid.CellHeight,
		grid.OutputWidth(), grid.OutputHeight())

	out := mosaic.Assemble(target, grid, index, &mosaic.AssembleOptions{
		Workers: *workers,
		Progress: func(done, total int) {
			if done%100 == 0 || done == total {
				log.Printf("Progress: %d/%d cells (%.1f%%)", done, total,
					float64(done)/float64(total)*100)
			}
		},
	})

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(cfg.OutputDir, outputName(cfg, *format))
	if err := imaging.Save(out, outPath); err != nil {
		return fmt.Errorf("failed to save mosaic: %w", err)
	}

	log.Printf("Saved %s in %.2fs", outPath, time.Since(start).Seconds())
	fmt.Println(outPath)
	return nil
}

// outputName embeds the timestamp and run parameters in the file name,
// e.g. "photo_mosaic_20250102_150405_tile50x50_res1p5.png".
func outputName(cfg config.Config, format string) string {
	res := strings.ReplaceAll(strconv.FormatFloat(cfg.DensityFactor, 'g', -1, 64), ".", "p")
	return fmt.Sprintf("photo_mosaic_%s_tile%dx%d_res%s.%s",
		time.Now().Format("20060102_150405"), cfg.TileWidth, cfg.TileHeight, res, format)
}

func runPrepareTiles(args []string) error {
	fs := flag.NewFlagSet("prepare-tiles", flag.ExitOnError)
	input := fs.String("input", "tiles_input", "directory of raw tile images")
	outDir := fs.String("out-dir", "tiles_output", "directory for tinted variants")
	archive := fs.String("archive", "tiles_archive.zip", "output zip archive ('' to skip)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sources, err := img.LoadDirectory(*input)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no usable images in %s", *input)
	}
	log.Printf("Loaded %d source images from %s", len(sources), *input)

	written, err := img.GenerateVariants(sources, img.BasicPalette, *outDir)
	if err != nil {
		return err
	}
	log.Printf("Wrote %d tinted variants to %s", written, *outDir)

	if *archive != "" {
		if err := img.WriteArchive(*outDir, *archive); err != nil {
			return err
		}
		log.Printf("Created archive %s", *archive)
		fmt.Println(*archive)
	}
	return nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	configPath := fs.String("config", "mosaicgen.yaml", "YAML config file")
	base := fs.String("base", "", "target image")
	tiles := fs.String("tiles", "", "unused; accepted for flag parity")
	outDir := fs.String("out-dir", "", "output directory")
	tileW := fs.Int("tile-width", 0, "tile width in pixels")
	tileH := fs.Int("tile-height", 0, "tile height in pixels")
	density := fs.Float64("density", 0, "grid density factor")
	gridColor := fs.String("grid-color", "#FF0000", "grid line color")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg config.Config
	if err := resolveConfig(fs, *configPath, &cfg, base, tiles, outDir, tileW, tileH, density); err != nil {
		return err
	}

	target, err := img.LoadImage(cfg.BaseImage)
	if err != nil {
		return err
	}
	bounds := target.Bounds()

	grid, err := mosaic.PlanGrid(bounds.Dx(), bounds.Dy(), cfg.TileWidth, cfg.TileHeight, cfg.DensityFactor)
	if err != nil {
		return err
	}

	preview := img.GridPreview(target, grid.CellWidth, grid.CellHeight, *gridColor)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := filepath.Join(cfg.OutputDir,
		fmt.Sprintf("grid_preview_%s.png", time.Now().Format("20060102_150405")))
	if err := imaging.Save(preview, outPath); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}

	log.Printf("Saved %s (%dx%d cells)", outPath, grid.Columns, grid.Rows)
	fmt.Println(outPath)
	return nil
}
