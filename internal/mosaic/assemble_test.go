package mosaic

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	img "github.com/tilecraft/mosaicgen/internal/imaging"
)

// quadrantImage creates a 2x2-quadrant target: one solid color per
// quadrant, each half x half pixels.
func quadrantImage(half int, tl, tr, bl, br color.RGBA) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, 2*half, 2*half))
	set := func(x0, y0 int, c color.RGBA) {
		for y := y0; y < y0+half; y++ {
			for x := x0; x < x0+half; x++ {
				im.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
		}
	}
	set(0, 0, tl)
	set(half, 0, tr)
	set(0, half, bl)
	set(half, half, br)
	return im
}

// checkSolidRegion verifies every pixel in the rectangle matches the
// expected color exactly.
func checkSolidRegion(t *testing.T, im image.Image, r image.Rectangle, want color.RGBA, label string) {
	t.Helper()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := im.At(x, y).RGBA()
			got := color.RGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8)}
			if got.R != want.R || got.G != want.G || got.B != want.B {
				t.Fatalf("%s: pixel (%d,%d) = %v, want %v", label, x, y, got, want)
			}
		}
	}
}

func TestAssemble_QuadrantsExactMatch(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	gray := color.RGBA{128, 128, 128, 255}

	target := quadrantImage(10, red, green, blue, gray)
	catalog := solidCatalog(t, 10, 10, []color.RGBA{red, green, blue, gray})
	index := BuildIndex(catalog)

	grid, err := PlanGrid(20, 20, 10, 10, 1.0)
	if err != nil {
		t.Fatalf("PlanGrid failed: %v", err)
	}
	if grid.Columns != 2 || grid.Rows != 2 {
		t.Fatalf("grid: got %dx%d, want 2x2", grid.Columns, grid.Rows)
	}

	out := Assemble(target, grid, index, nil)

	if b := out.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("output: got %dx%d, want 20x20", b.Dx(), b.Dy())
	}

	// Each output cell must be the tile exactly matching its quadrant.
	checkSolidRegion(t, out, image.Rect(0, 0, 10, 10), red, "top-left")
	checkSolidRegion(t, out, image.Rect(10, 0, 20, 10), green, "top-right")
	checkSolidRegion(t, out, image.Rect(0, 10, 10, 20), blue, "bottom-left")
	checkSolidRegion(t, out, image.Rect(10, 10, 20, 20), gray, "bottom-right")
}

func TestAssemble_Reproducible(t *testing.T) {
	// Duplicate colors force cycling, the part that could diverge
	// between runs if cursors were not reset.
	dup := color.RGBA{100, 100, 100, 255}
	colors := []color.RGBA{dup, dup, {20, 40, 60, 255}, dup, {200, 10, 10, 255}}
	target := quadrantImage(15, color.RGBA{99, 99, 99, 255}, color.RGBA{101, 101, 101, 255},
		color.RGBA{21, 41, 61, 255}, color.RGBA{100, 100, 100, 255})

	grid, err := PlanGrid(30, 30, 6, 6, 1.5)
	if err != nil {
		t.Fatalf("PlanGrid failed: %v", err)
	}

	catalog := solidCatalog(t, 6, 6, colors)
	index := BuildIndex(catalog)

	first := Assemble(target, grid, index, nil)
	second := Assemble(target, grid, index, nil) // same index, cursors reset internally

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("two runs over the same index differ; cursors not reset at assembly start")
	}

	// And with a freshly built index.
	third := Assemble(target, grid, BuildIndex(catalog), nil)
	if !bytes.Equal(first.Pix, third.Pix) {
		t.Error("run with a fresh index differs from the original run")
	}
}

func TestAssemble_ParallelMatchesSerial(t *testing.T) {
	dup := color.RGBA{64, 64, 64, 255}
	colors := []color.RGBA{dup, dup, dup, {255, 255, 255, 255}, {0, 0, 0, 255}}
	target := quadrantImage(20, color.RGBA{60, 60, 60, 255}, color.RGBA{250, 250, 250, 255},
		color.RGBA{5, 5, 5, 255}, color.RGBA{64, 64, 64, 255})

	grid, err := PlanGrid(40, 40, 5, 5, 1.0)
	if err != nil {
		t.Fatalf("PlanGrid failed: %v", err)
	}
	catalog := solidCatalog(t, 5, 5, colors)

	serial := Assemble(target, grid, BuildIndex(catalog), &AssembleOptions{Workers: 1})
	parallel := Assemble(target, grid, BuildIndex(catalog), &AssembleOptions{Workers: 8})

	if !bytes.Equal(serial.Pix, parallel.Pix) {
		t.Error("parallel assembly differs from serial assembly")
	}
}

func TestAssemble_ProgressCallback(t *testing.T) {
	target := quadrantImage(10, color.RGBA{1, 1, 1, 255}, color.RGBA{2, 2, 2, 255},
		color.RGBA{3, 3, 3, 255}, color.RGBA{4, 4, 4, 255})
	catalog := solidCatalog(t, 4, 4, []color.RGBA{{1, 1, 1, 255}, {4, 4, 4, 255}})

	grid, err := PlanGrid(20, 20, 4, 4, 1.0)
	if err != nil {
		t.Fatalf("PlanGrid failed: %v", err)
	}

	var calls []int
	lastTotal := 0
	Assemble(target, grid, BuildIndex(catalog), &AssembleOptions{
		Workers: 4,
		Progress: func(done, total int) {
			calls = append(calls, done)
			lastTotal = total
		},
	})

	want := grid.Cells()
	if lastTotal != want {
		t.Errorf("total: got %d, want %d", lastTotal, want)
	}
	if len(calls) != want {
		t.Fatalf("callback count: got %d, want %d", len(calls), want)
	}
	for i, done := range calls {
		if done != i+1 {
			t.Fatalf("call %d: done = %d, want %d (must increase strictly)", i, done, i+1)
		}
	}
}

func TestAssemble_OutputSizeFollowsGrid(t *testing.T) {
	target := solidImage(33, 17, color.RGBA{120, 130, 140, 255})
	catalog := solidCatalog(t, 8, 8, []color.RGBA{{120, 130, 140, 255}})

	grid, err := PlanGrid(33, 17, 8, 8, 1.0)
	if err != nil {
		t.Fatalf("PlanGrid failed: %v", err)
	}

	out := Assemble(target, grid, BuildIndex(catalog), nil)

	wantW := grid.Columns * 8
	wantH := grid.Rows * 8
	if b := out.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("output: got %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestAssemble_CyclesDuplicateTiles(t *testing.T) {
	// Four identical-color cells and a bucket of two same-color tiles:
	// the picks must spread across both tiles, row-major.
	same := color.RGBA{200, 50, 25, 255}
	target := solidImage(20, 20, same)
	catalog := solidCatalog(t, 10, 10, []color.RGBA{same, same})
	index := BuildIndex(catalog)

	grid, err := PlanGrid(20, 20, 10, 10, 1.0)
	if err != nil {
		t.Fatalf("PlanGrid failed: %v", err)
	}

	Assemble(target, grid, index, nil)

	// Four cells cycled a 2-bucket twice, leaving the cursor at 0; the
	// next pick from a fresh query starts the rotation over.
	if got := index.CyclingPick(img.RGBColor{R: same.R, G: same.G, B: same.B}); got != 0 {
		t.Errorf("cursor after assembly: next pick %d, want 0", got)
	}
}
