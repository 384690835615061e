package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a solid-color test image.
func createInMemoryImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestAverageColor_SolidFill(t *testing.T) {
	tests := []struct {
		name string
		fill color.RGBA
	}{
		{"black", color.RGBA{0, 0, 0, 255}},
		{"white", color.RGBA{255, 255, 255, 255}},
		{"mixed", color.RGBA{90, 140, 23, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(2, 2, tt.fill)
			got := AverageColor(img)
			want := RGBColor{R: tt.fill.R, G: tt.fill.G, B: tt.fill.B}
			if got != want {
				t.Errorf("AverageColor: got %v, want %v", got, want)
			}
		})
	}
}

func TestAverageColor_MixedPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{0, 100, 200, 255})
	img.Set(1, 0, color.RGBA{100, 200, 0, 255})

	got := AverageColor(img)
	want := RGBColor{R: 50, G: 150, B: 100}
	if got != want {
		t.Errorf("AverageColor: got %v, want %v", got, want)
	}
}

func TestAverageColorRegion(t *testing.T) {
	// Left half red, right half blue.
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
			img.Set(x+2, y, color.RGBA{0, 0, 255, 255})
		}
	}

	if got := AverageColorRegion(img, image.Rect(0, 0, 2, 2)); got != (RGBColor{R: 255}) {
		t.Errorf("left half: got %v, want {255 0 0}", got)
	}
	if got := AverageColorRegion(img, image.Rect(2, 0, 4, 2)); got != (RGBColor{B: 255}) {
		t.Errorf("right half: got %v, want {0 0 255}", got)
	}
}

func TestAverageColorRegion_ClampsToBounds(t *testing.T) {
	img := createInMemoryImage(3, 3, color.RGBA{10, 20, 30, 255})

	// Overhanging region averages only the pixels that exist.
	got := AverageColorRegion(img, image.Rect(2, 2, 10, 10))
	want := RGBColor{R: 10, G: 20, B: 30}
	if got != want {
		t.Errorf("overhanging region: got %v, want %v", got, want)
	}

	// Fully outside yields black rather than dividing by zero.
	if got := AverageColorRegion(img, image.Rect(5, 5, 8, 8)); got != (RGBColor{}) {
		t.Errorf("empty intersection: got %v, want zero color", got)
	}
}

func TestDistanceSq(t *testing.T) {
	tests := []struct {
		name string
		a, b RGBColor
		want int
	}{
		{"identical", RGBColor{10, 20, 30}, RGBColor{10, 20, 30}, 0},
		{"single axis", RGBColor{0, 0, 10}, RGBColor{0, 0, 15}, 25},
		{"all axes", RGBColor{1, 2, 3}, RGBColor{4, 6, 3}, 25},
		{"extremes", RGBColor{0, 0, 0}, RGBColor{255, 255, 255}, 3 * 255 * 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceSq(tt.b); got != tt.want {
				t.Errorf("DistanceSq: got %d, want %d", got, tt.want)
			}
			if got := tt.b.DistanceSq(tt.a); got != tt.want {
				t.Errorf("DistanceSq (reversed): got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := (RGBColor{R: 255, G: 10, B: 0}).Hex(); got != "#FF0A00" {
		t.Errorf("Hex: got %s, want #FF0A00", got)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF0A00")
	if err != nil {
		t.Fatalf("ParseHexColor failed: %v", err)
	}
	if c.R != 255 || c.G != 10 || c.B != 0 || c.A != 255 {
		t.Errorf("got %v, want {255 10 0 255}", c)
	}

	c, err = ParseHexColor("00FF0080")
	if err != nil {
		t.Fatalf("ParseHexColor with alpha failed: %v", err)
	}
	if c.G != 255 || c.A != 128 {
		t.Errorf("got %v, want green with alpha 128", c)
	}

	for _, bad := range []string{"", "#12345", "#GGGGGG"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q): expected error", bad)
		}
	}
}
