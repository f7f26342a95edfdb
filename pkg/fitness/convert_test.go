package fitness

import (
	"image"
	"image/color"
	"testing"
)

func TestToRGBA(t *testing.T) {
	t.Run("passthrough", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 3, 3))
		if got := ToRGBA(img); got != img {
			t.Error("origin RGBA should be returned unchanged")
		}
	})

	t.Run("offset bounds", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(5, 5, 8, 7))
		src.SetRGBA(5, 5, color.RGBA{R: 9, A: 255})
		got := ToRGBA(src)
		if got.Bounds() != image.Rect(0, 0, 3, 2) {
			t.Fatalf("bounds = %v", got.Bounds())
		}
		if c := got.RGBAAt(0, 0); c.R != 9 {
			t.Errorf("pixel (0,0) = %v, want R=9", c)
		}
	})

	t.Run("gray", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 2, 2))
		src.SetGray(1, 1, color.Gray{Y: 200})
		got := ToRGBA(src)
		if c := got.RGBAAt(1, 1); c != (color.RGBA{R: 200, G: 200, B: 200, A: 255}) {
			t.Errorf("pixel (1,1) = %v", c)
		}
	})
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		maxSide int
		wantW   int
		wantH   int
	}{
		{"disabled", 100, 50, 0, 100, 50},
		{"already small", 100, 50, 200, 100, 50},
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 200, 400, 100, 50, 100},
		{"thin", 1000, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Downscale(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.maxSide)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}
