package epdimg

import (
	"fmt"
	"image"
	"image/color/palette"

	"github.com/MaxHalford/halfgone"
	"github.com/esimov/colorquant"
)

var floydSteinberg = colorquant.Dither{
	Filter: [][]float32{
		{0, 0, 7.0 / 16.0},
		{3.0 / 16.0, 5.0 / 16.0, 1.0 / 16.0},
	},
}

// Classify maps a luminance value to a level using one cut value (levels
// 0..1) or three ascending cut values (levels 0..3).
func Classify(v uint8, thresholds []int) uint8 {
	var level uint8
	for _, t := range thresholds {
		if int(v) < t {
			break
		}
		level++
	}
	return level
}

// Quantize converts a preprocessed image into one level per pixel in
// row-major order.
func Quantize(img image.Image, cfg Config) ([]uint8, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	thresholds := cfg.EffectiveThresholds()

	var gray *image.Gray
	switch cfg.mode() {
	case ModeL1:
		gray = halfgone.ImageToGray(img)
		if cfg.Dither {
			var fs halfgone.FloydSteinbergDitherer
			gray = fs.Apply(gray)
		}
	case ModeL2:
		if cfg.Dither {
			img = ditherWebSafe(img)
		}
		gray = halfgone.ImageToGray(img)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}

	b := gray.Bounds()
	levels := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := gray.Pix[(y-b.Min.Y)*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			levels = append(levels, Classify(row[x], thresholds))
		}
	}
	return levels, nil
}

// ditherWebSafe reduces the image to the web-safe palette with error
// diffusion. The 4-way classification runs on the result.
func ditherWebSafe(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.WebSafe)
	if out := floydSteinberg.Quantize(img, dst, len(palette.WebSafe), true, false); out != nil {
		return out
	}
	return dst
}
