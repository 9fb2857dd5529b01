package epdimg

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/KononK/resize"
)

// Preprocess flattens alpha onto white, applies the requested resize and pads
// the width with white up to a multiple of 8.
func Preprocess(img image.Image, cfg Config) (*image.NRGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrInput, b.Dx(), b.Dy())
	}

	out := flattenAlpha(img)

	w, h, scaled := targetSize(b.Dx(), b.Dy(), cfg.TargetWidth, cfg.TargetHeight)
	if scaled {
		out = toNRGBA(resize.Resize(uint(w), uint(h), out, resize.Bilinear))
		if cfg.TargetWidth != nil && cfg.TargetHeight != nil {
			cfg.logf("Scaled to %dx%d", w, h)
		} else {
			cfg.logf("Scaled uniformly to: %dx%d", w, h)
		}
	}

	if pw := PaddedWidth(w); pw != w {
		out = padRight(out, pw)
		cfg.logf("Image width not divisible by 8. Padded to width: %d", pw)
	}
	return out, nil
}

// PaddedWidth rounds w up to the next multiple of 8.
func PaddedWidth(w int) int {
	if r := w % 8; r != 0 {
		return w + 8 - r
	}
	return w
}

func targetSize(sw, sh int, tw, th *int) (int, int, bool) {
	switch {
	case tw != nil && th != nil:
		return *tw, *th, true
	case tw != nil:
		return *tw, scaleDim(*tw, sh, sw), true
	case th != nil:
		return scaleDim(*th, sw, sh), *th, true
	}
	return sw, sh, false
}

// scaleDim returns round(given * other / base), never below 1.
func scaleDim(given, other, base int) int {
	v := int(math.Round(float64(given) * float64(other) / float64(base)))
	if v < 1 {
		return 1
	}
	return v
}

func flattenAlpha(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func padRight(src *image.NRGBA, width int) *image.NRGBA {
	h := src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, src.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
