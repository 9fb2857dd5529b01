package epdimg

import (
	"image"
)

// Result is the outcome of one conversion.
type Result struct {
	Bitmap *Bitmap
	Levels []uint8
}

// Convert runs preprocessing, quantization and packing on img.
func Convert(img image.Image, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prepared, err := Preprocess(img, cfg)
	if err != nil {
		return nil, err
	}
	levels, err := Quantize(prepared, cfg)
	if err != nil {
		return nil, err
	}
	b := prepared.Bounds()
	bm, err := Pack(cfg.mode(), b.Dx(), b.Dy(), levels)
	if err != nil {
		return nil, err
	}
	return &Result{Bitmap: bm, Levels: levels}, nil
}

// ConvertFile loads the image at path and converts it. The config is
// validated before the file is read.
func ConvertFile(path string, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return Convert(img, cfg)
}

// Preview renders the packed planes as they will appear on the panel.
func (r *Result) Preview() (image.Image, error) {
	return r.Bitmap.Image()
}
