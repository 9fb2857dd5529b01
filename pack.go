package epdimg

import (
	"fmt"
	"image"
	"image/color"
)

// Bitmap holds packed HLSB planes. Red is nil in L1 mode.
type Bitmap struct {
	Width  int
	Height int
	BW     []byte
	Red    []byte
}

var monoPalette = color.Palette{
	color.Gray{Y: 0},
	color.Gray{Y: 255},
}

var quadPalette = color.Palette{
	color.Gray{Y: 0},
	color.Gray{Y: 85},
	color.Gray{Y: 170},
	color.Gray{Y: 255},
}

func paletteForMode(mode Mode) color.Palette {
	if mode == ModeL2 {
		return quadPalette
	}
	return monoPalette
}

// Mode reports L2 when the bitmap carries a red plane.
func (b *Bitmap) Mode() Mode {
	if b.Red != nil {
		return ModeL2
	}
	return ModeL1
}

// Pack splits levels into the planes of the mode: bit 0 goes to the black
// plane and, in L2 mode, bit 1 to the red plane.
func Pack(mode Mode, width, height int, levels []uint8) (*Bitmap, error) {
	if err := validateLevels(mode, width, height, levels); err != nil {
		return nil, err
	}
	bm := &Bitmap{
		Width:  width,
		Height: height,
		BW:     PackPlane(levels, 0),
	}
	if mode == ModeL2 {
		bm.Red = PackPlane(levels, 1)
	}
	return bm, nil
}

// PackPlane packs bit n of every level, 8 pixels per byte with the first
// pixel in the most significant bit. len(levels) must be a multiple of 8.
func PackPlane(levels []uint8, n uint) []byte {
	out := make([]byte, len(levels)/8)
	for bi := range out {
		var v byte
		for i, px := range levels[bi*8 : bi*8+8] {
			v |= ((px >> n) & 0x01) << uint(7-i)
		}
		out[bi] = v
	}
	return out
}

// Unpack reverses Pack and returns one level per pixel.
func (b *Bitmap) Unpack() ([]uint8, error) {
	size := b.Width * b.Height
	if b.Width%8 != 0 || len(b.BW) != size/8 {
		return nil, fmt.Errorf("invalid black plane: %d bytes for %dx%d", len(b.BW), b.Width, b.Height)
	}
	if b.Red != nil && len(b.Red) != len(b.BW) {
		return nil, fmt.Errorf("plane length mismatch: bw=%d red=%d", len(b.BW), len(b.Red))
	}
	levels := make([]uint8, size)
	for i := range levels {
		shift := uint(7 - i%8)
		levels[i] = (b.BW[i/8] >> shift) & 0x01
		if b.Red != nil {
			levels[i] |= ((b.Red[i/8] >> shift) & 0x01) << 1
		}
	}
	return levels, nil
}

// Image renders the planes as gray levels.
func (b *Bitmap) Image() (*image.Paletted, error) {
	levels, err := b.Unpack()
	if err != nil {
		return nil, err
	}
	img := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), paletteForMode(b.Mode()))
	copy(img.Pix, levels)
	return img, nil
}

func validateLevels(mode Mode, width, height int, levels []uint8) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	if width%8 != 0 {
		return fmt.Errorf("width must be a multiple of 8: %d", width)
	}
	if len(levels) != width*height {
		return fmt.Errorf("invalid level count: got %d, want %d", len(levels), width*height)
	}
	limit := uint8(mode.Levels() - 1)
	for i, px := range levels {
		if px > limit {
			return fmt.Errorf("invalid level at %d: got %d, max %d", i, px, limit)
		}
	}
	return nil
}
