package epdimg

import (
	"math/rand"
	"testing"
)

func TestPackPlaneMSBFirst(t *testing.T) {
	levels := []uint8{1, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1}
	got := PackPlane(levels, 0)
	if len(got) != 2 || got[0] != 0b10000001 || got[1] != 0b01010101 {
		t.Fatalf("PackPlane: got %08b", got)
	}
}

func TestPackL2SplitsPlanes(t *testing.T) {
	// pixel 3 has level 2: low bit clear, high bit set
	levels := []uint8{0, 1, 3, 2, 0, 0, 0, 0}
	bm, err := Pack(ModeL2, 8, 1, levels)
	if err != nil {
		t.Fatal(err)
	}
	if bm.BW[0] != 0b01100000 {
		t.Fatalf("black plane: got %08b", bm.BW[0])
	}
	if bm.Red[0] != 0b00110000 {
		t.Fatalf("red plane: got %08b", bm.Red[0])
	}
}

func TestPackL1HasNoRedPlane(t *testing.T) {
	bm, err := Pack(ModeL1, 8, 1, make([]uint8, 8))
	if err != nil {
		t.Fatal(err)
	}
	if bm.Red != nil {
		t.Fatalf("expected nil red plane, got %v", bm.Red)
	}
	if bm.Mode() != ModeL1 {
		t.Fatalf("mode: got %s", bm.Mode())
	}
}

func TestPackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, mode := range []Mode{ModeL1, ModeL2} {
		t.Run(string(mode), func(t *testing.T) {
			w, h := 24, 7
			levels := make([]uint8, w*h)
			for i := range levels {
				levels[i] = uint8(rng.Intn(mode.Levels()))
			}
			bm, err := Pack(mode, w, h, levels)
			if err != nil {
				t.Fatal(err)
			}
			if len(bm.BW) != w*h/8 {
				t.Fatalf("black plane length: got %d want %d", len(bm.BW), w*h/8)
			}
			if mode == ModeL2 && len(bm.Red) != w*h/8 {
				t.Fatalf("red plane length: got %d want %d", len(bm.Red), w*h/8)
			}
			got, err := bm.Unpack()
			if err != nil {
				t.Fatal(err)
			}
			for i := range levels {
				if got[i] != levels[i] {
					t.Fatalf("level %d: got %d want %d", i, got[i], levels[i])
				}
			}
		})
	}
}

func TestPackRejectsInvalidLevels(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		w, h   int
		levels []uint8
	}{
		{"width-not-multiple-of-8", ModeL1, 10, 1, make([]uint8, 10)},
		{"length-mismatch", ModeL1, 8, 2, make([]uint8, 8)},
		{"l1-level-too-high", ModeL1, 8, 1, []uint8{0, 0, 2, 0, 0, 0, 0, 0}},
		{"l2-level-too-high", ModeL2, 8, 1, []uint8{0, 0, 4, 0, 0, 0, 0, 0}},
		{"empty", ModeL1, 0, 0, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Pack(tc.mode, tc.w, tc.h, tc.levels); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestBitmapImage(t *testing.T) {
	bm, err := Pack(ModeL2, 8, 1, []uint8{0, 1, 2, 3, 3, 2, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	img, err := bm.Image()
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{0, 85, 170, 255, 255, 170, 85, 0}
	for x, y := range want {
		r, _, _, _ := img.At(x, 0).RGBA()
		if uint8(r>>8) != y {
			t.Fatalf("pixel %d: got %d want %d", x, r>>8, y)
		}
	}
}

func TestUnpackRejectsShortPlane(t *testing.T) {
	bm := &Bitmap{Width: 16, Height: 1, BW: []byte{0}}
	if _, err := bm.Unpack(); err == nil {
		t.Fatal("expected error")
	}
}
