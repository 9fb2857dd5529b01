package epdimg

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"L1", ModeL1},
		{"l2", ModeL2},
		{"1-bit", ModeL1},
		{"2", ModeL2},
		{"", ModeL1},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMode(%q): got %s want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ParseMode("L4"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEffectiveThresholds(t *testing.T) {
	if got := (Config{}).EffectiveThresholds(); len(got) != 1 || got[0] != 63 {
		t.Fatalf("L1 default: got %v", got)
	}
	got := (Config{Mode: ModeL2}).EffectiveThresholds()
	if len(got) != 3 || got[0] != 63 || got[1] != 126 || got[2] != 189 {
		t.Fatalf("L2 default: got %v", got)
	}
	if got := (Config{Thresholds: []int{128}}).EffectiveThresholds(); len(got) != 1 || got[0] != 128 {
		t.Fatalf("explicit: got %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"zero-value", Config{}, true},
		{"l2-defaults", Config{Mode: ModeL2}, true},
		{"l1-one", Config{Thresholds: []int{200}}, true},
		{"l1-three", Config{Thresholds: []int{63, 126, 189}}, false},
		{"l2-one", Config{Mode: ModeL2, Thresholds: []int{63}}, false},
		{"l2-equal", Config{Mode: ModeL2, Thresholds: []int{10, 10, 20}}, false},
		{"l2-descending", Config{Mode: ModeL2, Thresholds: []int{30, 20, 10}}, false},
		{"out-of-range", Config{Thresholds: []int{256}}, false},
		{"negative", Config{Thresholds: []int{-1}}, false},
		{"unknown-mode", Config{Mode: "L8"}, false},
		{"width-ok", Config{TargetWidth: intPtr(10)}, true},
		{"width-zero", Config{TargetWidth: intPtr(0)}, false},
		{"height-negative", Config{TargetHeight: intPtr(-3)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
