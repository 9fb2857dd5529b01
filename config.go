package epdimg

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInput         = errors.New("invalid input")
)

// Mode identifies the output bit depth.
type Mode string

const (
	ModeL1 Mode = "L1" // binary, one plane
	ModeL2 Mode = "L2" // 4 level grayscale, black and red planes
)

// DefaultThresholds is shared by both modes. L1 only uses the first value.
var DefaultThresholds = []int{63, 126, 189}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "l1", "1", "1-bit", "1bit":
		return ModeL1, nil
	case "l2", "2", "2-bit", "2bit":
		return ModeL2, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

func (m Mode) BitsPerPixel() int {
	if m == ModeL2 {
		return 2
	}
	return 1
}

func (m Mode) Levels() int {
	return 1 << m.BitsPerPixel()
}

// ThresholdCount is the number of cut values the mode requires.
func (m Mode) ThresholdCount() int {
	return m.Levels() - 1
}

func (m Mode) valid() bool {
	return m == ModeL1 || m == ModeL2
}

// Config carries every option of one conversion. The zero value converts in
// L1 mode with default thresholds and no resize.
type Config struct {
	Mode       Mode
	Dither     bool
	Thresholds []int

	// TargetWidth and TargetHeight are nil when not requested. When only one
	// is set the other is derived from the aspect ratio.
	TargetWidth  *int
	TargetHeight *int

	// Logger receives scaling and padding notices. Nil discards them.
	Logger *log.Logger
}

func (c Config) mode() Mode {
	if c.Mode == "" {
		return ModeL1
	}
	return c.Mode
}

// EffectiveThresholds returns the thresholds applied for the configured mode.
func (c Config) EffectiveThresholds() []int {
	if len(c.Thresholds) > 0 {
		return c.Thresholds
	}
	return DefaultThresholds[:c.mode().ThresholdCount()]
}

func (c Config) Validate() error {
	mode := c.mode()
	if !mode.valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if err := validateThresholds(mode, c.EffectiveThresholds()); err != nil {
		return err
	}
	if c.TargetWidth != nil && *c.TargetWidth <= 0 {
		return fmt.Errorf("%w: target width must be > 0: %d", ErrInvalidConfig, *c.TargetWidth)
	}
	if c.TargetHeight != nil && *c.TargetHeight <= 0 {
		return fmt.Errorf("%w: target height must be > 0: %d", ErrInvalidConfig, *c.TargetHeight)
	}
	return nil
}

func validateThresholds(mode Mode, thresholds []int) error {
	if want := mode.ThresholdCount(); len(thresholds) != want {
		return fmt.Errorf("%w: %s mode requires %d threshold value(s), got %d", ErrInvalidConfig, mode, want, len(thresholds))
	}
	for i, t := range thresholds {
		if t < 0 || t > 255 {
			return fmt.Errorf("%w: threshold %d out of range 0..255: %d", ErrInvalidConfig, i, t)
		}
		if i > 0 && t <= thresholds[i-1] {
			return fmt.Errorf("%w: thresholds must be strictly ascending: %v", ErrInvalidConfig, thresholds)
		}
	}
	return nil
}

func (c Config) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
