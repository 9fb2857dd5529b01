package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	epdimg "github.com/hrntknr/epdimg-go"
	"github.com/hrntknr/epdimg-go/preview"
	"github.com/urfave/cli/v3"
)

const (
	usageMode = "output image format:\n" +
		"L1 - binary (black and white)\n" +
		"L2 - 4 level grayscale (black and red planes)"
	usageThreshold = "threshold values, one for L1 and three ascending for L2 mode (default: 63 or 63,126,189)"
	usageWidth     = "target image width; without --height the image is scaled uniformly"
	usageHeight    = "target image height; without --width the image is scaled uniformly"
)

// showPreview is replaced in tests.
var showPreview = preview.Show

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		exitf("%v", err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "epdimg",
		Usage:     "convert an image into packed e-paper bitmap data",
		ArgsUsage: "source [target]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: string(epdimg.ModeL1), Usage: usageMode},
			&cli.BoolFlag{Name: "preview", Aliases: []string{"p"}, Usage: "show image preview"},
			&cli.BoolFlag{Name: "preview-only", Usage: "show image preview and exit without saving data"},
			&cli.BoolFlag{Name: "dither", Aliases: []string{"d"}, Usage: "enable dithering"},
			&cli.IntSliceFlag{Name: "threshold", Aliases: []string{"t"}, Usage: usageThreshold},
			&cli.IntFlag{Name: "width", Usage: usageWidth},
			&cli.IntFlag{Name: "height", Usage: usageHeight},
		},
		Action: convert,
	}
}

func convert(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 || cmd.Args().Len() > 2 {
		return errors.New("usage: epdimg [options] source [target]")
	}
	source := cmd.Args().Get(0)
	target := cmd.Args().Get(1)

	cfg, err := configFromCommand(cmd)
	if err != nil {
		return err
	}

	res, err := epdimg.ConvertFile(source, cfg)
	if err != nil {
		return err
	}
	img, err := res.Preview()
	if err != nil {
		return err
	}

	if cmd.Bool("preview-only") {
		return showPreview(fmt.Sprintf("epdimg: %s", source), img)
	}

	out := epdimg.OutputPath(source, target)
	fmt.Fprintf(cmd.Writer, "Saving data to: %s\n", out)
	if err := epdimg.WriteFile(out, res.Bitmap); err != nil {
		return err
	}

	if cmd.Bool("preview") {
		return showPreview(fmt.Sprintf("epdimg: %s", out), img)
	}
	return nil
}

func configFromCommand(cmd *cli.Command) (epdimg.Config, error) {
	mode, err := epdimg.ParseMode(cmd.String("mode"))
	if err != nil {
		return epdimg.Config{}, err
	}
	cfg := epdimg.Config{
		Mode:       mode,
		Dither:     cmd.Bool("dither"),
		Thresholds: cmd.IntSlice("threshold"),
		Logger:     log.New(cmd.Writer, "", 0),
	}
	if cmd.IsSet("width") {
		w := cmd.Int("width")
		cfg.TargetWidth = &w
	}
	if cmd.IsSet("height") {
		h := cmd.Int("height")
		cfg.TargetHeight = &h
	}
	return cfg, cfg.Validate()
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
