// Package preview shows converted bitmaps in a desktop window.
package preview

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

const (
	minWidth  = 200
	minHeight = 200
)

// Show opens a window with img scaled to fit and blocks until the window is
// closed or Escape is pressed. It must be called from the main goroutine.
func Show(title string, img image.Image) error {
	var showErr error
	driver.Main(func(s screen.Screen) {
		showErr = run(s, title, img)
	})
	return showErr
}

func run(s screen.Screen, title string, img image.Image) error {
	winSize := initialSize(img.Bounds())
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Title:  title,
		Width:  winSize.X,
		Height: winSize.Y,
	})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	buf, err := s.NewBuffer(winSize)
	if err != nil {
		return fmt.Errorf("new buffer: %w", err)
	}
	defer func() { buf.Release() }()
	render(buf.RGBA(), img)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}

		case key.Event:
			if e.Code == key.CodeEscape {
				return nil
			}

		case size.Event:
			// zero sized buffers are rejected by the driver
			sz := image.Point{X: max(e.WidthPx, 1), Y: max(e.HeightPx, 1)}
			buf.Release()
			buf, err = s.NewBuffer(sz)
			if err != nil {
				return fmt.Errorf("resize buffer: %w", err)
			}
			render(buf.RGBA(), img)
			w.Send(paint.Event{})

		case paint.Event:
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		}
	}
}

func initialSize(b image.Rectangle) image.Point {
	return image.Point{X: max(b.Dx(), minWidth), Y: max(b.Dy(), minHeight)}
}

// render paints img on white, scaled with nearest neighbour so single panel
// pixels stay sharp.
func render(dst *image.RGBA, img image.Image) {
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	xdraw.NearestNeighbor.Scale(dst, Fit(img.Bounds(), dst.Bounds()), img, img.Bounds(), draw.Src, nil)
}

// Fit returns the largest rectangle inside dst with the aspect ratio of src,
// using an integer scale factor when src is smaller than dst.
func Fit(src, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	dw, dh := dst.Dx(), dst.Dy()
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return image.Rectangle{Min: dst.Min, Max: dst.Min}
	}

	var w, h int
	if k := min(dw/sw, dh/sh); k >= 1 {
		w, h = sw*k, sh*k
	} else if sw*dh > sh*dw {
		w, h = dw, max(sh*dw/sw, 1)
	} else {
		w, h = max(sw*dh/sh, 1), dh
	}
	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}
