// Package viewer shows saved control images in a fyne window.
package viewer

import (
	"context"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/nfnt/resize"
)

const (
	DefaultMaxWidth  = 1400
	DefaultMaxHeight = 900
)

// Viewer opens one window per report. App must be running.
type Viewer struct {
	App       fyne.App
	MaxWidth  uint
	MaxHeight uint
}

func New(app fyne.App) *Viewer {
	return &Viewer{App: app, MaxWidth: DefaultMaxWidth, MaxHeight: DefaultMaxHeight}
}

// Show scales img down to fit the preview bounds and opens it in a new
// window. It returns once the window has been scheduled.
func (v *Viewer) Show(ctx context.Context, title string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	preview := Fit(img, v.MaxWidth, v.MaxHeight)
	size := preview.Bounds().Size()

	fyne.Do(func() {
		w := v.App.NewWindow(title)
		c := canvas.NewImageFromImage(preview)
		c.FillMode = canvas.ImageFillContain
		c.SetMinSize(fyne.NewSize(float32(size.X), float32(size.Y)))
		w.SetContent(c)
		w.Show()
	})
	return nil
}

// Fit returns img scaled to fit within maxWidth x maxHeight keeping its
// aspect ratio. Images that already fit are returned unchanged.
func Fit(img image.Image, maxWidth, maxHeight uint) image.Image {
	b := img.Bounds()
	if maxWidth == 0 || maxHeight == 0 {
		return img
	}
	if uint(b.Dx()) <= maxWidth && uint(b.Dy()) <= maxHeight {
		return img
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
}
