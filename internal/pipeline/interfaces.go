package pipeline

import (
	"context"
	"image"

	"forest-coverage/internal/classify"
)

// ImageSource decodes an image file into a pixel grid.
type ImageSource interface {
	Load(ctx context.Context, path string) (*ImageData, error)
}

// ImageSaver writes a rendered report to disk.
type ImageSaver interface {
	SavePNG(path string, img image.Image) error
}

// Displayer shows a saved report to the user.
type Displayer interface {
	Show(ctx context.Context, title string, img image.Image) error
}

// ImageData is a decoded source image together with its pixel grid.
type ImageData struct {
	Image  image.Image
	Grid   *classify.PixelGrid
	Width  int
	Height int
	Format string
	Path   string
}

// Analysis is the outcome of one analysed image.
type Analysis struct {
	Source     string
	ReportPath string
	Profile    classify.Profile
	Result     classify.Result
	Masks      classify.Masks
}
