package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"forest-coverage/internal/classify"
)

type imageLoader struct {
	logger        Logger
	timingTracker TimingTracker
}

// NewImageLoader returns an ImageSource backed by the standard library
// PNG and JPEG decoders.
func NewImageLoader(log Logger, tracker TimingTracker) ImageSource {
	return &imageLoader{logger: log, timingTracker: tracker}
}

func (l *imageLoader) Load(ctx context.Context, path string) (*ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tctx := l.timingTracker.StartTiming("load")
	defer l.timingTracker.EndTiming(tctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	l.logger.Debug("ImageLoader", "image data read", map[string]interface{}{
		"path":       path,
		"size_bytes": len(data),
	})

	return l.LoadFromBytes(path, data)
}

// LoadFromBytes decodes data that was read from path.
func (l *imageLoader) LoadFromBytes(path string, data []byte) (*ImageData, error) {
	img, stdLibFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	grid, err := classify.GridFromImage(img)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	format := determineFormat(strings.ToLower(filepath.Ext(path)), stdLibFormat)
	imageData := &ImageData{
		Image:  img,
		Grid:   grid,
		Width:  grid.Width,
		Height: grid.Height,
		Format: format,
		Path:   path,
	}

	l.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
		"file":   filepath.Base(path),
		"width":  imageData.Width,
		"height": imageData.Height,
		"format": format,
	})

	return imageData, nil
}

func determineFormat(extension, stdLibFormat string) string {
	if stdLibFormat != "" {
		return stdLibFormat
	}
	switch extension {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	default:
		return "unknown"
	}
}
