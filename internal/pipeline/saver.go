package pipeline

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

type imageSaver struct {
	logger        Logger
	timingTracker TimingTracker
}

// NewImageSaver returns an ImageSaver writing PNG files.
func NewImageSaver(log Logger, tracker TimingTracker) ImageSaver {
	return &imageSaver{logger: log, timingTracker: tracker}
}

// SavePNG writes img to path, replacing any existing file. The PNG is
// encoded into a temporary file next to path and renamed over it.
func (s *imageSaver) SavePNG(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("no image data to save")
	}

	ctx := s.timingTracker.StartTiming("save")
	defer s.timingTracker.EndTiming(ctx)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.png")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		s.logger.Error("ImageSaver", err, map[string]interface{}{"path": path})
		return fmt.Errorf("failed to encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	b := img.Bounds()
	s.logger.Info("ImageSaver", "report saved", map[string]interface{}{
		"file":   filepath.Base(path),
		"width":  b.Dx(),
		"height": b.Dy(),
	})
	return nil
}
