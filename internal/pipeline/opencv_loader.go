package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"gocv.io/x/gocv"

	"forest-coverage/internal/opencv/conversion"
)

type openCVLoader struct {
	logger        Logger
	timingTracker TimingTracker
}

// NewOpenCVLoader returns an ImageSource that decodes through OpenCV. It
// accepts every format the linked OpenCV build can read.
func NewOpenCVLoader(log Logger, tracker TimingTracker) ImageSource {
	return &openCVLoader{logger: log, timingTracker: tracker}
}

func (l *openCVLoader) Load(ctx context.Context, path string) (*ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tctx := l.timingTracker.StartTiming("load")
	defer l.timingTracker.EndTiming(tctx)

	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("OpenCV could not read image")}
	}

	grid, img, err := conversion.MatToGrid(mat)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	l.logger.Info("OpenCVLoader", "image loaded", map[string]interface{}{
		"file":     filepath.Base(path),
		"width":    grid.Width,
		"height":   grid.Height,
		"channels": mat.Channels(),
	})

	return &ImageData{
		Image:  img,
		Grid:   grid,
		Width:  grid.Width,
		Height: grid.Height,
		Format: "opencv",
		Path:   path,
	}, nil
}
