// Package conversion moves pixel data between OpenCV matrices and the
// classifier's pixel grid.
package conversion

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"forest-coverage/internal/classify"
)

// ValidateMat checks that mat holds 8-bit pixels with 1, 3 or 4 channels.
func ValidateMat(mat gocv.Mat, operation string) error {
	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}
	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("Mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}

	switch mat.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return nil
	default:
		return fmt.Errorf("unsupported Mat type %v for operation: %s", mat.Type(), operation)
	}
}

// MatToGrid converts a BGR, BGRA or grayscale Mat into a pixel grid and an
// RGBA copy usable as the report base image.
func MatToGrid(mat gocv.Mat) (*classify.PixelGrid, *image.RGBA, error) {
	if err := ValidateMat(mat, "grid conversion"); err != nil {
		return nil, nil, err
	}

	rows, cols, channels := mat.Rows(), mat.Cols(), mat.Channels()
	if !mat.IsContinuous() {
		return nil, nil, fmt.Errorf("Mat data is not continuous")
	}
	data := mat.ToBytes()
	if len(data) < rows*cols*channels {
		return nil, nil, fmt.Errorf("Mat data holds %d bytes, want %d", len(data), rows*cols*channels)
	}

	pix := make([]classify.RGB, rows*cols)
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	for i := range pix {
		px := data[i*channels : i*channels+channels]
		var r, g, b uint8
		switch channels {
		case 1:
			r, g, b = px[0], px[0], px[0]
		default:
			b, g, r = px[0], px[1], px[2]
		}
		pix[i] = classify.RGB{R: float64(r), G: float64(g), B: float64(b)}
		img.SetRGBA(i%cols, i/cols, color.RGBA{R: r, G: g, B: b, A: 255})
	}

	grid, err := classify.NewGrid(cols, rows, pix)
	if err != nil {
		return nil, nil, err
	}
	return grid, img, nil
}
