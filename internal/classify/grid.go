package classify

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidGrid is returned for pixel data that cannot be classified.
// It is never returned for a grid that simply contains no forest.
var ErrInvalidGrid = errors.New("invalid pixel grid")

// RGB holds one pixel. Channels are real-valued so differences such as R-G
// never wrap around.
type RGB struct {
	R, G, B float64
}

// PixelGrid is a row-major grid of RGB pixels. The classifier only reads it.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewGrid wraps pix as a width x height grid.
func NewGrid(width, height int, pix []RGB) (*PixelGrid, error) {
	g := &PixelGrid{Width: width, Height: height, Pix: pix}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate reports whether the grid shape matches its pixel data.
func (g *PixelGrid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidGrid, g.Width, g.Height)
	}
	if len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("%w: %dx%d grid holds %d pixels, want %d",
			ErrInvalidGrid, g.Width, g.Height, len(g.Pix), g.Width*g.Height)
	}
	return nil
}

// Len returns the number of pixels in the grid.
func (g *PixelGrid) Len() int {
	return g.Width * g.Height
}

// At returns the pixel at column x, row y.
func (g *PixelGrid) At(x, y int) RGB {
	return g.Pix[y*g.Width+x]
}

// GridFromImage converts any decoded image to a grid of 8-bit channel values.
// Alpha is ignored, matching an RGB conversion of the source.
func GridFromImage(img image.Image) (*PixelGrid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidGrid)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]RGB, 0, width*height)

	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+width*4]
			for x := 0; x < width; x++ {
				i := x * 4
				pix = append(pix, RGB{float64(row[i]), float64(row[i+1]), float64(row[i+2])})
			}
		}
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+width*4]
			for x := 0; x < width; x++ {
				i := x * 4
				pix = append(pix, RGB{float64(row[i]), float64(row[i+1]), float64(row[i+2])})
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, a := img.At(x, y).RGBA()
				r, g, b = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a)
				pix = append(pix, RGB{float64(r >> 8), float64(g >> 8), float64(b >> 8)})
			}
		}
	}

	return &PixelGrid{Width: width, Height: height, Pix: pix}, nil
}

func unpremultiply(c, a uint32) uint32 {
	if a == 0 || a == 0xffff {
		return c
	}
	return c * 0xffff / a
}

// GridFromChannels builds a grid from three flattened channel arrays.
func GridFromChannels(width, height int, r, g, b []float64) (*PixelGrid, error) {
	n := width * height
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidGrid, width, height)
	}
	if len(r) != n || len(g) != n || len(b) != n {
		return nil, fmt.Errorf("%w: channel lengths r=%d g=%d b=%d, want %d",
			ErrInvalidGrid, len(r), len(g), len(b), n)
	}

	pix := make([]RGB, n)
	for i := range pix {
		pix[i] = RGB{r[i], g[i], b[i]}
	}
	return &PixelGrid{Width: width, Height: height, Pix: pix}, nil
}

// GridFromRows builds a grid from rows of channel triples. Every row must
// have the same length and every pixel exactly three channels.
func GridFromRows(rows [][][]float64) (*PixelGrid, error) {
	height := len(rows)
	if height == 0 {
		return &PixelGrid{}, nil
	}

	width := len(rows[0])
	pix := make([]RGB, 0, width*height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidGrid, y, len(row), width)
		}
		for x, p := range row {
			if len(p) != 3 {
				return nil, fmt.Errorf("%w: pixel (%d,%d) has %d channels, want 3", ErrInvalidGrid, x, y, len(p))
			}
			pix = append(pix, RGB{p[0], p[1], p[2]})
		}
	}
	if width == 0 {
		// rows without pixels describe a grid with non-zero height but no data
		return nil, fmt.Errorf("%w: %d rows without pixels", ErrInvalidGrid, height)
	}

	return &PixelGrid{Width: width, Height: height, Pix: pix}, nil
}
