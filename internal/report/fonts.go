package report

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"forest-coverage/internal/config"
)

// Fonts holds the parsed caption typefaces. Faces are created per report
// because their size depends on the image width.
type Fonts struct {
	Regular *truetype.Font
	Bold    *truetype.Font
	MinSize int
}

// LoadFonts parses the configured TrueType files. Any face that is not
// configured, or fails to load, is replaced by the embedded Go font and the
// first load error is returned alongside the usable result.
func LoadFonts(cfg config.Font) (*Fonts, error) {
	regular, errRegular := loadFont(cfg.Regular, goregular.TTF)
	bold, errBold := loadFont(cfg.Bold, gobold.TTF)

	fonts := &Fonts{Regular: regular, Bold: bold, MinSize: cfg.MinSize}
	if fonts.MinSize <= 0 {
		fonts.MinSize = 16
	}

	if errRegular != nil {
		return fonts, errRegular
	}
	return fonts, errBold
}

// DefaultFonts returns the embedded Go fonts.
func DefaultFonts() *Fonts {
	fonts, _ := LoadFonts(config.Font{})
	return fonts
}

func loadFont(path string, fallback []byte) (*truetype.Font, error) {
	fb, err := truetype.Parse(fallback)
	if err != nil {
		panic(fmt.Sprintf("embedded font: %v", err))
	}
	if path == "" {
		return fb, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fb, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return fb, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// faces returns the table face, its bold variant for sum rows, and the
// larger bold face used for headings.
func (f *Fonts) faces(size float64) (regular, strong, heading font.Face) {
	regular = truetype.NewFace(f.Regular, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	strong = truetype.NewFace(f.Bold, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	heading = truetype.NewFace(f.Bold, &truetype.Options{Size: size + 4, DPI: 72, Hinting: font.HintingFull})
	return regular, strong, heading
}
