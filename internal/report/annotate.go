package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"forest-coverage/internal/classify"
)

// Options controls the layout of the control image.
type Options struct {
	Palette     Palette
	Fonts       *Fonts
	Border      int
	PanelHeight int
	MinWidth    int
}

// DefaultOptions returns the standard layout with the embedded fonts.
func DefaultOptions() Options {
	return Options{
		Palette:     DefaultPalette,
		Fonts:       DefaultFonts(),
		Border:      10,
		PanelHeight: 280,
		MinWidth:    900,
	}
}

// Recolor returns a copy of img in grayscale with every classified pixel
// painted in its palette color.
func Recolor(img image.Image, masks classify.Masks, p Palette) (*image.RGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if masks.Green.Width != w || masks.Green.Height != h {
		return nil, fmt.Errorf("mask size %dx%d does not match image %dx%d",
			masks.Green.Width, masks.Green.Height, w, h)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if c, ok := p.Color(masks.CategoryAt(i)); ok {
				out.SetRGBA(x, y, c)
				continue
			}
			l := luma(img.At(b.Min.X+x, b.Min.Y+y))
			out.SetRGBA(x, y, color.RGBA{l, l, l, 255})
		}
	}
	return out, nil
}

// luma is the ITU-R 601 luminance of c's straight (non-premultiplied) color,
// so alpha never darkens the result.
func luma(c color.Color) uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint8((299*uint32(n.R) + 587*uint32(n.G) + 114*uint32(n.B) + 500) / 1000)
}

// Annotate builds the control image: the recolored image inside a white
// border, with a caption panel holding the coverage table underneath.
func Annotate(img image.Image, masks classify.Masks, r classify.Result, name string, opts Options) (*image.RGBA, error) {
	recolored, err := Recolor(img, masks, opts.Palette)
	if err != nil {
		return nil, err
	}
	if opts.Fonts == nil {
		opts.Fonts = DefaultFonts()
	}

	w, h := recolored.Bounds().Dx(), recolored.Bounds().Dy()
	border := opts.Border

	size := max(opts.Fonts.MinSize, w/100)
	regular, strong, bold := opts.Fonts.faces(float64(size))
	defer regular.Close()
	defer strong.Close()
	defer bold.Close()

	outW := max(w+2*border, opts.MinWidth)
	panel := max(opts.PanelHeight, panelHeight(size))
	outH := h + panel + border

	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)

	origin := image.Pt((outW-w)/2, border)
	draw.Draw(out, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}, recolored, image.Point{}, draw.Src)

	col1 := 40 + border
	col2 := int(float64(outW) * 0.45)
	col3 := int(float64(outW) * 0.75)

	y := h + border + 25
	drawText(out, bold, col1, y, "Area analysis: "+name)

	y += size + 15
	drawText(out, bold, col1, y, "Category")
	if !r.HasForest() {
		y += size + 15
		drawText(out, regular, col1, y, NoForestMessage)
		return out, nil
	}
	drawText(out, bold, col2, y, "% of forest")
	drawText(out, bold, col3, y, "% of total")

	y += size + 15
	for _, row := range Rows(r, 2) {
		if row.Separator {
			drawText(out, regular, col1, y, strings.Repeat("-", 35))
			drawText(out, regular, col2, y, strings.Repeat("-", 10))
			drawText(out, regular, col3, y, strings.Repeat("-", 10))
		} else {
			face := rowFace(row, regular, strong)
			drawText(out, face, col1, y, row.Label)
			drawText(out, face, col2, y, row.OfForest)
			drawText(out, face, col3, y, row.OfImage)
		}
		y += size + 8
	}

	return out, nil
}

func rowFace(row Row, regular, strong font.Face) font.Face {
	if row.Total {
		return strong
	}
	return regular
}

// panelHeight is the space the caption needs at the given font size.
func panelHeight(size int) int {
	return 25 + 2*(size+15) + 6*(size+8) + size
}

// drawText draws s with its top edge at y.
func drawText(dst draw.Image, face font.Face, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

// ReportName returns the path of the control image for source: the same
// directory, prefix + stem + ".png".
func ReportName(source, prefix string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(source), prefix+stem+".png")
}
