package classify

// Mask marks the pixels belonging to one category.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

func newMask(width, height int) Mask {
	return Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// At reports whether the pixel at column x, row y is set.
func (m Mask) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Count returns the number of set pixels.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Masks holds the four category masks of one run. No pixel is set in more
// than one of them.
type Masks struct {
	Pink       Mask
	MidPurple  Mask
	DarkPurple Mask
	Green      Mask
}

func newMasks(width, height int) Masks {
	return Masks{
		Pink:       newMask(width, height),
		MidPurple:  newMask(width, height),
		DarkPurple: newMask(width, height),
		Green:      newMask(width, height),
	}
}

func (m *Masks) set(i int, c Category) {
	switch c {
	case Pink:
		m.Pink.Bits[i] = true
	case MidPurple:
		m.MidPurple.Bits[i] = true
	case DarkPurple:
		m.DarkPurple.Bits[i] = true
	case Green:
		m.Green.Bits[i] = true
	}
}

// CategoryAt returns the category of the pixel at flat index i.
func (m Masks) CategoryAt(i int) Category {
	switch {
	case m.DarkPurple.Bits[i]:
		return DarkPurple
	case m.MidPurple.Bits[i]:
		return MidPurple
	case m.Pink.Bits[i]:
		return Pink
	case m.Green.Bits[i]:
		return Green
	default:
		return Unclassified
	}
}

// Result holds the pixel counts of one classification run.
type Result struct {
	Pink        int
	MidPurple   int
	DarkPurple  int
	Green       int
	TotalPixels int
}

func (r *Result) add(c Category) {
	switch c {
	case Pink:
		r.Pink++
	case MidPurple:
		r.MidPurple++
	case DarkPurple:
		r.DarkPurple++
	case Green:
		r.Green++
	}
}

func (r *Result) merge(o Result) {
	r.Pink += o.Pink
	r.MidPurple += o.MidPurple
	r.DarkPurple += o.DarkPurple
	r.Green += o.Green
}

// Count returns the number of pixels classified as c.
func (r Result) Count(c Category) int {
	switch c {
	case Pink:
		return r.Pink
	case MidPurple:
		return r.MidPurple
	case DarkPurple:
		return r.DarkPurple
	case Green:
		return r.Green
	default:
		return r.Unclassified()
	}
}

// ValueArea is the number of pink, mid-purple and dark-purple pixels.
func (r Result) ValueArea() int {
	return r.Pink + r.MidPurple + r.DarkPurple
}

// ForestArea is the value area plus the green pixels.
func (r Result) ForestArea() int {
	return r.ValueArea() + r.Green
}

// Unclassified is the number of pixels outside the forest area.
func (r Result) Unclassified() int {
	return r.TotalPixels - r.ForestArea()
}

// HasForest reports whether any pixel was recognised as forest.
func (r Result) HasForest() bool {
	return r.ForestArea() > 0
}

// ShareOfForest returns n as a percentage of the forest area. ok is false
// when no forest was found.
func (r Result) ShareOfForest(n int) (pct float64, ok bool) {
	return percent(n, r.ForestArea())
}

// ShareOfImage returns n as a percentage of all pixels. ok is false for an
// empty image.
func (r Result) ShareOfImage(n int) (pct float64, ok bool) {
	return percent(n, r.TotalPixels)
}

func percent(n, of int) (float64, bool) {
	if of <= 0 {
		return 0, false
	}
	return float64(n) / float64(of) * 100, true
}
