package classify

// Category is the class assigned to a single pixel.
type Category uint8

const (
	Unclassified Category = iota
	Pink
	MidPurple
	DarkPurple
	Green
)

// ValueCategories lists the categories that make up the value area, in
// report order.
var ValueCategories = []Category{Pink, MidPurple, DarkPurple}

func (c Category) String() string {
	switch c {
	case Pink:
		return "pink"
	case MidPurple:
		return "mid-purple"
	case DarkPurple:
		return "dark-purple"
	case Green:
		return "green"
	default:
		return "unclassified"
	}
}

// IsValue reports whether c counts towards the value area.
func (c Category) IsValue() bool {
	return c == Pink || c == MidPurple || c == DarkPurple
}

// IsForest reports whether c counts towards the forest area.
func (c Category) IsForest() bool {
	return c.IsValue() || c == Green
}
