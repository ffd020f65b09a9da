package classify

import "math"

// Candidate predicates. Each one is evaluated on its own; exclusivity is
// resolved in ClassifyPixel.

func isDarkPurple(p RGB) bool {
	return p.B > 80 && p.B > p.G+40 && p.B > p.R && p.R > p.G+10
}

func isMidPurple(p RGB) bool {
	return p.R > 130 && p.B > 130 && math.Abs(p.R-p.B) < 40 && p.R > p.G+60
}

func isPink(p RGB) bool {
	return p.R > 130 && p.R > p.G+40 && p.R > p.B
}

func isGreen(p RGB) bool {
	return p.G > p.R && p.G > p.B && p.G > 120
}

// ClassifyPixel resolves the candidate predicates in precedence order:
// dark-purple, mid-purple, pink, then green. Green is only considered once
// no value category has claimed the pixel.
func ClassifyPixel(p RGB) Category {
	switch {
	case isDarkPurple(p):
		return DarkPurple
	case isMidPurple(p):
		return MidPurple
	case isPink(p):
		return Pink
	case isGreen(p):
		return Green
	default:
		return Unclassified
	}
}
