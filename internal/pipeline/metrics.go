package pipeline

import (
	"math"

	"forest-coverage/internal/classify"
)

// CoverageMetrics summarises a result for logging and batch summaries.
type CoverageMetrics struct {
	ForestShareOfImage float64 // forest pixels / all pixels, percent
	ValueShareOfForest float64 // value pixels / forest pixels, percent
	ValueShareOfImage  float64 // value pixels / all pixels, percent
	Unclassified       int
}

// CalculateCoverageMetrics derives the headline percentages of r. Shares
// with a zero denominator are zero.
func CalculateCoverageMetrics(r classify.Result) CoverageMetrics {
	forest, _ := r.ShareOfImage(r.ForestArea())
	valueForest, _ := r.ShareOfForest(r.ValueArea())
	valueImage, _ := r.ShareOfImage(r.ValueArea())

	return CoverageMetrics{
		ForestShareOfImage: round2(forest),
		ValueShareOfForest: round2(valueForest),
		ValueShareOfImage:  round2(valueImage),
		Unclassified:       r.Unclassified(),
	}
}

func (m CoverageMetrics) fields(r classify.Result) map[string]interface{} {
	return map[string]interface{}{
		"pink":            r.Pink,
		"mid_purple":      r.MidPurple,
		"dark_purple":     r.DarkPurple,
		"green":           r.Green,
		"total_pixels":    r.TotalPixels,
		"unclassified":    m.Unclassified,
		"forest_pct":      m.ForestShareOfImage,
		"value_of_forest": m.ValueShareOfForest,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
