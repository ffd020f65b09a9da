// Package report turns classification results into the console table and
// the annotated control image.
package report

import (
	"fmt"
	"io"
	"strings"

	"forest-coverage/internal/classify"
)

// NoForestMessage replaces the table when no forest pixel was found.
const NoForestMessage = "No forest identified in the image."

const tableWidth = 65

// Row is one line of the coverage table.
type Row struct {
	Label     string
	OfForest  string
	OfImage   string
	Separator bool
	Total     bool
}

var categoryLabels = map[classify.Category]string{
	classify.Pink:       "Pink (potential continuity)",
	classify.MidPurple:  "Mid-purple (nature value)",
	classify.DarkPurple: "Dark-purple (high nature value)",
}

// Rows builds the six table rows with percentages to the given number of
// decimals. Percentages with a zero denominator are shown as zero.
func Rows(r classify.Result, decimals int) []Row {
	pct := func(n int, share func(int) (float64, bool)) string {
		v, _ := share(n)
		return fmt.Sprintf("%.*f%%", decimals, v)
	}

	rows := make([]Row, 0, 6)
	for _, c := range classify.ValueCategories {
		n := r.Count(c)
		rows = append(rows, Row{
			Label:    categoryLabels[c],
			OfForest: pct(n, r.ShareOfForest),
			OfImage:  pct(n, r.ShareOfImage),
		})
	}

	forest := fmt.Sprintf("%.*f%%", decimals, 100.0)
	if !r.HasForest() {
		forest = pct(0, r.ShareOfForest)
	}

	rows = append(rows,
		Row{Separator: true},
		Row{
			Label:    "TOTAL VALUE AREA",
			OfForest: pct(r.ValueArea(), r.ShareOfForest),
			OfImage:  pct(r.ValueArea(), r.ShareOfImage),
			Total:    true,
		},
		Row{
			Label:    "TOTAL FOREST AREA",
			OfForest: forest,
			OfImage:  pct(r.ForestArea(), r.ShareOfImage),
			Total:    true,
		},
	)
	return rows
}

// WriteTable prints the coverage table for one image.
func WriteTable(w io.Writer, name string, r classify.Result) error {
	rule := strings.Repeat("-", tableWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "\nANALYSIS: %s\n", name)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%-33s %12s %18s\n", "Category", "% of forest", "% of whole image")
	fmt.Fprintln(&b, rule)

	if r.HasForest() {
		for _, row := range Rows(r, 1) {
			if row.Separator {
				fmt.Fprintln(&b, rule)
				continue
			}
			fmt.Fprintf(&b, "%-33s %12s %18s\n", row.Label, row.OfForest, row.OfImage)
		}
	} else {
		fmt.Fprintln(&b, NoForestMessage)
	}
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}
