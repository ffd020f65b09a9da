package classify

import (
	"fmt"
	"math"
	"runtime"
	"sync"
)

// Profile selects the per-pixel rule set.
type Profile int

const (
	// ProfileThreshold uses the fixed channel thresholds of ClassifyPixel.
	ProfileThreshold Profile = iota
	// ProfileReference assigns each pixel to the nearest reference color
	// within a tolerance. Suited to washed-out, low contrast screenshots.
	ProfileReference
	// ProfileAuto picks one of the above from the grid's color spread.
	ProfileAuto
)

const (
	// DefaultTolerance is the reference-profile match distance.
	DefaultTolerance = 20.0

	autoSampleStep   = 40
	autoSpreadCutoff = 45.0

	lumaMin = 15.0
	lumaMax = 245.0
)

func (p Profile) String() string {
	switch p {
	case ProfileThreshold:
		return "threshold"
	case ProfileReference:
		return "reference"
	case ProfileAuto:
		return "auto"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// ParseProfile maps a configuration name to a Profile.
func ParseProfile(name string) (Profile, error) {
	switch name {
	case "", "threshold", "high":
		return ProfileThreshold, nil
	case "reference", "low":
		return ProfileReference, nil
	case "auto":
		return ProfileAuto, nil
	default:
		return 0, fmt.Errorf("unknown classification profile %q", name)
	}
}

type reference struct {
	category Category
	color    RGB
}

// Ties go to the earlier entry.
var references = []reference{
	{Pink, RGB{85, 62, 62}},
	{MidPurple, RGB{73, 55, 67}},
	{DarkPurple, RGB{58, 51, 58}},
	{Green, RGB{82, 93, 72}},
}

// ClassifyReference assigns p to the closest reference color, or leaves it
// unclassified when it is near black or white or farther than tolerance
// from every reference.
func ClassifyReference(p RGB, tolerance float64) Category {
	lum := 0.2126*p.R + 0.7152*p.G + 0.0722*p.B
	if lum < lumaMin || lum > lumaMax {
		return Unclassified
	}

	best, bestDist := Unclassified, math.Inf(1)
	for _, ref := range references {
		dr, dg, db := p.R-ref.color.R, p.G-ref.color.G, p.B-ref.color.B
		d := math.Sqrt(dr*dr + dg*dg + db*db)
		if d < bestDist {
			best, bestDist = ref.category, d
		}
	}
	if bestDist > tolerance {
		return Unclassified
	}
	return best
}

// DetectProfile samples every 40th pixel and returns ProfileThreshold when
// the mean spread between the strongest and weakest channel exceeds 45.
func DetectProfile(g *PixelGrid) Profile {
	var samples int
	var spread float64
	for i := 0; i < len(g.Pix); i += autoSampleStep {
		p := g.Pix[i]
		spread += math.Max(p.R, math.Max(p.G, p.B)) - math.Min(p.R, math.Min(p.G, p.B))
		samples++
	}
	if samples == 0 {
		return ProfileThreshold
	}
	if spread/float64(samples) > autoSpreadCutoff {
		return ProfileThreshold
	}
	return ProfileReference
}

// Classifier classifies pixel grids. The zero value uses the threshold
// profile on a single goroutine.
type Classifier struct {
	Profile   Profile
	Tolerance float64
	Workers   int
}

// Resolve returns the concrete profile used for g.
func (c Classifier) Resolve(g *PixelGrid) Profile {
	if c.Profile == ProfileAuto {
		return DetectProfile(g)
	}
	return c.Profile
}

// Classify validates g and returns its category masks and counts.
func (c Classifier) Classify(g *PixelGrid) (Masks, Result, error) {
	if err := g.Validate(); err != nil {
		return Masks{}, Result{}, err
	}

	rule := ClassifyPixel
	if c.Resolve(g) == ProfileReference {
		tol := c.Tolerance
		if tol <= 0 {
			tol = DefaultTolerance
		}
		rule = func(p RGB) Category { return ClassifyReference(p, tol) }
	}

	workers := c.Workers
	if workers < 0 {
		workers = runtime.NumCPU()
	}
	return run(g, rule, workers)
}

// Classify runs the threshold profile sequentially.
func Classify(g *PixelGrid) (Masks, Result, error) {
	return Classifier{}.Classify(g)
}

// ClassifyParallel runs the threshold profile with rows split across
// workers goroutines. The result is identical to Classify.
func ClassifyParallel(g *PixelGrid, workers int) (Masks, Result, error) {
	return Classifier{Workers: workers}.Classify(g)
}

func run(g *PixelGrid, rule func(RGB) Category, workers int) (Masks, Result, error) {
	masks := newMasks(g.Width, g.Height)
	result := Result{TotalPixels: g.Len()}

	if workers > g.Height {
		workers = g.Height
	}
	if workers <= 1 {
		result.merge(scan(g, rule, &masks, 0, g.Height))
		return masks, result, nil
	}

	// Each worker owns a disjoint band of rows, so mask writes never overlap.
	partials := make([]Result, workers)
	rowsPer := (g.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * rowsPer
		end := min(start+rowsPer, g.Height)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			partials[w] = scan(g, rule, &masks, start, end)
		}(w, start, end)
	}
	wg.Wait()

	for _, p := range partials {
		result.merge(p)
	}
	return masks, result, nil
}

func scan(g *PixelGrid, rule func(RGB) Category, masks *Masks, rowStart, rowEnd int) Result {
	var r Result
	for i := rowStart * g.Width; i < rowEnd*g.Width; i++ {
		c := rule(g.Pix[i])
		masks.set(i, c)
		r.add(c)
	}
	return r
}
