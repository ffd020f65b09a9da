package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"forest-coverage/internal/classify"
	"forest-coverage/internal/report"
)

// Options wires the collaborators of a Coordinator. Display may be nil.
type Options struct {
	Source       ImageSource
	Saver        ImageSaver
	Display      Displayer
	Classifier   classify.Classifier
	Report       report.Options
	OutputPrefix string
	Out          io.Writer
	Logger       Logger
	Timing       TimingTracker
}

// Coordinator runs one image at a time through decode, classification,
// table output, control image rendering and saving.
type Coordinator struct {
	opts Options
}

func NewCoordinator(opts Options) *Coordinator {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Coordinator{opts: opts}
}

// Analyze processes the image at path. The returned error is a
// *DecodeError or *RenderError for per-image failures, or the context
// error if ctx was cancelled before work started.
func (c *Coordinator) Analyze(ctx context.Context, path string) (*Analysis, error) {
	log := c.opts.Logger
	name := filepath.Base(path)

	log.Info("Coordinator", "analysing image", map[string]interface{}{"file": name})

	data, err := c.opts.Source.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	tctx := c.opts.Timing.StartTiming("classify")
	profile := c.opts.Classifier.Resolve(data.Grid)
	masks, result, err := c.opts.Classifier.Classify(data.Grid)
	c.opts.Timing.EndTiming(tctx)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	metrics := CalculateCoverageMetrics(result)
	fields := metrics.fields(result)
	fields["profile"] = profile.String()
	log.Debug("Coordinator", "image classified", fields)
	if !result.HasForest() {
		log.Warning("Coordinator", "no forest identified", map[string]interface{}{"file": name})
	}

	tctx = c.opts.Timing.StartTiming("render")
	annotated, err := report.Annotate(data.Image, masks, result, name, c.opts.Report)
	c.opts.Timing.EndTiming(tctx)
	if err != nil {
		return nil, &RenderError{Path: path, Err: err}
	}

	reportPath := report.ReportName(path, c.opts.OutputPrefix)
	if err := c.opts.Saver.SavePNG(reportPath, annotated); err != nil {
		return nil, &RenderError{Path: reportPath, Err: err}
	}

	if err := report.WriteTable(c.opts.Out, name, result); err != nil {
		return nil, &RenderError{Path: path, Err: fmt.Errorf("failed to print table: %w", err)}
	}

	if c.opts.Display != nil {
		if err := c.opts.Display.Show(ctx, filepath.Base(reportPath), annotated); err != nil {
			log.Warning("Coordinator", "could not display report", map[string]interface{}{
				"file":  filepath.Base(reportPath),
				"error": err.Error(),
			})
		}
	}

	return &Analysis{
		Source:     path,
		ReportPath: reportPath,
		Profile:    profile,
		Result:     result,
		Masks:      masks,
	}, nil
}
