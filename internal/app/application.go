package app

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"forest-coverage/internal/classify"
	"forest-coverage/internal/config"
	"forest-coverage/internal/debug/timing"
	"forest-coverage/internal/logger"
	"forest-coverage/internal/pipeline"
	"forest-coverage/internal/report"
	"forest-coverage/internal/selector"
	"forest-coverage/internal/shutdown"
	"forest-coverage/internal/viewer"
)

const (
	AppName    = "Forest Coverage"
	AppID      = "se.skogsandel.forestcoverage"
	AppVersion = "1.0.0"
)

// Application wires configuration, collaborators and the optional fyne
// front end into one runnable session.
type Application struct {
	cfg         config.Config
	logger      logger.Logger
	tracker     *timing.Tracker
	coordinator *pipeline.Coordinator
	shutdown    *shutdown.Manager

	fyneApp fyne.App
	window  fyne.Window

	in  *selector.Lines
	out io.Writer
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger, in io.Reader, out io.Writer) (*Application, error) {
	profile, err := classify.ParseProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}

	palette, err := report.PaletteFromConfig(cfg.Palette)
	if err != nil {
		return nil, err
	}

	fonts, err := report.LoadFonts(cfg.Font)
	if err != nil {
		log.Warning("Application", "using embedded font", map[string]interface{}{"error": err.Error()})
	}

	tracker := timing.NewTracker()
	tracker.SetEnabled(cfg.Timings)

	var source pipeline.ImageSource
	switch cfg.Decoder {
	case config.DecoderOpenCV:
		source = pipeline.NewOpenCVLoader(log, tracker)
	default:
		source = pipeline.NewImageLoader(log, tracker)
	}

	a := &Application{
		cfg:      cfg,
		logger:   log,
		tracker:  tracker,
		shutdown: shutdown.NewManager(ctx, log),
		in:       selector.NewLines(in),
		out:      out,
	}

	var display pipeline.Displayer
	if cfg.Dialog || cfg.Display {
		a.fyneApp = fyneapp.NewWithID(AppID)
		a.window = a.fyneApp.NewWindow(AppName)
		a.window.Resize(fyne.NewSize(900, 600))
		if cfg.Display {
			display = viewer.New(a.fyneApp)
		}
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	a.coordinator = pipeline.NewCoordinator(pipeline.Options{
		Source:  source,
		Saver:   pipeline.NewImageSaver(log, tracker),
		Display: display,
		Classifier: classify.Classifier{
			Profile:   profile,
			Tolerance: cfg.Tolerance,
			Workers:   workers,
		},
		Report: report.Options{
			Palette:     palette,
			Fonts:       fonts,
			Border:      cfg.Border,
			PanelHeight: cfg.PanelHeight,
			MinWidth:    cfg.MinWidth,
		},
		OutputPrefix: cfg.OutputPrefix,
		Out:          out,
		Logger:       log,
		Timing:       tracker,
	})

	log.Info("Application", "application initialized", map[string]interface{}{
		"version": AppVersion,
		"input":   cfg.InputDir,
		"decoder": cfg.Decoder,
		"profile": profile.String(),
		"workers": workers,
		"gui":     a.fyneApp != nil,
		"num_cpu": runtime.NumCPU(),
	})

	return a, nil
}

// Run analyses files when given, otherwise runs the interactive loop. With
// a fyne front end the loop runs on its own goroutine while the GUI event
// loop owns the main goroutine.
func (a *Application) Run(files []string) error {
	a.shutdown.Listen()
	defer a.shutdown.Shutdown()

	session := a.session(files)

	if a.fyneApp == nil {
		return a.finish(session.Run(a.shutdown.Context()))
	}

	a.shutdown.Register("fyne", func() { fyne.Do(a.fyneApp.Quit) })

	result := make(chan error, 1)
	go func() {
		sum, err := session.Run(a.shutdown.Context())
		result <- a.finish(sum, err)
		fyne.Do(a.fyneApp.Quit)
	}()

	a.fyneApp.Run()
	a.shutdown.Shutdown()
	return <-result
}

func (a *Application) session(files []string) *Session {
	s := &Session{
		Analyzer: a.coordinator,
		Logger:   a.logger,
		Out:      a.out,
	}

	filter := selector.Filter{
		Extensions:      a.cfg.Extensions,
		ExcludePrefixes: append([]string{a.cfg.OutputPrefix}, a.cfg.ExcludePrefixes...),
	}

	switch {
	case len(files) > 0:
		s.Selector = &selector.Queue{Paths: files}
	case a.cfg.Dialog:
		s.Selector = &selector.Dialog{
			Window:   a.window,
			StartDir: a.cfg.InputDir,
			Filter:   filter,
			Title:    "Choose a forest image to analyse",
		}
		s.Confirm = PromptConfirm("Analyse a new image?", a.in, a.out)
	default:
		s.Selector = selector.NewMenu(a.cfg.InputDir, filter, a.in, a.out)
	}
	return s
}

func (a *Application) finish(sum Summary, err error) error {
	fields := map[string]interface{}{
		"analyzed": sum.Analyzed,
		"failed":   sum.Failed,
	}
	for op, avg := range a.tracker.Summary() {
		fields["avg_"+op+"_ms"] = avg.Milliseconds()
	}
	a.logger.Info("Application", "session finished", fields)

	if err != nil && a.shutdown.Context().Err() != nil {
		// interrupted between images
		return nil
	}
	if err != nil {
		return fmt.Errorf("session aborted: %w", err)
	}
	return nil
}
