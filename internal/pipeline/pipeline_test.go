package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forest-coverage/internal/classify"
	"forest-coverage/internal/debug/timing"
	"forest-coverage/internal/logger"
	"forest-coverage/internal/report"
)

func writePNG(t *testing.T, dir, name string, fill func(x, y int) color.NRGBA, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill(x, y))
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

type recordingDisplay struct {
	shown []string
	err   error
}

func (d *recordingDisplay) Show(_ context.Context, title string, _ image.Image) error {
	d.shown = append(d.shown, title)
	return d.err
}

func newTestCoordinator(out *bytes.Buffer, display Displayer) *Coordinator {
	log := logger.Nop()
	tracker := timing.NewTracker()
	return NewCoordinator(Options{
		Source:       NewImageLoader(log, tracker),
		Saver:        NewImageSaver(log, tracker),
		Display:      display,
		Classifier:   classify.Classifier{Workers: 2},
		Report:       report.DefaultOptions(),
		OutputPrefix: "Areaanalys_",
		Out:          out,
		Logger:       log,
		Timing:       tracker,
	})
}

func TestAnalyzeWritesReport(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "skog.png", func(x, y int) color.NRGBA {
		if x < 5 {
			return color.NRGBA{200, 50, 60, 255}
		}
		return color.NRGBA{30, 180, 30, 255}
	}, 10, 4)

	var out bytes.Buffer
	display := &recordingDisplay{err: errors.New("no screen")}
	a, err := newTestCoordinator(&out, display).Analyze(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, classify.Result{Pink: 20, Green: 20, TotalPixels: 40}, a.Result)
	assert.Equal(t, filepath.Join(dir, "Areaanalys_skog.png"), a.ReportPath)
	assert.Equal(t, []string{"Areaanalys_skog.png"}, display.shown)
	assert.Contains(t, out.String(), "ANALYSIS: skog.png")
	assert.Contains(t, out.String(), "50.0%")

	f, err := os.Open(a.ReportPath)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Width)
}

func TestAnalyzeOverwritesExistingReport(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "a.png", func(int, int) color.NRGBA { return color.NRGBA{A: 255} }, 3, 3)
	stale := filepath.Join(dir, "Areaanalys_a.png")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	var out bytes.Buffer
	a, err := newTestCoordinator(&out, nil).Analyze(context.Background(), src)
	require.NoError(t, err)
	assert.False(t, a.Result.HasForest())
	assert.Contains(t, out.String(), report.NoForestMessage)

	data, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("stale"), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}

func TestAnalyzeDecodeError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))

	var out bytes.Buffer
	c := newTestCoordinator(&out, nil)

	_, err := c.Analyze(context.Background(), bad)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, bad, decErr.Path)
	assert.True(t, Recoverable(err))

	_, err = c.Analyze(context.Background(), filepath.Join(dir, "missing.png"))
	require.ErrorAs(t, err, &decErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := newTestCoordinator(&out, nil).Analyze(ctx, "whatever.png")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, Recoverable(err))
}

func TestRecoverable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, true},
		{&SelectionError{Input: "9", Reason: "out of range"}, true},
		{fmt.Errorf("wrapped: %w", &DecodeError{Path: "x", Err: errors.New("bad")}), true},
		{&RenderError{Path: "x", Err: errors.New("disk full")}, true},
		{context.Canceled, false},
		{errors.New("unexpected"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Recoverable(tt.err), "%v", tt.err)
	}
}

func TestSelectionErrorMessage(t *testing.T) {
	assert.Equal(t, `invalid selection "x": not a number`, (&SelectionError{Input: "x", Reason: "not a number"}).Error())
	assert.Equal(t, "invalid selection: empty", (&SelectionError{Reason: "empty"}).Error())
}

func TestCalculateCoverageMetrics(t *testing.T) {
	m := CalculateCoverageMetrics(classify.Result{Pink: 1, Green: 2, TotalPixels: 9})
	assert.Equal(t, 33.33, m.ForestShareOfImage)
	assert.Equal(t, 33.33, m.ValueShareOfForest)
	assert.Equal(t, 11.11, m.ValueShareOfImage)
	assert.Equal(t, 6, m.Unclassified)

	assert.Equal(t, CoverageMetrics{}, CalculateCoverageMetrics(classify.Result{}))
}
