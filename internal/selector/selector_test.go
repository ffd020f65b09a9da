package selector

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forest-coverage/internal/pipeline"
)

var testFilter = Filter{
	Extensions:      []string{".png", ".jpg", ".jpeg"},
	ExcludePrefixes: []string{"Areaanalys_", "KONTROLL_"},
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.JPG", "a.png", "notes.txt", "Areaanalys_a.png", "KONTROLL_b.png", "c.jpeg")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	files, err := ListImages(dir, testFilter)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.JPG"),
		filepath.Join(dir, "c.jpeg"),
	}, files)

	_, err = ListImages(filepath.Join(dir, "missing"), testFilter)
	assert.Error(t, err)
}

func TestMenuSelect(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png", "b.png")

	tests := []struct {
		name    string
		input   string
		want    Selection
		wantErr bool
	}{
		{"pick first", "0\n", Selection{Kind: Picked, Path: filepath.Join(dir, "a.png")}, false},
		{"pick without newline", "1", Selection{Kind: Picked, Path: filepath.Join(dir, "b.png")}, false},
		{"quit", "q\n", Selection{Kind: Cancelled}, false},
		{"quit upper", " Q \n", Selection{Kind: Cancelled}, false},
		{"end of input", "", Selection{Kind: Cancelled}, false},
		{"out of range", "2\n", Selection{}, true},
		{"negative", "-1\n", Selection{}, true},
		{"not a number", "two\n", Selection{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			m := NewMenu(dir, testFilter, NewLines(strings.NewReader(tt.input)), &out)

			got, err := m.Select(context.Background())
			if tt.wantErr {
				var selErr *pipeline.SelectionError
				require.ErrorAs(t, err, &selErr)
				assert.True(t, pipeline.Recoverable(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "[1] b.png")
		})
	}
}

func TestMenuEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Areaanalys_a.png")

	var out bytes.Buffer
	_, err := NewMenu(dir, testFilter, NewLines(strings.NewReader("0\n")), &out).Select(context.Background())
	assert.True(t, errors.Is(err, ErrNoImages))
}

func TestMenuCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := NewMenu(t.TempDir(), testFilter, NewLines(strings.NewReader("0\n")), &out).Select(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMenuCancelWhileWaiting(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	m := NewMenu(dir, testFilter, NewLines(pr), &bytes.Buffer{})

	done := make(chan error, 1)
	go func() {
		_, err := m.Select(ctx)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Select did not return after cancel")
	}
}

func TestLinesSurviveCancelledRead(t *testing.T) {
	pr, pw := io.Pipe()
	lines := NewLines(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := lines.ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the pending line is delivered to the next reader
	go func() {
		pw.Write([]byte("3\n"))
		pw.Close()
	}()
	got, err := lines.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3\n", got)

	_, err = lines.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	_, err = lines.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestFilterMatch(t *testing.T) {
	assert.True(t, testFilter.Match("skog.PNG"))
	assert.False(t, testFilter.Match("skog.gif"))
	assert.False(t, testFilter.Match("KONTROLL_skog.png"))
	assert.False(t, Filter{}.Match("skog.png"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "picked", Picked.String())
	assert.Equal(t, "cancelled", Cancelled.String())
}

func TestQueue(t *testing.T) {
	q := &Queue{Paths: []string{"a.png", "b.png"}}
	ctx := context.Background()

	for _, want := range []string{"a.png", "b.png"} {
		sel, err := q.Select(ctx)
		require.NoError(t, err)
		assert.Equal(t, Selection{Kind: Picked, Path: want}, sel)
	}
	sel, err := q.Select(ctx)
	require.NoError(t, err)
	assert.Equal(t, Cancelled, sel.Kind)
}
