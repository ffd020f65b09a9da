// Package selector lets the user choose the next image to analyse, either
// from a numbered directory listing or through a file dialog.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"forest-coverage/internal/pipeline"
)

// ErrNoImages is returned when the directory holds no selectable image.
var ErrNoImages = errors.New("no image files found")

// Kind tells a picked file apart from a cancelled prompt.
type Kind int

const (
	Cancelled Kind = iota
	Picked
)

func (k Kind) String() string {
	switch k {
	case Picked:
		return "picked"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Selection is the outcome of one prompt. Path is only set when Kind is
// Picked.
type Selection struct {
	Kind Kind
	Path string
}

// Selector asks the user for the next image.
type Selector interface {
	Select(ctx context.Context) (Selection, error)
}

// Filter decides which directory entries are offered.
type Filter struct {
	Extensions      []string
	ExcludePrefixes []string
}

// Match reports whether name has an accepted extension and is not a
// generated report.
func (f Filter) Match(name string) bool {
	for _, p := range f.ExcludePrefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return false
		}
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range f.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// ListImages returns the matching regular files of dir sorted by name.
func ListImages(dir string, f Filter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !f.Match(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Menu prints a numbered list of the images in Dir and reads the choice
// from In. Entering "q" cancels.
type Menu struct {
	Dir    string
	Filter Filter
	In     *Lines
	Out    io.Writer
}

func NewMenu(dir string, f Filter, in *Lines, out io.Writer) *Menu {
	return &Menu{Dir: dir, Filter: f, In: in, Out: out}
}

// Select lists the directory and reads one answer. Out of range and
// non-numeric answers return a *pipeline.SelectionError; an empty
// directory returns ErrNoImages; end of input counts as cancel. A cancelled
// ctx interrupts the wait for an answer.
func (m *Menu) Select(ctx context.Context) (Selection, error) {
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}

	files, err := ListImages(m.Dir, m.Filter)
	if err != nil {
		return Selection{}, err
	}
	if len(files) == 0 {
		return Selection{}, fmt.Errorf("%w in %s", ErrNoImages, m.Dir)
	}

	fmt.Fprintln(m.Out, "\n"+strings.Repeat("-", 30))
	for i, f := range files {
		fmt.Fprintf(m.Out, "[%d] %s\n", i, filepath.Base(f))
	}
	fmt.Fprint(m.Out, "\nFile number (q to quit): ")

	line, err := m.In.ReadLine(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Selection{}, ctx.Err()
		}
		if !errors.Is(err, io.EOF) {
			return Selection{}, fmt.Errorf("failed to read selection: %w", err)
		}
		if line == "" {
			return Selection{Kind: Cancelled}, nil
		}
	}

	return parseChoice(strings.TrimSpace(line), files)
}

func parseChoice(answer string, files []string) (Selection, error) {
	if strings.EqualFold(answer, "q") {
		return Selection{Kind: Cancelled}, nil
	}

	index, err := strconv.Atoi(answer)
	if err != nil {
		return Selection{}, &pipeline.SelectionError{Input: answer, Reason: "enter a number or 'q'"}
	}
	if index < 0 || index >= len(files) {
		return Selection{}, &pipeline.SelectionError{
			Input:  answer,
			Reason: fmt.Sprintf("choose 0-%d", len(files)-1),
		}
	}
	return Selection{Kind: Picked, Path: files[index]}, nil
}

// Queue hands out a fixed list of paths, then cancels. It drives batch
// runs through the same loop as the interactive menu.
type Queue struct {
	Paths []string
	next  int
}

func (q *Queue) Select(ctx context.Context) (Selection, error) {
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}
	if q.next >= len(q.Paths) {
		return Selection{Kind: Cancelled}, nil
	}
	path := q.Paths[q.next]
	q.next++
	return Selection{Kind: Picked, Path: path}, nil
}
