package selector

import (
	"context"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"forest-coverage/internal/pipeline"
)

// Dialog opens a native-looking file picker in a fyne window. The window
// must belong to a running fyne app.
type Dialog struct {
	Window   fyne.Window
	StartDir string
	Filter   Filter
	Title    string
}

func (d *Dialog) Select(ctx context.Context) (Selection, error) {
	type outcome struct {
		sel Selection
		err error
	}
	done := make(chan outcome, 1)

	fyne.Do(func() {
		open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				done <- outcome{err: &pipeline.SelectionError{Reason: err.Error()}}
				return
			}
			if reader == nil {
				done <- outcome{sel: Selection{Kind: Cancelled}}
				return
			}
			path := reader.URI().Path()
			reader.Close()

			if !d.Filter.Match(reader.URI().Name()) {
				done <- outcome{err: &pipeline.SelectionError{
					Input:  reader.URI().Name(),
					Reason: "not a supported image file",
				}}
				return
			}
			done <- outcome{sel: Selection{Kind: Picked, Path: path}}
		}, d.Window)

		open.SetFilter(storage.NewExtensionFileFilter(d.extensions()))
		if lister := d.startLocation(); lister != nil {
			open.SetLocation(lister)
		}
		if d.Title != "" {
			d.Window.SetTitle(d.Title)
		}
		d.Window.Show()
		open.Show()
	})

	select {
	case out := <-done:
		return out.sel, out.err
	case <-ctx.Done():
		return Selection{}, ctx.Err()
	}
}

func (d *Dialog) extensions() []string {
	exts := make([]string, 0, len(d.Filter.Extensions)*2)
	for _, e := range d.Filter.Extensions {
		exts = append(exts, strings.ToLower(e), strings.ToUpper(e))
	}
	return exts
}

// startLocation falls back to the working directory when StartDir does not
// exist.
func (d *Dialog) startLocation() fyne.ListableURI {
	dir := d.StartDir
	if info, err := os.Stat(dir); dir == "" || err != nil || !info.IsDir() {
		wd, err := os.Getwd()
		if err != nil {
			return nil
		}
		dir = wd
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return lister
}
