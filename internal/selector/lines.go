package selector

import (
	"bufio"
	"context"
	"io"
	"sync"
)

type line struct {
	text string
	err  error
}

// Lines reads newline-terminated answers from a terminal without tying the
// caller to the blocking read. One goroutine owns the reader for the life
// of the process; ReadLine returns as soon as ctx is done.
type Lines struct {
	r    io.Reader
	once sync.Once
	ch   chan line
}

func NewLines(r io.Reader) *Lines {
	return &Lines{r: r, ch: make(chan line)}
}

func (l *Lines) start() {
	go func() {
		br := bufio.NewReader(l.r)
		for {
			text, err := br.ReadString('\n')
			l.ch <- line{text: text, err: err}
			if err != nil {
				close(l.ch)
				return
			}
		}
	}()
}

// ReadLine returns the next line including its newline. At end of input it
// returns the unterminated remainder with io.EOF, then "" and io.EOF.
func (l *Lines) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.once.Do(l.start)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case ln, ok := <-l.ch:
		if !ok {
			return "", io.EOF
		}
		return ln.text, ln.err
	}
}
