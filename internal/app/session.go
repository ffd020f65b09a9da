package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"forest-coverage/internal/pipeline"
	"forest-coverage/internal/selector"
)

// Analyzer processes a single image.
type Analyzer interface {
	Analyze(ctx context.Context, path string) (*pipeline.Analysis, error)
}

// Summary counts the outcomes of a session.
type Summary struct {
	Analyzed int
	Failed   int
}

// Session repeatedly asks for an image and analyses it until the user
// quits, the directory runs dry or the context is cancelled. Per-image
// failures are reported and the loop continues.
type Session struct {
	Selector selector.Selector
	Analyzer Analyzer
	Logger   pipeline.Logger
	Out      io.Writer
	// Confirm, when set, is asked before every selection; false ends the
	// session.
	Confirm func(ctx context.Context) (bool, error)
}

func (s *Session) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if s.Confirm != nil {
			ok, err := s.Confirm(ctx)
			if err != nil {
				return sum, err
			}
			if !ok {
				return sum, nil
			}
		}

		sel, err := s.Selector.Select(ctx)
		switch {
		case errors.Is(err, selector.ErrNoImages):
			fmt.Fprintf(s.Out, "\n[!] %v\n", err)
			return sum, nil
		case err != nil && pipeline.Recoverable(err):
			fmt.Fprintf(s.Out, "[!] %v\n", err)
			continue
		case err != nil:
			return sum, err
		}

		if sel.Kind == selector.Cancelled {
			return sum, nil
		}

		if _, err := s.Analyzer.Analyze(ctx, sel.Path); err != nil {
			if !pipeline.Recoverable(err) {
				return sum, err
			}
			sum.Failed++
			s.Logger.Error("Session", err, map[string]interface{}{"file": sel.Path})
			fmt.Fprintf(s.Out, "[!] %v\n", err)
			continue
		}
		sum.Analyzed++
	}
}

// PromptConfirm returns a Confirm func asking question on out and reading
// a yes/no answer from in. End of input means no.
func PromptConfirm(question string, in *selector.Lines, out io.Writer) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		fmt.Fprintf(out, "\n%s (y/n): ", question)
		line, err := in.ReadLine(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "j", "ja":
			return true, nil
		default:
			return false, nil
		}
	}
}
