package grammar

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/0muji4/postkit/internal/workspace"
)

// Runner wires a document source, a checker factory and a reader into one reporting pass.
type Runner struct {
	Source     workspace.DocumentSource
	NewChecker CheckerFactory
	Reader     workspace.FileReader
	Progress   io.Writer
}

// RunChanged reports on changed documents, printing as it goes.
// With no changed documents it prints NoChangesMessage and never builds a checker.
func (r Runner) RunChanged(ctx context.Context, w io.Writer) error {
	paths, err := r.Source.Documents(ctx)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		_, err := fmt.Fprintln(w, NoChangesMessage)
		return err
	}

	return r.withAnalyzer(func(a *Analyzer) error {
		return Stream(ctx, w, a, paths)
	})
}

// RunAll reports on every document, buffering output until the pass completes.
func (r Runner) RunAll(ctx context.Context, w io.Writer) error {
	paths, err := r.Source.Documents(ctx)
	if err != nil {
		return err
	}

	var lines []string
	if len(paths) > 0 {
		err = r.withAnalyzer(func(a *Analyzer) error {
			var cerr error
			lines, cerr = Collect(ctx, a, paths)
			return cerr
		})
		if err != nil {
			return err
		}
	}
	return PrintCollected(w, lines)
}

func (r Runner) withAnalyzer(fn func(*Analyzer) error) (err error) {
	checker, err := r.NewChecker()
	if err != nil {
		return fmt.Errorf("grammar: create checker: %w", err)
	}
	defer func() {
		if cerr := checker.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("grammar: close checker: %w", cerr))
		}
	}()

	return fn(NewAnalyzer(checker, r.Reader).WithProgress(r.Progress))
}
