package grammar

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/0muji4/postkit/internal/workspace"
)

const (
	NoChangesMessage = "✅ No changed markdown files to check."
	NoIssuesMessage  = "✅ No major grammar issues found."
)

// Report holds the capped issues found in one document.
type Report struct {
	Path   string
	Issues []Issue
}

// Lines renders the report. A report without issues renders nothing.
func (r Report) Lines() []string {
	if len(r.Issues) == 0 {
		return nil
	}
	lines := make([]string, 0, len(r.Issues)+1)
	lines = append(lines, fmt.Sprintf("--- Issues in %s ---", r.Path))
	for _, issue := range r.Issues {
		lines = append(lines, FormatIssue(issue))
	}
	return lines
}

// FormatIssue renders one issue line. "Line" carries the context offset.
func FormatIssue(issue Issue) string {
	suggestions := issue.Replacements
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return fmt.Sprintf("Line %d: %s (suggestion: %s)",
		issue.ContextOffset, issue.Message, strings.Join(suggestions, ", "))
}

// Analyzer reads documents and runs them through a Checker.
type Analyzer struct {
	checker  Checker
	reader   workspace.FileReader
	progress io.Writer
}

// NewAnalyzer は Checker と FileReader から Analyzer を生成します。
func NewAnalyzer(checker Checker, reader workspace.FileReader) *Analyzer {
	return &Analyzer{checker: checker, reader: reader, progress: io.Discard}
}

// WithProgress sets where per-document progress lines go.
func (a *Analyzer) WithProgress(w io.Writer) *Analyzer {
	if w == nil {
		w = io.Discard
	}
	a.progress = w
	return a
}

// Analyze reads path and returns at most MaxIssues issues in engine order.
func (a *Analyzer) Analyze(ctx context.Context, path string) (Report, error) {
	fmt.Fprintf(a.progress, "  Checking %s\n", path)

	text, err := a.reader.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("grammar: read %s: %w", path, err)
	}

	issues, err := a.checker.Check(ctx, text)
	if err != nil {
		return Report{}, fmt.Errorf("grammar: check %s: %w", path, err)
	}
	if len(issues) > MaxIssues {
		issues = issues[:MaxIssues]
	}
	return Report{Path: path, Issues: issues}, nil
}

// Stream analyzes paths in order and writes each report as soon as it is ready.
func Stream(ctx context.Context, w io.Writer, a *Analyzer, paths []string) error {
	for _, path := range paths {
		report, err := a.Analyze(ctx, path)
		if err != nil {
			return err
		}
		for _, line := range report.Lines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Collect analyzes paths in order and buffers every rendered line.
func Collect(ctx context.Context, a *Analyzer, paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		report, err := a.Analyze(ctx, path)
		if err != nil {
			return nil, err
		}
		out = append(out, report.Lines()...)
	}
	return out, nil
}

// PrintCollected writes buffered lines, or the all-clear message when there are none.
func PrintCollected(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, NoIssuesMessage)
		return err
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
