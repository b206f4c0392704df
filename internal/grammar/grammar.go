package grammar

import "context"

const (
	// MaxIssues caps the issues reported per document.
	MaxIssues = 10
	// MaxSuggestions caps the replacements shown per issue.
	MaxSuggestions = 3
	// DefaultLanguage is the locale every document is checked against.
	DefaultLanguage = "en-US"
)

// Issue is one grammar or style match returned by the checking engine.
type Issue struct {
	// ContextOffset is a character offset into the engine's context snippet, not a line number.
	ContextOffset int
	Offset        int
	Length        int
	Message       string
	Replacements  []string
	RuleID        string
}

// Checker runs text through a grammar engine.
type Checker interface {
	Check(ctx context.Context, text string) ([]Issue, error)
	Close() error
}

// CheckerFactory constructs a Checker on demand so callers can defer it past discovery.
type CheckerFactory func() (Checker, error)
