package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/0muji4/postkit/internal/workspace"
)

// Instruction is prepended to every document sent for summarization.
const Instruction = "Summarize the following text in a concise manner. " +
	"Focus on the main points and avoid unnecessary details. " +
	"This is going to be used as a post for LinkedIn."

// EligibleFormats lists the file extensions the summarizer accepts.
var EligibleFormats = []string{".md", ".txt"}

// ErrUnsupportedFormat is returned for paths outside EligibleFormats.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Generator sends a prompt to a language model and returns its text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer turns one local document into a short social-post summary.
type Summarizer struct {
	gen    Generator
	reader workspace.FileReader
}

func NewSummarizer(gen Generator, reader workspace.FileReader) *Summarizer {
	return &Summarizer{gen: gen, reader: reader}
}

// ValidatePath checks the extension without touching the filesystem.
func ValidatePath(path string) error {
	for _, ext := range EligibleFormats {
		if strings.HasSuffix(path, ext) {
			return nil
		}
	}
	return fmt.Errorf("%w %q: supported formats are %s", ErrUnsupportedFormat, path, strings.Join(EligibleFormats, ", "))
}

// BuildPrompt joins the fixed instruction and the document text.
func BuildPrompt(text string) string {
	return Instruction + "\n\ntext: " + text
}

// SummarizeFile validates path, reads it, and returns the model's reply verbatim.
func (s *Summarizer) SummarizeFile(ctx context.Context, path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	text, err := s.reader.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("summary: read %s: %w", path, err)
	}

	out, err := s.gen.Generate(ctx, BuildPrompt(text))
	if err != nil {
		return "", fmt.Errorf("summary: generate: %w", err)
	}
	return out, nil
}

// Print writes the summary under its label.
func Print(w io.Writer, summary string) error {
	_, err := fmt.Fprintf(w, "Summary: \n %s\n", summary)
	return err
}
