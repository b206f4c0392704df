package workspace

import "context"

// FileReader defines operations for reading documents.
type FileReader interface {
	ReadFile(path string) (string, error)
}

// DocumentSource produces the ordered list of documents to process.
type DocumentSource interface {
	Documents(ctx context.Context) ([]string, error)
}
