package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var _ FileReader = (*FSReader)(nil)

// FSReader reads files from the local filesystem.
// An empty rootPath disables the root check and reads paths as given.
type FSReader struct {
	rootPath string
}

func NewFSReader(rootPath string) *FSReader {
	if rootPath != "" {
		if abs, err := filepath.Abs(rootPath); err == nil {
			rootPath = abs
		}
	}
	return &FSReader{rootPath: rootPath}
}

func (r *FSReader) ReadFile(path string) (string, error) {
	if r.rootPath == "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	absPath := path
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(r.rootPath, path)
	}
	absPath = filepath.Clean(absPath)

	// パストラバーサル防止
	rel, err := filepath.Rel(r.rootPath, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside project root", path)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var _ DocumentSource = (*GlobSource)(nil)

// GlobSource lists every file under Root matching Pattern, e.g. "posts/*.md".
type GlobSource struct {
	Root    string
	Pattern string
}

func NewGlobSource(root, pattern string) *GlobSource {
	return &GlobSource{Root: root, Pattern: pattern}
}

// Documents returns matching paths relative to Root, sorted lexically.
func (g *GlobSource) Documents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(g.Root, g.Pattern))
	if err != nil {
		return nil, fmt.Errorf("workspace: glob %q: %w", g.Pattern, err)
	}

	var docs []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if rel, err := filepath.Rel(g.Root, m); err == nil {
			m = rel
		}
		docs = append(docs, filepath.ToSlash(m))
	}
	sort.Strings(docs)
	return docs, nil
}
