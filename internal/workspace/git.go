package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	DefaultBaseRef = "origin/main"
	DefaultHeadRef = "HEAD"
)

var _ DocumentSource = (*GitDiff)(nil)

// GitDiff lists the files that differ between two refs of a local git repository.
type GitDiff struct {
	rootPath string
	baseRef  string
	headRef  string
	pathspec string
}

// NewGitDiff returns a GitDiff for base...head limited to pathspec.
// Empty refs fall back to origin/main and HEAD. Refs are passed to git unchecked.
func NewGitDiff(rootPath, baseRef, headRef, pathspec string) *GitDiff {
	if baseRef == "" {
		baseRef = DefaultBaseRef
	}
	if headRef == "" {
		headRef = DefaultHeadRef
	}
	return &GitDiff{
		rootPath: rootPath,
		baseRef:  baseRef,
		headRef:  headRef,
		pathspec: pathspec,
	}
}

// Range returns the revision range handed to git diff.
func (g *GitDiff) Range() string {
	return g.baseRef + "..." + g.headRef
}

// Documents runs git diff --name-only and returns the changed paths in git's order.
// Paths are relative to rootPath, and "*" in the pathspec stops at "/" like filepath.Glob.
func (g *GitDiff) Documents(ctx context.Context) ([]string, error) {
	args := []string{"diff", "--name-only", "--relative", g.Range()}
	if g.pathspec != "" {
		args = append(args, "--", ":(glob)"+g.pathspec)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.rootPath

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return nil, fmt.Errorf("workspace: git diff %s: %w: %s", g.Range(), err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("workspace: git diff %s: %w", g.Range(), err)
	}
	return splitLines(out), nil
}

func splitLines(out []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}
