package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/0muji4/postkit/internal/config"
	"github.com/0muji4/postkit/internal/grammar"
	"github.com/0muji4/postkit/internal/workspace"
)

func main() {
	// GITHUB_BASE_REF / GITHUB_HEAD_REF は config 経由で反映される
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	diff := workspace.NewGitDiff(cfg.Posts.Root, cfg.Git.BaseRef, cfg.Git.HeadRef, cfg.Posts.Pattern)
	fmt.Fprintf(os.Stderr, "Comparing %s\n", diff.Range())

	runner := grammar.Runner{
		Source:     diff,
		NewChecker: grammar.LanguageToolFactory(cfg.LanguageToolOptions()),
		Reader:     workspace.NewFSReader(cfg.Posts.Root),
		Progress:   os.Stderr,
	}
	if err := runner.RunChanged(ctx, os.Stdout); err != nil {
		log.Fatalf("grammar check failed: %v", err)
	}
}
