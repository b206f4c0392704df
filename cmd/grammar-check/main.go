package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/0muji4/postkit/internal/config"
	"github.com/0muji4/postkit/internal/grammar"
	"github.com/0muji4/postkit/internal/workspace"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := grammar.Runner{
		Source:     workspace.NewGlobSource(cfg.Posts.Root, cfg.Posts.Pattern),
		NewChecker: grammar.LanguageToolFactory(cfg.LanguageToolOptions()),
		Reader:     workspace.NewFSReader(cfg.Posts.Root),
		Progress:   os.Stderr,
	}
	if err := runner.RunAll(ctx, os.Stdout); err != nil {
		log.Fatalf("grammar check failed: %v", err)
	}
}
