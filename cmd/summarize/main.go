package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/0muji4/postkit/internal/config"
	"github.com/0muji4/postkit/internal/summary"
	"github.com/0muji4/postkit/internal/workspace"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: summarize <filepath>")
		fmt.Fprintln(os.Stderr, "Summarizes a .md or .txt file as a short LinkedIn post.")
		os.Exit(2)
	}
	path := os.Args[1]

	if err := summary.ValidatePath(path); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	gen, err := summary.NewGeminiGenerator(ctx, cfg.Summary.APIKey, cfg.Summary.Model)
	if err != nil {
		log.Fatal(err)
	}

	text, err := summary.NewSummarizer(gen, workspace.NewFSReader("")).SummarizeFile(ctx, path)
	if err != nil {
		log.Fatal(err)
	}
	if err := summary.Print(os.Stdout, text); err != nil {
		log.Fatal(err)
	}
}
