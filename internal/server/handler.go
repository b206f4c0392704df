package server

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/0muji4/postkit/internal/config"
	"github.com/0muji4/postkit/internal/grammar"
	"github.com/0muji4/postkit/internal/summary"
	"github.com/0muji4/postkit/internal/workspace"

	"github.com/mark3labs/mcp-go/mcp"
)

// GeneratorFactory builds the language-model backend for one summarize call.
type GeneratorFactory func(ctx context.Context) (summary.Generator, error)

// Handler は MCP リクエストを grammar / summary のユースケースに変換する Adapter です。
type Handler struct {
	cfg          *config.Config
	newChecker   grammar.CheckerFactory
	newGenerator GeneratorFactory
}

// NewHandler wires the LanguageTool and Gemini backends from cfg.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		cfg:        cfg,
		newChecker: grammar.LanguageToolFactory(cfg.LanguageToolOptions()),
		newGenerator: func(ctx context.Context) (summary.Generator, error) {
			return summary.NewGeminiGenerator(ctx, cfg.Summary.APIKey, cfg.Summary.Model)
		},
	}
}

// CheckGrammar handles the check-grammar tool.
func (h *Handler) CheckGrammar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawPath, err := req.RequireString("project_path")
	if err != nil {
		return mcp.NewToolResultError("project_path is required"), nil
	}
	// 相対パスを絶対パスに解決
	projectPath, err := filepath.Abs(rawPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid project_path: %v", err)), nil
	}
	scope := req.GetString("scope", ScopeChanged)

	runner := grammar.Runner{
		NewChecker: h.newChecker,
		Reader:     workspace.NewFSReader(projectPath),
	}

	var out bytes.Buffer
	switch scope {
	case ScopeChanged:
		runner.Source = workspace.NewGitDiff(projectPath,
			req.GetString("base_ref", h.cfg.Git.BaseRef),
			req.GetString("head_ref", h.cfg.Git.HeadRef),
			h.cfg.Posts.Pattern)
		err = runner.RunChanged(ctx, &out)
	case ScopeAll:
		runner.Source = workspace.NewGlobSource(projectPath, h.cfg.Posts.Pattern)
		err = runner.RunAll(ctx, &out)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown scope %q (want %q or %q)", scope, ScopeAll, ScopeChanged)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grammar check failed: %v", err)), nil
	}

	return mcp.NewToolResultText(out.String()), nil
}

// Summarize handles the summarize tool.
func (h *Handler) Summarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawPath, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError("file_path is required"), nil
	}
	if err := summary.ValidatePath(rawPath); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := filepath.Abs(rawPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid file_path: %v", err)), nil
	}

	gen, err := h.newGenerator(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create generator: %v", err)), nil
	}

	text, err := summary.NewSummarizer(gen, workspace.NewFSReader("")).SummarizeFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarize failed: %v", err)), nil
	}

	var out bytes.Buffer
	if err := summary.Print(&out, text); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out.String()), nil
}
