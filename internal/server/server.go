package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ScopeAll     = "all"
	ScopeChanged = "changed"
)

// New は MCP サーバーを生成し、ツールを登録して返します。
// ビジネスロジックは handler に委譲し、ここではプロトコル変換のみ行います。
func New(handler *Handler) *server.MCPServer {
	s := server.NewMCPServer(
		"postkit",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	grammarTool := mcp.NewTool("check-grammar",
		mcp.WithDescription("Checks markdown posts with LanguageTool (en-US) and lists up to 10 issues per file."),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path of the repository that contains the posts directory"),
		),
		mcp.WithString("scope",
			mcp.Description("\"changed\" checks posts that differ between base_ref and head_ref; \"all\" checks every post. Default: changed"),
			mcp.Enum(ScopeChanged, ScopeAll),
		),
		mcp.WithString("base_ref",
			mcp.Description("Base git ref for scope=changed. Default: origin/main"),
		),
		mcp.WithString("head_ref",
			mcp.Description("Head git ref for scope=changed. Default: HEAD"),
		),
	)

	summarizeTool := mcp.NewTool("summarize",
		mcp.WithDescription("Summarizes a .md or .txt file with Gemini as a short LinkedIn-style post."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the .md or .txt file to summarize"),
		),
	)

	s.AddTool(grammarTool, handler.CheckGrammar)
	s.AddTool(summarizeTool, handler.Summarize)

	return s
}
