package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client check-grammar <project_path> [all|changed]")
		fmt.Fprintln(os.Stderr, "       mcp-client summarize <file_path>")
		os.Exit(1)
	}

	toolName := os.Args[1]
	var args map[string]any
	switch toolName {
	case "check-grammar":
		scope := "changed"
		if len(os.Args) >= 4 {
			scope = os.Args[3]
		}
		args = map[string]any{
			"project_path": os.Args[2],
			"scope":        scope,
		}
	case "summarize":
		args = map[string]any{"file_path": os.Args[2]}
	default:
		fmt.Fprintf(os.Stderr, "unknown tool %q\n", toolName)
		os.Exit(1)
	}

	serverBin := os.Getenv("MCP_SERVER_BIN")
	if serverBin == "" {
		serverBin = "mcp-server"
	}

	// --- MCP クライアントの起動（サーバープロセスを spawn） ---
	c, err := client.NewStdioMCPClient(
		serverBin,
		os.Environ(),
	)
	if err != nil {
		log.Fatalf("failed to create MCP client: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// --- Initialize ハンドシェイク ---
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "postkit-client",
		Version: "0.1.0",
	}

	initResult, err := c.Initialize(ctx, initReq)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Connected to: %s %s\n", initResult.ServerInfo.Name, initResult.ServerInfo.Version)

	// --- ツールの呼び出し ---
	toolReq := mcp.CallToolRequest{}
	toolReq.Params.Name = toolName
	toolReq.Params.Arguments = args

	fmt.Fprintf(os.Stderr, "Calling %s...\n", toolName)

	result, err := c.CallTool(ctx, toolReq)
	if err != nil {
		log.Fatalf("tool call failed: %v", err)
	}

	if result.IsError {
		fmt.Fprintf(os.Stderr, "%s failed:\n", toolName)
	}

	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			fmt.Print(tc.Text)
		}
	}
}
