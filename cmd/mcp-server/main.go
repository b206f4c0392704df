package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/0muji4/postkit/internal/config"
	"github.com/0muji4/postkit/internal/server"
)

func main() {
	// --- 設定の読み込み (.env, postkit.yaml, 環境変数) ---
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// --- DI: Adapter 層の組み立て ---
	handler := server.NewHandler(cfg)
	s := server.New(handler)

	// --- Framework: MCP stdio サーバーの起動 ---
	fmt.Fprintln(os.Stderr, "postkit MCP server starting...")
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
