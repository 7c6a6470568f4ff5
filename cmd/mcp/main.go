package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/resume-screener/internal/adapters/mcp"
	"github.com/kirillkom/resume-screener/internal/bootstrap"
	"github.com/kirillkom/resume-screener/internal/config"
	"github.com/kirillkom/resume-screener/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	// stdout carries the MCP protocol, so logs go to stderr.
	slog.SetDefault(logging.NewStderrLogger("mcp", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core, err := bootstrap.NewCore(ctx, cfg, bootstrap.CoreOptions{})
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	s := mcpadapter.NewServer(mcpadapter.NewTools(core.Analyzer, core.JDKeywords))
	if err := server.ServeStdio(s); err != nil {
		slog.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
