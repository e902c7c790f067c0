package main

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/sbbwagh/gitlab-mcp/internal/config"
	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
	"github.com/sbbwagh/gitlab-mcp/internal/logging"
	"github.com/sbbwagh/gitlab-mcp/internal/monitor"
	"github.com/sbbwagh/gitlab-mcp/internal/tools"
)

const version = "1.0.0"

func main() {
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Failed to load configuration: %v", err)
	}

	if !cfg.HasToken() {
		logging.Fatal("GITLAB_PERSONAL_ACCESS_TOKEN is required")
	}

	client := gitlab.NewClient(cfg.GitLab)
	registry := tools.NewRegistry(client)

	s := server.NewMCPServer("gitlab-mcp", version,
		server.WithToolCapabilities(false),
	)
	registry.AttachAll(s)

	if cfg.MonitorEnabled() {
		mon := monitor.New(cfg, registry)
		go func() {
			if err := mon.Listen(); err != nil {
				logging.Error("Monitor server stopped: %v", err)
			}
		}()
		logging.Info("Monitor endpoint listening on port %s", cfg.Monitor.Port)
	}

	logging.Info("GitLab MCP server started", zap.String("base_url", cfg.GitLab.BaseURL))

	if err := server.ServeStdio(s); err != nil {
		logging.Fatal("Server error: %v", err)
	}
}
