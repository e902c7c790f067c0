package monitor

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/sbbwagh/gitlab-mcp/internal/config"
	"github.com/sbbwagh/gitlab-mcp/internal/tools"
)

// Server exposes a small HTTP endpoint for liveness checks and tool-catalog
// inspection. It carries no tool-dispatch traffic; the MCP protocol stays on
// stdio.
type Server struct {
	app      *fiber.App
	config   *config.Config
	registry *tools.Registry
}

// New creates a monitor server for the given registry
func New(cfg *config.Config, registry *tools.Registry) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		app:      app,
		config:   cfg,
		registry: registry,
	}

	app.Get("/health", s.handleHealth)
	app.Get("/tools", s.handleTools)

	return s
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":           "ok",
		"gitlab_url":       s.config.GitLab.BaseURL,
		"token_configured": s.config.HasToken(),
		"tools":            len(s.registry.List()),
	})
}

func (s *Server) handleTools(c *fiber.Ctx) error {
	type toolEntry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}

	infos := s.registry.List()
	entries := make([]toolEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, toolEntry{
			Name:        info.Name,
			Description: info.Description,
			Category:    info.Category,
		})
	}
	return c.JSON(entries)
}

// Listen serves the monitor endpoint on the configured port, blocking until
// the listener fails.
func (s *Server) Listen() error {
	return s.app.Listen(":" + s.config.Monitor.Port)
}

// App returns the underlying fiber app (used by tests)
func (s *Server) App() *fiber.App {
	return s.app
}
