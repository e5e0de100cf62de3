// Package mcp exposes the tracker's operations as assistant tools over the
// Model Context Protocol, so an assistant can look up jobs, log time and
// record materials on the user's behalf.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sparkmate/amptrack/internal/domain/material"
	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/domain/timesheet"
)

const serverInstructions = `amptrack tracks electrical jobs ("projects"): client details, status,
budget and invoicing, billable materials, and time entries. Use
list_projects to orient, get_project for full detail including derived
totals, and the mutation tools to record work. clear_time_entries is
destructive and requires confirm=true.`

// ProjectService defines project operations needed by the tool surface.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
	Update(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

// MaterialService defines material operations needed by the tool surface.
type MaterialService interface {
	Add(ctx context.Context, projectID string, req material.AddRequest) (*project.Project, error)
	Remove(ctx context.Context, projectID, materialID string) (*project.Project, error)
}

// TimesheetService defines time entry operations needed by the tool surface.
type TimesheetService interface {
	Add(ctx context.Context, projectID string, req timesheet.AddRequest) (*project.Project, error)
	Remove(ctx context.Context, projectID, entryID string) (*project.Project, error)
	Clear(ctx context.Context, projectID string) (*project.Project, error)
}

// Services contains the domain services behind the tools.
type Services struct {
	Projects  ProjectService
	Materials MaterialService
	Timesheet TimesheetService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "amptrack",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
