package functional_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/sparkmate/amptrack/internal/domain/material"
	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/domain/timesheet"
	"github.com/sparkmate/amptrack/internal/mcp"
	"github.com/sparkmate/amptrack/internal/memory"
)

// mcpSession wires the tool server to a client over in-memory transports,
// backed by a fresh in-memory store per test.
type mcpSession struct {
	session *sdkmcp.ClientSession
}

func newSession(t *testing.T) *mcpSession {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:  project.NewService(store, logger),
			Materials: material.NewService(store, logger),
			Timesheet: timesheet.NewService(store, logger),
		},
		Logger: logger,
	})

	ctx := context.Background()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
		serverSession.Close()
	})

	return &mcpSession{session: session}
}

func (s *mcpSession) callTool(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)

	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

// callToolExpectError asserts the call fails and returns the error text.
func (s *mcpSession) callToolExpectError(t *testing.T, name string, args map[string]any) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.True(t, result.IsError, "Tool %s should have returned an error", name)
	require.NotEmpty(t, result.Content)

	if textContent, ok := result.Content[0].(*sdkmcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func (s *mcpSession) createProject(t *testing.T) string {
	t.Helper()

	resp := s.callTool(t, "create_project", map[string]any{
		"name":        "Smith Rewire",
		"client_name": "J Smith",
		"start_date":  "2024-03-01",
	})
	var proj struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp, &proj))
	require.NotEmpty(t, proj.ID)
	return proj.ID
}

func TestFunctional_ProjectLifecycle(t *testing.T) {
	s := newSession(t)
	id := s.createProject(t)

	list := s.callTool(t, "list_projects", map[string]any{})
	var listed struct {
		Projects []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(list, &listed))
	require.Len(t, listed.Projects, 1)
	require.Equal(t, "Smith Rewire", listed.Projects[0].Name)

	update := s.callTool(t, "update_project", map[string]any{
		"id":     id,
		"status": "in-progress",
	})
	var updated struct {
		Status string `json:"status"`
		Name   string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(update, &updated))
	require.Equal(t, "in-progress", updated.Status)
	require.Equal(t, "Smith Rewire", updated.Name)

	deleted := s.callTool(t, "delete_project", map[string]any{"id": id})
	var delResult struct {
		Deleted bool `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(deleted, &delResult))
	require.True(t, delResult.Deleted)

	s.callToolExpectError(t, "get_project", map[string]any{"id": id})
}

func TestFunctional_MaterialsAndSummary(t *testing.T) {
	s := newSession(t)
	id := s.createProject(t)

	resp := s.callTool(t, "add_material", map[string]any{
		"project_id": id,
		"name":       "2.5mm T&E Cable",
		"quantity":   4,
		"unit_cost":  3,
	})
	var withMaterial struct {
		Materials []struct {
			ID    string  `json:"id"`
			Total float64 `json:"total"`
		} `json:"materials"`
	}
	require.NoError(t, json.Unmarshal(resp, &withMaterial))
	require.Len(t, withMaterial.Materials, 1)
	require.InDelta(t, 12.0, withMaterial.Materials[0].Total, 1e-9)

	summary := s.callTool(t, "project_summary", map[string]any{"project_id": id})
	var sum struct {
		MaterialsCost float64 `json:"materials_cost"`
		MaterialCount int     `json:"material_count"`
	}
	require.NoError(t, json.Unmarshal(summary, &sum))
	require.InDelta(t, 12.0, sum.MaterialsCost, 1e-9)
	require.Equal(t, 1, sum.MaterialCount)

	resp = s.callTool(t, "remove_material", map[string]any{
		"project_id":  id,
		"material_id": withMaterial.Materials[0].ID,
	})
	require.NoError(t, json.Unmarshal(resp, &withMaterial))
	require.Empty(t, withMaterial.Materials)
}

func TestFunctional_TimeTracking(t *testing.T) {
	s := newSession(t)
	id := s.createProject(t)

	for _, date := range []string{"2024-03-01", "2024-03-03", "2024-03-02"} {
		s.callTool(t, "log_time", map[string]any{
			"project_id":  id,
			"date":        date,
			"hours":       2,
			"description": "Work on " + date,
		})
	}

	get := s.callTool(t, "get_project", map[string]any{"id": id})
	var proj struct {
		TimeEntries []struct {
			Date string `json:"date"`
		} `json:"time_entries"`
	}
	require.NoError(t, json.Unmarshal(get, &proj))
	require.Len(t, proj.TimeEntries, 3)
	require.Equal(t, "2024-03-03", proj.TimeEntries[0].Date)
	require.Equal(t, "2024-03-02", proj.TimeEntries[1].Date)
	require.Equal(t, "2024-03-01", proj.TimeEntries[2].Date)

	// Clearing without confirmation is rejected and leaves entries intact
	s.callToolExpectError(t, "clear_time_entries", map[string]any{
		"project_id": id,
		"confirm":    false,
	})

	get = s.callTool(t, "get_project", map[string]any{"id": id})
	require.NoError(t, json.Unmarshal(get, &proj))
	require.Len(t, proj.TimeEntries, 3)

	cleared := s.callTool(t, "clear_time_entries", map[string]any{
		"project_id": id,
		"confirm":    true,
	})
	require.NoError(t, json.Unmarshal(cleared, &proj))
	require.Empty(t, proj.TimeEntries)
}

func TestFunctional_ValidationErrors(t *testing.T) {
	s := newSession(t)
	id := s.createProject(t)

	s.callToolExpectError(t, "create_project", map[string]any{
		"name":        "",
		"client_name": "J Smith",
		"start_date":  "2024-03-01",
	})

	s.callToolExpectError(t, "add_material", map[string]any{
		"project_id": id,
		"name":       "   ",
	})

	s.callToolExpectError(t, "log_time", map[string]any{
		"project_id":  id,
		"date":        "2024-03-01",
		"hours":       2,
		"description": "",
	})
}
