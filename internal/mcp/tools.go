package mcp

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sparkmate/amptrack/internal/domain/material"
	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/domain/timesheet"
)

func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project for a job or engagement",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Projects.Create(ctx, project.CreateRequest{
			Name:            in.Name,
			ClientName:      in.ClientName,
			ClientContact:   in.ClientContact,
			Location:        in.Location,
			Description:     in.Description,
			Notes:           in.Notes,
			Status:          project.Status(in.Status),
			Priority:        project.Priority(in.Priority),
			CertificateType: project.CertificateType(in.CertificateType),
			Budget:          in.Budget,
			StartDate:       in.StartDate,
			DueDate:         in.DueDate,
		})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, displayProject(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with derived materials cost and total hours",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		summaries, err := svcs.Projects.List(ctx)
		if err != nil {
			return nil, ListProjectsResult{}, mapError(err)
		}
		if summaries == nil {
			summaries = []project.Summary{}
		}
		return nil, ListProjectsResult{Projects: summaries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get full detail for a project, including materials and time entries (most recent first)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Projects.Get(ctx, in.ID)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, displayProject(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Update a project's fields; only the fields provided change",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Projects.Update(ctx, in.ID, project.UpdateRequest{
			Name:            in.Name,
			ClientName:      in.ClientName,
			ClientContact:   in.ClientContact,
			Location:        in.Location,
			Description:     in.Description,
			Notes:           in.Notes,
			Status:          statusPtr(in.Status),
			Priority:        priorityPtr(in.Priority),
			CertificateType: certTypePtr(in.CertificateType),
			Budget:          in.Budget,
			InvoiceIssued:   in.InvoiceIssued,
			InvoiceAmount:   in.InvoiceAmount,
			InvoicePaid:     in.InvoicePaid,
			StartDate:       in.StartDate,
			DueDate:         in.DueDate,
		})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, displayProject(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and every material and time entry it owns",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteProjectParams) (*sdkmcp.CallToolResult, DeleteProjectResult, error) {
		if err := svcs.Projects.Delete(ctx, in.ID); err != nil {
			return nil, DeleteProjectResult{}, mapError(err)
		}
		return nil, DeleteProjectResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_material",
		Description: "Add a billable material to a project; total is quantity times unit cost, fixed at creation",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddMaterialParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Materials.Add(ctx, in.ProjectID, material.AddRequest{
			Name:     in.Name,
			Quantity: in.Quantity,
			UnitCost: in.UnitCost,
		})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, displayProject(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_material",
		Description: "Remove a material from a project by ID",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RemoveMaterialParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Materials.Remove(ctx, in.ProjectID, in.MaterialID)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, displayProject(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_time",
		Description: "Log hours worked on a project on a given date",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in LogTimeParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Timesheet.Add(ctx, in.ProjectID, timesheet.AddRequest{
			Date:        in.Date,
			Hours:       in.Hours,
			Description: in.Description,
		})
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, displayProject(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_time_entry",
		Description: "Remove a time entry from a project by ID",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RemoveTimeEntryParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Timesheet.Remove(ctx, in.ProjectID, in.EntryID)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, displayProject(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_time_entries",
		Description: "Delete every time entry on a project; requires confirm=true",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ClearTimeEntriesParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		if !in.Confirm {
			return nil, nil, errors.New("clearing all time entries requires confirm=true")
		}
		proj, err := svcs.Timesheet.Clear(ctx, in.ProjectID)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return nil, displayProject(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_summary",
		Description: "Get a project's derived totals: materials cost, total hours and entry counts",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectSummaryParams) (*sdkmcp.CallToolResult, ProjectSummaryResult, error) {
		proj, err := svcs.Projects.Get(ctx, in.ProjectID)
		if err != nil {
			return nil, ProjectSummaryResult{}, mapError(err)
		}
		return nil, ProjectSummaryResult{
			ProjectID:      proj.ID,
			MaterialsCost:  project.TotalMaterialsCost(proj),
			TotalHours:     project.TotalHours(proj),
			MaterialCount:  len(proj.Materials),
			TimeEntryCount: len(proj.TimeEntries),
		}, nil
	})
}

// displayProject renders a project with time entries in display order,
// date descending; the stored order is unchanged.
func displayProject(proj *project.Project) *project.Project {
	out := *proj
	out.TimeEntries = timesheet.Sorted(proj.TimeEntries)
	return &out
}

func statusPtr(s *string) *project.Status {
	if s == nil {
		return nil
	}
	v := project.Status(*s)
	return &v
}

func priorityPtr(s *string) *project.Priority {
	if s == nil {
		return nil
	}
	v := project.Priority(*s)
	return &v
}

func certTypePtr(s *string) *project.CertificateType {
	if s == nil {
		return nil
	}
	v := project.CertificateType(*s)
	return &v
}
