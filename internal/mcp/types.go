package mcp

import "github.com/sparkmate/amptrack/internal/domain/project"

type CreateProjectParams struct {
	Name            string  `json:"name" jsonschema:"Project display name"`
	ClientName      string  `json:"client_name" jsonschema:"Name of the client"`
	ClientContact   string  `json:"client_contact,omitempty" jsonschema:"Client phone or email"`
	Location        string  `json:"location,omitempty" jsonschema:"Site address or location"`
	Description     string  `json:"description,omitempty" jsonschema:"What the job involves"`
	Notes           string  `json:"notes,omitempty" jsonschema:"Free-form notes"`
	Status          string  `json:"status,omitempty" jsonschema:"planning, in-progress, on-hold or completed (default planning)"`
	Priority        string  `json:"priority,omitempty" jsonschema:"low, medium, high or urgent (default medium)"`
	CertificateType string  `json:"certificate_type,omitempty" jsonschema:"none, minor-works, eicr or installation (default none)"`
	Budget          float64 `json:"budget,omitempty" jsonschema:"Agreed budget, non-negative"`
	StartDate       string  `json:"start_date" jsonschema:"Start date, YYYY-MM-DD"`
	DueDate         string  `json:"due_date,omitempty" jsonschema:"Due date, YYYY-MM-DD"`
}

type GetProjectParams struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type ListProjectsParams struct{}

type ListProjectsResult struct {
	Projects []project.Summary `json:"projects"`
}

type UpdateProjectParams struct {
	ID              string   `json:"id" jsonschema:"Project ID"`
	Name            *string  `json:"name,omitempty" jsonschema:"New project name"`
	ClientName      *string  `json:"client_name,omitempty" jsonschema:"New client name"`
	ClientContact   *string  `json:"client_contact,omitempty" jsonschema:"New client contact"`
	Location        *string  `json:"location,omitempty" jsonschema:"New location"`
	Description     *string  `json:"description,omitempty" jsonschema:"New description"`
	Notes           *string  `json:"notes,omitempty" jsonschema:"New notes"`
	Status          *string  `json:"status,omitempty" jsonschema:"planning, in-progress, on-hold or completed"`
	Priority        *string  `json:"priority,omitempty" jsonschema:"low, medium, high or urgent"`
	CertificateType *string  `json:"certificate_type,omitempty" jsonschema:"none, minor-works, eicr or installation"`
	Budget          *float64 `json:"budget,omitempty" jsonschema:"New budget, non-negative"`
	InvoiceIssued   *bool    `json:"invoice_issued,omitempty" jsonschema:"Whether an invoice has been issued"`
	InvoiceAmount   *float64 `json:"invoice_amount,omitempty" jsonschema:"Invoiced amount; meaningful only when an invoice is issued"`
	InvoicePaid     *bool    `json:"invoice_paid,omitempty" jsonschema:"Whether the invoice is paid; meaningful only when issued"`
	StartDate       *string  `json:"start_date,omitempty" jsonschema:"New start date, YYYY-MM-DD"`
	DueDate         *string  `json:"due_date,omitempty" jsonschema:"New due date, YYYY-MM-DD"`
}

type DeleteProjectParams struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type DeleteProjectResult struct {
	Deleted bool `json:"deleted"`
}

type AddMaterialParams struct {
	ProjectID string  `json:"project_id" jsonschema:"Project ID"`
	Name      string  `json:"name" jsonschema:"Material name, e.g. 2.5mm T&E Cable"`
	Quantity  float64 `json:"quantity,omitempty" jsonschema:"Quantity; unusable values are treated as 0"`
	UnitCost  float64 `json:"unit_cost,omitempty" jsonschema:"Cost per unit; unusable values are treated as 0"`
}

type RemoveMaterialParams struct {
	ProjectID  string `json:"project_id" jsonschema:"Project ID"`
	MaterialID string `json:"material_id" jsonschema:"Material ID to remove"`
}

type LogTimeParams struct {
	ProjectID   string  `json:"project_id" jsonschema:"Project ID"`
	Date        string  `json:"date" jsonschema:"Work date, YYYY-MM-DD"`
	Hours       float64 `json:"hours" jsonschema:"Hours worked, non-negative"`
	Description string  `json:"description" jsonschema:"What was done"`
}

type RemoveTimeEntryParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	EntryID   string `json:"entry_id" jsonschema:"Time entry ID to remove"`
}

type ClearTimeEntriesParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	Confirm   bool   `json:"confirm" jsonschema:"Must be true; this deletes every time entry on the project"`
}

type ProjectSummaryParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
}

type ProjectSummaryResult struct {
	ProjectID      string  `json:"project_id"`
	MaterialsCost  float64 `json:"materials_cost"`
	TotalHours     float64 `json:"total_hours"`
	MaterialCount  int     `json:"material_count"`
	TimeEntryCount int     `json:"time_entry_count"`
}
