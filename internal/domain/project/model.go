package project

import "time"

// Status classifies where a project is in its lifecycle. Values are set
// directly by the caller; there are no transition rules between them.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in-progress"
	StatusOnHold     Status = "on-hold"
	StatusCompleted  Status = "completed"
)

// Priority ranks how urgent a project is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// CertificateType identifies the electrical certificate a job requires.
type CertificateType string

const (
	CertificateNone         CertificateType = "none"
	CertificateMinorWorks   CertificateType = "minor-works"
	CertificateEICR         CertificateType = "eicr"
	CertificateInstallation CertificateType = "installation"
)

// Material is a billable item owned by a single project. Total is computed
// once at creation from quantity and unit cost and is never recomputed;
// materials are only ever added or removed whole, never edited in place.
type Material struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
	Total    float64 `json:"total"`
}

// TimeEntry records hours worked on a project on a given calendar date.
type TimeEntry struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

// Project is the top-level record for one job or engagement. It exclusively
// owns its materials and time entries; deleting a project removes them too.
//
// InvoiceAmount and InvoicePaid are only meaningful while InvoiceIssued is
// true. The model does not enforce that relationship; it is a documented
// convention honored by callers.
type Project struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ClientName      string          `json:"client_name"`
	ClientContact   string          `json:"client_contact,omitempty"`
	Location        string          `json:"location,omitempty"`
	Description     string          `json:"description,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          Status          `json:"status"`
	Priority        Priority        `json:"priority"`
	CertificateType CertificateType `json:"certificate_type"`
	Budget          float64         `json:"budget"`
	InvoiceIssued   bool            `json:"invoice_issued"`
	InvoiceAmount   float64         `json:"invoice_amount"`
	InvoicePaid     bool            `json:"invoice_paid"`
	StartDate       string          `json:"start_date"`
	DueDate         string          `json:"due_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Materials       []Material      `json:"materials"`
	TimeEntries     []TimeEntry     `json:"time_entries"`
}

// Summary is a lightweight representation for listing, carrying the derived
// totals alongside identifying fields.
type Summary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ClientName     string    `json:"client_name"`
	Status         Status    `json:"status"`
	Priority       Priority  `json:"priority"`
	Budget         float64   `json:"budget"`
	MaterialsCost  float64   `json:"materials_cost"`
	TotalHours     float64   `json:"total_hours"`
	MaterialCount  int       `json:"material_count"`
	TimeEntryCount int       `json:"time_entry_count"`
	StartDate      string    `json:"start_date"`
	DueDate        string    `json:"due_date,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Update is a partial field set merged into a stored project. Nil pointers
// leave the stored value untouched; Materials and TimeEntries replace the
// whole owned collection when set.
type Update struct {
	Name            *string
	ClientName      *string
	ClientContact   *string
	Location        *string
	Description     *string
	Notes           *string
	Status          *Status
	Priority        *Priority
	CertificateType *CertificateType
	Budget          *float64
	InvoiceIssued   *bool
	InvoiceAmount   *float64
	InvoicePaid     *bool
	StartDate       *string
	DueDate         *string
	UpdatedAt       *time.Time
	Materials       *[]Material
	TimeEntries     *[]TimeEntry
}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusOnHold, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidCertificateType reports whether c is one of the known certificate types.
func ValidCertificateType(c CertificateType) bool {
	switch c {
	case CertificateNone, CertificateMinorWorks, CertificateEICR, CertificateInstallation:
		return true
	}
	return false
}
