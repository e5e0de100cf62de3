package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparkmate/amptrack/internal/repository"
)

// Service handles project lifecycle operations.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new project service. A nil logger falls back to
// slog.Default.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// CreateRequest defines project creation inputs. Name, ClientName and
// StartDate are required; empty classification fields fall back to
// planning / medium / none.
type CreateRequest struct {
	Name            string
	ClientName      string
	ClientContact   string
	Location        string
	Description     string
	Notes           string
	Status          Status
	Priority        Priority
	CertificateType CertificateType
	Budget          float64
	StartDate       string
	DueDate         string
}

// UpdateRequest defines a partial update of a project's direct fields.
// Nested collections are mutated through the material and timesheet
// services, not here.
type UpdateRequest struct {
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
}

// Create validates the request and stores a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrMissingName
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, ErrMissingClient
	}
	if strings.TrimSpace(req.StartDate) == "" {
		return nil, ErrMissingStartDate
	}
	if req.Budget < 0 {
		return nil, ErrNegativeBudget
	}

	status := req.Status
	if status == "" {
		status = StatusPlanning
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	certType := req.CertificateType
	if certType == "" {
		certType = CertificateNone
	}
	if !ValidStatus(status) || !ValidPriority(priority) || !ValidCertificateType(certType) {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	proj := &Project{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		ClientName:      strings.TrimSpace(req.ClientName),
		ClientContact:   req.ClientContact,
		Location:        req.Location,
		Description:     req.Description,
		Notes:           req.Notes,
		Status:          status,
		Priority:        priority,
		CertificateType: certType,
		Budget:          req.Budget,
		StartDate:       strings.TrimSpace(req.StartDate),
		DueDate:         req.DueDate,
		CreatedAt:       now,
		UpdatedAt:       now,
		Materials:       []Material{},
		TimeEntries:     []TimeEntry{},
	}

	if err := s.store.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "project_id", proj.ID, "name", proj.Name)
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns project summaries with derived totals.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.store.List(ctx)
}

// Update merges the given fields into the stored project and stamps
// UpdatedAt. Only fields present in the request change.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrMissingName
	}
	if req.ClientName != nil && strings.TrimSpace(*req.ClientName) == "" {
		return nil, ErrMissingClient
	}
	if req.StartDate != nil && strings.TrimSpace(*req.StartDate) == "" {
		return nil, ErrMissingStartDate
	}
	if req.Budget != nil && *req.Budget < 0 {
		return nil, ErrNegativeBudget
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidInput
	}
	if req.Priority != nil && !ValidPriority(*req.Priority) {
		return nil, ErrInvalidInput
	}
	if req.CertificateType != nil && !ValidCertificateType(*req.CertificateType) {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	fields := Update{
		Name:            req.Name,
		ClientName:      req.ClientName,
		ClientContact:   req.ClientContact,
		Location:        req.Location,
		Description:     req.Description,
		Notes:           req.Notes,
		Status:          req.Status,
		Priority:        req.Priority,
		CertificateType: req.CertificateType,
		Budget:          req.Budget,
		InvoiceIssued:   req.InvoiceIssued,
		InvoiceAmount:   req.InvoiceAmount,
		InvoicePaid:     req.InvoicePaid,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
		UpdatedAt:       &now,
	}

	if err := s.store.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	proj, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reloading project: %w", err)
	}
	return proj, nil
}

// Delete removes a project and its owned materials and time entries.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}
