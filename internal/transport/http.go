// Package transport exposes the tracker over a small REST API consumed by
// the web front end.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sparkmate/amptrack/internal/domain/material"
	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/domain/timesheet"
)

// ProjectService defines the project operations the API needs.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
	Update(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

// MaterialService defines the material operations the API needs.
type MaterialService interface {
	Add(ctx context.Context, projectID string, req material.AddRequest) (*project.Project, error)
	Remove(ctx context.Context, projectID, materialID string) (*project.Project, error)
}

// TimesheetService defines the time entry operations the API needs.
type TimesheetService interface {
	Add(ctx context.Context, projectID string, req timesheet.AddRequest) (*project.Project, error)
	Remove(ctx context.Context, projectID, entryID string) (*project.Project, error)
	Clear(ctx context.Context, projectID string) (*project.Project, error)
}

// Services groups the domain services behind the API.
type Services struct {
	Projects  ProjectService
	Materials MaterialService
	Timesheet TimesheetService
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewRouter creates the API router with middleware.
func NewRouter(services Services, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	srv := &Server{services: services, logger: logger}

	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", srv.listProjects)
		r.Post("/", srv.createProject)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", srv.getProject)
			r.Patch("/", srv.updateProject)
			r.Delete("/", srv.deleteProject)
			r.Get("/summary", srv.projectSummary)
			r.Post("/materials", srv.addMaterial)
			r.Delete("/materials/{materialID}", srv.removeMaterial)
			r.Post("/time-entries", srv.addTimeEntry)
			r.Delete("/time-entries", srv.clearTimeEntries)
			r.Delete("/time-entries/{entryID}", srv.removeTimeEntry)
		})
	})
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type createProjectRequest struct {
	Name            string  `json:"name"`
	ClientName      string  `json:"client_name"`
	ClientContact   string  `json:"client_contact"`
	Location        string  `json:"location"`
	Description     string  `json:"description"`
	Notes           string  `json:"notes"`
	Status          string  `json:"status"`
	Priority        string  `json:"priority"`
	CertificateType string  `json:"certificate_type"`
	Budget          float64 `json:"budget"`
	StartDate       string  `json:"start_date"`
	DueDate         string  `json:"due_date"`
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := s.services.Projects.Create(r.Context(), project.CreateRequest{
		Name:            req.Name,
		ClientName:      req.ClientName,
		ClientContact:   req.ClientContact,
		Location:        req.Location,
		Description:     req.Description,
		Notes:           req.Notes,
		Status:          project.Status(req.Status),
		Priority:        project.Priority(req.Priority),
		CertificateType: project.CertificateType(req.CertificateType),
		Budget:          req.Budget,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, projectResponse(proj))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.services.Projects.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if summaries == nil {
		summaries = []project.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": summaries})
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.services.Projects.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(proj))
}

type updateProjectRequest struct {
	Name            *string  `json:"name"`
	ClientName      *string  `json:"client_name"`
	ClientContact   *string  `json:"client_contact"`
	Location        *string  `json:"location"`
	Description     *string  `json:"description"`
	Notes           *string  `json:"notes"`
	Status          *string  `json:"status"`
	Priority        *string  `json:"priority"`
	CertificateType *string  `json:"certificate_type"`
	Budget          *float64 `json:"budget"`
	InvoiceIssued   *bool    `json:"invoice_issued"`
	InvoiceAmount   *float64 `json:"invoice_amount"`
	InvoicePaid     *bool    `json:"invoice_paid"`
	StartDate       *string  `json:"start_date"`
	DueDate         *string  `json:"due_date"`
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := s.services.Projects.Update(r.Context(), chi.URLParam(r, "projectID"), project.UpdateRequest{
		Name:            req.Name,
		ClientName:      req.ClientName,
		ClientContact:   req.ClientContact,
		Location:        req.Location,
		Description:     req.Description,
		Notes:           req.Notes,
		Status:          statusPtr(req.Status),
		Priority:        priorityPtr(req.Priority),
		CertificateType: certTypePtr(req.CertificateType),
		Budget:          req.Budget,
		InvoiceIssued:   req.InvoiceIssued,
		InvoiceAmount:   req.InvoiceAmount,
		InvoicePaid:     req.InvoicePaid,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(proj))
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Projects.Delete(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) projectSummary(w http.ResponseWriter, r *http.Request) {
	proj, err := s.services.Projects.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"project_id":       proj.ID,
		"materials_cost":   project.TotalMaterialsCost(proj),
		"total_hours":      project.TotalHours(proj),
		"material_count":   len(proj.Materials),
		"time_entry_count": len(proj.TimeEntries),
	})
}

type addMaterialRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
}

func (s *Server) addMaterial(w http.ResponseWriter, r *http.Request) {
	var req addMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := s.services.Materials.Add(r.Context(), chi.URLParam(r, "projectID"), material.AddRequest{
		Name:     req.Name,
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectResponse(proj))
}

func (s *Server) removeMaterial(w http.ResponseWriter, r *http.Request) {
	proj, err := s.services.Materials.Remove(r.Context(),
		chi.URLParam(r, "projectID"), chi.URLParam(r, "materialID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(proj))
}

type addTimeEntryRequest struct {
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

func (s *Server) addTimeEntry(w http.ResponseWriter, r *http.Request) {
	var req addTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := s.services.Timesheet.Add(r.Context(), chi.URLParam(r, "projectID"), timesheet.AddRequest{
		Date:        req.Date,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectResponse(proj))
}

func (s *Server) removeTimeEntry(w http.ResponseWriter, r *http.Request) {
	proj, err := s.services.Timesheet.Remove(r.Context(),
		chi.URLParam(r, "projectID"), chi.URLParam(r, "entryID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(proj))
}

func (s *Server) clearTimeEntries(w http.ResponseWriter, r *http.Request) {
	// Destructive bulk operation; the confirmation gate lives here, not in
	// the timesheet service.
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "clearing all time entries requires confirm=true")
		return
	}

	proj, err := s.services.Timesheet.Clear(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(proj))
}

// projectResponse renders a project with time entries in display order,
// date descending. The stored order is unchanged.
func projectResponse(proj *project.Project) *project.Project {
	out := *proj
	out.TimeEntries = timesheet.Sorted(proj.TimeEntries)
	return &out
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, project.ErrMissingName),
		errors.Is(err, project.ErrMissingClient),
		errors.Is(err, project.ErrMissingStartDate),
		errors.Is(err, project.ErrNegativeBudget),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, material.ErrMissingName),
		errors.Is(err, timesheet.ErrMissingDescription):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
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
