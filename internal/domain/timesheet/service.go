// Package timesheet mutates a project's time entries. Like the material
// service it works read-modify-write against the project store and leaves
// concurrency coordination to the store's own contract.
package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/repository"
)

// ProjectStore is the slice of the project store this service needs.
type ProjectStore interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	Update(ctx context.Context, id string, fields project.Update) error
}

// Service handles time entry mutations.
type Service struct {
	store  ProjectStore
	logger *slog.Logger
}

// NewService creates a new timesheet service. A nil logger falls back to
// slog.Default.
func NewService(store ProjectStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// AddRequest defines inputs for logging time against a project.
type AddRequest struct {
	Date        string
	Hours       float64
	Description string
}

// Add appends a new time entry to the project and persists the result.
// Hours are clamped to non-negative; any display minimum (the forms use 0.5)
// is the caller's concern, not enforced here.
func (s *Service) Add(ctx context.Context, projectID string, req AddRequest) (*project.Project, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrMissingDescription
	}

	proj, err := s.store.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	entry := project.TimeEntry{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Hours:       sanitizeHours(req.Hours),
		Description: strings.TrimSpace(req.Description),
	}

	entries := append(append([]project.TimeEntry{}, proj.TimeEntries...), entry)
	now := time.Now()

	if err := s.store.Update(ctx, projectID, project.Update{
		TimeEntries: &entries,
		UpdatedAt:   &now,
	}); err != nil {
		return nil, fmt.Errorf("saving time entries: %w", err)
	}

	proj.TimeEntries = entries
	proj.UpdatedAt = now

	s.logger.Info("time entry added",
		"project_id", projectID, "entry_id", entry.ID, "hours", entry.Hours)
	return proj, nil
}

// Remove deletes the entry with the given ID. Removing an absent ID is a
// true no-op: nothing is persisted and UpdatedAt keeps its prior value.
func (s *Service) Remove(ctx context.Context, projectID, entryID string) (*project.Project, error) {
	proj, err := s.store.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	entries := make([]project.TimeEntry, 0, len(proj.TimeEntries))
	for _, e := range proj.TimeEntries {
		if e.ID != entryID {
			entries = append(entries, e)
		}
	}
	if len(entries) == len(proj.TimeEntries) {
		return proj, nil
	}

	now := time.Now()
	if err := s.store.Update(ctx, projectID, project.Update{
		TimeEntries: &entries,
		UpdatedAt:   &now,
	}); err != nil {
		return nil, fmt.Errorf("saving time entries: %w", err)
	}

	proj.TimeEntries = entries
	proj.UpdatedAt = now

	s.logger.Info("time entry removed", "project_id", projectID, "entry_id", entryID)
	return proj, nil
}

// Clear empties the project's time entries. Callers must gate this behind
// an explicit confirmation step; the service applies it unconditionally.
func (s *Service) Clear(ctx context.Context, projectID string) (*project.Project, error) {
	proj, err := s.store.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	entries := []project.TimeEntry{}
	now := time.Now()
	if err := s.store.Update(ctx, projectID, project.Update{
		TimeEntries: &entries,
		UpdatedAt:   &now,
	}); err != nil {
		return nil, fmt.Errorf("saving time entries: %w", err)
	}

	cleared := len(proj.TimeEntries)
	proj.TimeEntries = entries
	proj.UpdatedAt = now

	s.logger.Info("time entries cleared", "project_id", projectID, "count", cleared)
	return proj, nil
}

// Sorted returns the project's time entries ordered by date descending,
// most recent first. The sort happens at read time; the stored order is
// untouched. Dates are ISO calendar strings, so lexicographic comparison
// matches chronological order.
func Sorted(entries []project.TimeEntry) []project.TimeEntry {
	out := append([]project.TimeEntry{}, entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// sanitizeHours coerces unusable hour values to 0; only non-negativity is
// enforced here.
func sanitizeHours(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
