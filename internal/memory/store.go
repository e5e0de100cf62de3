// Package memory provides an in-memory project store used for tests and
// ephemeral runs. It honors the same contract as the SQLite store,
// including deep copies so callers can't mutate stored state through
// returned values.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/repository"
)

var _ project.Store = (*Store)(nil)

// Store keeps projects in a mutex-guarded map.
type Store struct {
	mu       sync.RWMutex
	projects map[string]*project.Project
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{projects: make(map[string]*project.Project)}
}

// Create stores a copy of the project.
func (s *Store) Create(_ context.Context, proj *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[proj.ID] = clone(proj)
	return nil
}

// Get returns a copy of the project.
func (s *Store) Get(_ context.Context, id string) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	proj, ok := s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(proj), nil
}

// List returns summaries for all projects, most recently created first.
func (s *Store) List(_ context.Context) ([]project.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]project.Summary, 0, len(s.projects))
	for _, proj := range s.projects {
		summaries = append(summaries, project.Summary{
			ID:             proj.ID,
			Name:           proj.Name,
			ClientName:     proj.ClientName,
			Status:         proj.Status,
			Priority:       proj.Priority,
			Budget:         proj.Budget,
			MaterialsCost:  project.TotalMaterialsCost(proj),
			TotalHours:     project.TotalHours(proj),
			MaterialCount:  len(proj.Materials),
			TimeEntryCount: len(proj.TimeEntries),
			StartDate:      proj.StartDate,
			DueDate:        proj.DueDate,
			UpdatedAt:      proj.UpdatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		pi, pj := s.projects[summaries[i].ID], s.projects[summaries[j].ID]
		return pi.CreatedAt.After(pj.CreatedAt)
	})
	return summaries, nil
}

// Update merges the given fields into the stored project.
func (s *Store) Update(_ context.Context, id string, fields project.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	proj, ok := s.projects[id]
	if !ok {
		return repository.ErrNotFound
	}

	applyUpdate(proj, fields)
	return nil
}

// Delete removes the project; the owned collections go with it.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func applyUpdate(proj *project.Project, fields project.Update) {
	if fields.Name != nil {
		proj.Name = *fields.Name
	}
	if fields.ClientName != nil {
		proj.ClientName = *fields.ClientName
	}
	if fields.ClientContact != nil {
		proj.ClientContact = *fields.ClientContact
	}
	if fields.Location != nil {
		proj.Location = *fields.Location
	}
	if fields.Description != nil {
		proj.Description = *fields.Description
	}
	if fields.Notes != nil {
		proj.Notes = *fields.Notes
	}
	if fields.Status != nil {
		proj.Status = *fields.Status
	}
	if fields.Priority != nil {
		proj.Priority = *fields.Priority
	}
	if fields.CertificateType != nil {
		proj.CertificateType = *fields.CertificateType
	}
	if fields.Budget != nil {
		proj.Budget = *fields.Budget
	}
	if fields.InvoiceIssued != nil {
		proj.InvoiceIssued = *fields.InvoiceIssued
	}
	if fields.InvoiceAmount != nil {
		proj.InvoiceAmount = *fields.InvoiceAmount
	}
	if fields.InvoicePaid != nil {
		proj.InvoicePaid = *fields.InvoicePaid
	}
	if fields.StartDate != nil {
		proj.StartDate = *fields.StartDate
	}
	if fields.DueDate != nil {
		proj.DueDate = *fields.DueDate
	}
	if fields.UpdatedAt != nil {
		proj.UpdatedAt = *fields.UpdatedAt
	}
	if fields.Materials != nil {
		proj.Materials = append([]project.Material{}, (*fields.Materials)...)
	}
	if fields.TimeEntries != nil {
		proj.TimeEntries = append([]project.TimeEntry{}, (*fields.TimeEntries)...)
	}
}

func clone(proj *project.Project) *project.Project {
	out := *proj
	out.Materials = append([]project.Material{}, proj.Materials...)
	out.TimeEntries = append([]project.TimeEntry{}, proj.TimeEntries...)
	return &out
}
