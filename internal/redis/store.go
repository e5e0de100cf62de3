// Package redis provides a Redis-backed project store. Each project is a
// JSON document under its own key, with a set keeping the index of known
// IDs. It demonstrates the "remote" backing the store contract allows and
// offers the same single-operation atomicity as the other stores.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/repository"
)

const (
	keyPrefix = "amptrack:project:"
	indexKey  = "amptrack:projects"
)

var _ project.Store = (*Store)(nil)

// Store keeps projects as JSON documents in Redis.
type Store struct {
	client *redis.Client
}

// New creates a store over an existing Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Create stores the project document and registers its ID in the index.
func (s *Store) Create(ctx context.Context, proj *project.Project) error {
	if err := s.put(ctx, proj); err != nil {
		return err
	}
	if err := s.client.SAdd(ctx, indexKey, proj.ID).Err(); err != nil {
		return fmt.Errorf("failed to index project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID.
func (s *Store) Get(ctx context.Context, id string) (*project.Project, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var proj project.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	return &proj, nil
}

// List returns summaries for all indexed projects, most recently created
// first.
func (s *Store) List(ctx context.Context) ([]project.Summary, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	type entry struct {
		summary project.Summary
		created int64
	}
	entries := make([]entry, 0, len(ids))
	for _, id := range ids {
		proj, err := s.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			// Index can briefly outlive a deleted document.
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{
			summary: project.Summary{
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
			},
			created: proj.CreatedAt.UnixNano(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].created > entries[j].created
	})

	summaries := make([]project.Summary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, e.summary)
	}
	return summaries, nil
}

// Update merges the given fields into the stored document.
func (s *Store) Update(ctx context.Context, id string, fields project.Update) error {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

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

	return s.put(ctx, proj)
}

// Delete removes the project document and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if deleted == 0 {
		return repository.ErrNotFound
	}
	if err := s.client.SRem(ctx, indexKey, id).Err(); err != nil {
		return fmt.Errorf("failed to unindex project: %w", err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, proj *project.Project) error {
	data, err := json.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+proj.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store project: %w", err)
	}
	return nil
}
