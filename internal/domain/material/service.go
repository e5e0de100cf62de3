// Package material mutates a project's billable materials. Every operation
// is a read-modify-write against the project store: load the project, build
// the new collection, persist it together with a fresh UpdatedAt stamp.
package material

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
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

// Service handles material mutations.
type Service struct {
	store  ProjectStore
	logger *slog.Logger
}

// NewService creates a new material service. A nil logger falls back to
// slog.Default.
func NewService(store ProjectStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// AddRequest defines inputs for adding a material to a project.
type AddRequest struct {
	Name     string
	Quantity float64
	UnitCost float64
}

// Add appends a new material to the project and persists the result.
// Quantity and unit cost are sanitized before the stored total is computed,
// so NaN or negative inputs can never leak into it. The stored total is
// fixed at creation time and never recomputed.
func (s *Service) Add(ctx context.Context, projectID string, req AddRequest) (*project.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrMissingName
	}

	proj, err := s.store.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	quantity := sanitizeAmount(req.Quantity)
	unitCost := sanitizeAmount(req.UnitCost)

	mat := project.Material{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Quantity: quantity,
		UnitCost: unitCost,
		Total:    quantity * unitCost,
	}

	materials := append(append([]project.Material{}, proj.Materials...), mat)
	now := time.Now()

	if err := s.store.Update(ctx, projectID, project.Update{
		Materials: &materials,
		UpdatedAt: &now,
	}); err != nil {
		return nil, fmt.Errorf("saving materials: %w", err)
	}

	proj.Materials = materials
	proj.UpdatedAt = now

	s.logger.Info("material added",
		"project_id", projectID, "material_id", mat.ID, "total", mat.Total)
	return proj, nil
}

// Remove deletes the material with the given ID from the project. Removing
// an ID that isn't present is a true no-op: nothing is persisted and
// UpdatedAt keeps its prior value.
func (s *Service) Remove(ctx context.Context, projectID, materialID string) (*project.Project, error) {
	proj, err := s.store.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	materials := make([]project.Material, 0, len(proj.Materials))
	for _, m := range proj.Materials {
		if m.ID != materialID {
			materials = append(materials, m)
		}
	}
	if len(materials) == len(proj.Materials) {
		return proj, nil
	}

	now := time.Now()
	if err := s.store.Update(ctx, projectID, project.Update{
		Materials: &materials,
		UpdatedAt: &now,
	}); err != nil {
		return nil, fmt.Errorf("saving materials: %w", err)
	}

	proj.Materials = materials
	proj.UpdatedAt = now

	s.logger.Info("material removed", "project_id", projectID, "material_id", materialID)
	return proj, nil
}

// sanitizeAmount coerces unusable numeric input to 0. Missing form values
// arrive as 0 already; NaN, infinities and negatives are mapped to 0 rather
// than rejected so a bad quantity can never produce a surprising total.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
