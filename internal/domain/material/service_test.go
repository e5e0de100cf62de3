package material_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sparkmate/amptrack/internal/domain/material"
	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/repository"
	"github.com/sparkmate/amptrack/internal/repository/mocks"
)

func storedProject() *project.Project {
	return &project.Project{
		ID:          "p1",
		Name:        "Smith Rewire",
		ClientName:  "J Smith",
		StartDate:   "2024-03-01",
		UpdatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Materials:   []project.Material{},
		TimeEntries: []project.TimeEntry{},
	}
}

func TestMaterialService_Add(t *testing.T) {
	ctx := context.Background()

	store := &mocks.ProjectStore{}
	store.On("Get", ctx, "p1").Return(storedProject(), nil)
	store.On("Update", ctx, "p1", mock.MatchedBy(func(fields project.Update) bool {
		return fields.Materials != nil && len(*fields.Materials) == 1 &&
			fields.UpdatedAt != nil && fields.TimeEntries == nil
	})).Return(nil)

	svc := material.NewService(store, nil)
	proj, err := svc.Add(ctx, "p1", material.AddRequest{
		Name:     "2.5mm T&E Cable",
		Quantity: 4,
		UnitCost: 3,
	})
	require.NoError(t, err)
	require.Len(t, proj.Materials, 1)

	mat := proj.Materials[0]
	require.NotEmpty(t, mat.ID)
	require.Equal(t, "2.5mm T&E Cable", mat.Name)
	require.InDelta(t, 12.0, mat.Total, 1e-9)
	store.AssertExpectations(t)
}

func TestMaterialService_AddMissingName(t *testing.T) {
	ctx := context.Background()

	store := &mocks.ProjectStore{}
	svc := material.NewService(store, nil)

	_, err := svc.Add(ctx, "p1", material.AddRequest{Name: "  ", Quantity: 1, UnitCost: 1})
	require.ErrorIs(t, err, material.ErrMissingName)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestMaterialService_AddCoercesBadNumbers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		quantity float64
		unitCost float64
	}{
		{"nan quantity", math.NaN(), 5},
		{"negative quantity", -3, 5},
		{"infinite unit cost", 2, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mocks.ProjectStore{}
			store.On("Get", ctx, "p1").Return(storedProject(), nil)
			store.On("Update", ctx, "p1", mock.Anything).Return(nil)

			svc := material.NewService(store, nil)
			proj, err := svc.Add(ctx, "p1", material.AddRequest{
				Name:     "Clip Pack",
				Quantity: tt.quantity,
				UnitCost: tt.unitCost,
			})
			require.NoError(t, err)
			require.Len(t, proj.Materials, 1)
			require.False(t, math.IsNaN(proj.Materials[0].Total))
			require.Zero(t, proj.Materials[0].Total)
		})
	}
}

func TestMaterialService_AddProjectNotFound(t *testing.T) {
	ctx := context.Background()

	store := &mocks.ProjectStore{}
	store.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := material.NewService(store, nil)
	_, err := svc.Add(ctx, "missing", material.AddRequest{Name: "Socket", Quantity: 1, UnitCost: 1})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestMaterialService_Remove(t *testing.T) {
	ctx := context.Background()

	proj := storedProject()
	proj.Materials = []project.Material{
		{ID: "m1", Name: "Socket", Quantity: 2, UnitCost: 4, Total: 8},
		{ID: "m2", Name: "Backbox", Quantity: 2, UnitCost: 1, Total: 2},
	}

	store := &mocks.ProjectStore{}
	store.On("Get", ctx, "p1").Return(proj, nil)
	store.On("Update", ctx, "p1", mock.MatchedBy(func(fields project.Update) bool {
		return fields.Materials != nil && len(*fields.Materials) == 1 &&
			(*fields.Materials)[0].ID == "m2"
	})).Return(nil)

	svc := material.NewService(store, nil)
	got, err := svc.Remove(ctx, "p1", "m1")
	require.NoError(t, err)
	require.Len(t, got.Materials, 1)
	require.Equal(t, "m2", got.Materials[0].ID)
	store.AssertExpectations(t)
}

func TestMaterialService_RemoveUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()

	proj := storedProject()
	proj.Materials = []project.Material{{ID: "m1", Name: "Socket", Total: 8}}
	before := proj.UpdatedAt

	store := &mocks.ProjectStore{}
	store.On("Get", ctx, "p1").Return(proj, nil)

	svc := material.NewService(store, nil)
	got, err := svc.Remove(ctx, "p1", "nope")
	require.NoError(t, err)
	require.Len(t, got.Materials, 1)
	require.Equal(t, before, got.UpdatedAt)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
