package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/repository"
)

func testProject(id string) *project.Project {
	now := time.Now().UTC().Truncate(time.Second)
	return &project.Project{
		ID:              id,
		Name:            "Smith Rewire",
		ClientName:      "J Smith",
		ClientContact:   "07700 900123",
		Location:        "12 Oak Lane",
		Description:     "Full house rewire",
		Notes:           "Access via side gate",
		Status:          project.StatusInProgress,
		Priority:        project.PriorityHigh,
		CertificateType: project.CertificateInstallation,
		Budget:          4500,
		StartDate:       "2024-03-01",
		DueDate:         "2024-04-15",
		CreatedAt:       now,
		UpdatedAt:       now,
		Materials: []project.Material{
			{ID: id + "-m1", Name: "2.5mm T&E Cable", Quantity: 50, UnitCost: 0.85, Total: 42.5},
			{ID: id + "-m2", Name: "Double Socket", Quantity: 6, UnitCost: 4.2, Total: 25.2},
		},
		TimeEntries: []project.TimeEntry{
			{ID: id + "-t1", Date: "2024-03-01", Hours: 2, Description: "First fix"},
			{ID: id + "-t2", Date: "2024-03-03", Hours: 1.5, Description: "Second fix"},
		},
	}
}

func TestProjectStore_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()

	proj := testProject("p1")
	require.NoError(t, store.Create(ctx, proj))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, proj.Name, got.Name)
	require.Equal(t, proj.ClientContact, got.ClientContact)
	require.Equal(t, proj.Status, got.Status)
	require.Equal(t, proj.CertificateType, got.CertificateType)
	require.Equal(t, proj.Budget, got.Budget)
	require.False(t, got.InvoiceIssued)

	// Owned collections come back whole and in stored order
	require.Len(t, got.Materials, 2)
	require.Equal(t, "p1-m1", got.Materials[0].ID)
	require.Equal(t, 42.5, got.Materials[0].Total)
	require.Len(t, got.TimeEntries, 2)
	require.Equal(t, "p1-t1", got.TimeEntries[0].ID)
}

func TestProjectStore_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	store := NewProjectStore(db)

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectStore_UpdateScalars(t *testing.T) {
	db := NewTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()

	proj := testProject("p1")
	require.NoError(t, store.Create(ctx, proj))

	status := project.StatusCompleted
	issued := true
	amount := 4800.0
	now := time.Now().UTC().Truncate(time.Second)
	err := store.Update(ctx, "p1", project.Update{
		Status:        &status,
		InvoiceIssued: &issued,
		InvoiceAmount: &amount,
		UpdatedAt:     &now,
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, project.StatusCompleted, got.Status)
	require.True(t, got.InvoiceIssued)
	require.Equal(t, 4800.0, got.InvoiceAmount)

	// Untouched fields keep their values
	require.Equal(t, proj.Name, got.Name)
	require.Equal(t, proj.Priority, got.Priority)
	require.Len(t, got.Materials, 2)
	require.Len(t, got.TimeEntries, 2)
}

func TestProjectStore_UpdateReplacesCollections(t *testing.T) {
	db := NewTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testProject("p1")))

	materials := []project.Material{
		{ID: "m9", Name: "Consumer Unit", Quantity: 1, UnitCost: 120, Total: 120},
	}
	entries := []project.TimeEntry{}
	require.NoError(t, store.Update(ctx, "p1", project.Update{
		Materials:   &materials,
		TimeEntries: &entries,
	}))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got.Materials, 1)
	require.Equal(t, "m9", got.Materials[0].ID)
	require.Empty(t, got.TimeEntries)
}

func TestProjectStore_UpdateNotFound(t *testing.T) {
	db := NewTestDB(t)
	store := NewProjectStore(db)

	name := "Nope"
	err := store.Update(context.Background(), "missing", project.Update{Name: &name})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectStore_DeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testProject("p1")))
	require.NoError(t, store.Delete(ctx, "p1"))

	_, err := store.Get(ctx, "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// Owned rows are gone too
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM materials`).Scan(&count))
	require.Equal(t, 0, count)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM time_entries`).Scan(&count))
	require.Equal(t, 0, count)

	require.ErrorIs(t, store.Delete(ctx, "p1"), repository.ErrNotFound)
}

func TestProjectStore_List(t *testing.T) {
	db := NewTestDB(t)
	store := NewProjectStore(db)
	ctx := context.Background()

	first := testProject("p1")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.Create(ctx, first))

	second := testProject("p2")
	second.Name = "Jones Extension"
	second.Materials = nil
	second.TimeEntries = nil
	require.NoError(t, store.Create(ctx, second))

	summaries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Most recently created first
	require.Equal(t, "p2", summaries[0].ID)
	require.Zero(t, summaries[0].MaterialsCost)
	require.Zero(t, summaries[0].MaterialCount)

	require.Equal(t, "p1", summaries[1].ID)
	require.InDelta(t, 67.7, summaries[1].MaterialsCost, 1e-9)
	require.InDelta(t, 3.5, summaries[1].TotalHours, 1e-9)
	require.Equal(t, 2, summaries[1].MaterialCount)
	require.Equal(t, 2, summaries[1].TimeEntryCount)
}
