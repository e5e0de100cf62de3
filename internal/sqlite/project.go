package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/repository"
)

var _ project.Store = (*ProjectStore)(nil)

// ProjectStore implements project.Store for SQLite
type ProjectStore struct {
	db *DB
}

// NewProjectStore creates a new ProjectStore
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create inserts a project and its owned collections.
func (s *ProjectStore) Create(ctx context.Context, proj *project.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO projects (
			id, name, client_name, client_contact, location, description, notes,
			status, priority, certificate_type,
			budget, invoice_issued, invoice_amount, invoice_paid,
			start_date, due_date, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.ClientName,
		proj.ClientContact,
		proj.Location,
		proj.Description,
		proj.Notes,
		proj.Status,
		proj.Priority,
		proj.CertificateType,
		proj.Budget,
		proj.InvoiceIssued,
		proj.InvoiceAmount,
		proj.InvoicePaid,
		proj.StartDate,
		proj.DueDate,
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := replaceMaterials(ctx, tx, proj.ID, proj.Materials); err != nil {
		return err
	}
	if err := replaceTimeEntries(ctx, tx, proj.ID, proj.TimeEntries); err != nil {
		return err
	}

	return tx.Commit()
}

// Get retrieves a project by ID, including its materials and time entries
// in stored order.
func (s *ProjectStore) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, client_name, client_contact, location, description, notes,
		       status, priority, certificate_type,
		       budget, invoice_issued, invoice_amount, invoice_paid,
		       start_date, due_date, created_at, updated_at
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID,
		&proj.Name,
		&proj.ClientName,
		&proj.ClientContact,
		&proj.Location,
		&proj.Description,
		&proj.Notes,
		&proj.Status,
		&proj.Priority,
		&proj.CertificateType,
		&proj.Budget,
		&proj.InvoiceIssued,
		&proj.InvoiceAmount,
		&proj.InvoicePaid,
		&proj.StartDate,
		&proj.DueDate,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	proj.Materials, err = s.loadMaterials(ctx, id)
	if err != nil {
		return nil, err
	}
	proj.TimeEntries, err = s.loadTimeEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	return &proj, nil
}

// List returns all projects with summary information, most recently
// created first.
func (s *ProjectStore) List(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.client_name,
			p.status,
			p.priority,
			p.budget,
			COALESCE((SELECT SUM(m.total) FROM materials m WHERE m.project_id = p.id), 0) AS materials_cost,
			COALESCE((SELECT SUM(t.hours) FROM time_entries t WHERE t.project_id = p.id), 0) AS total_hours,
			(SELECT COUNT(*) FROM materials m WHERE m.project_id = p.id) AS material_count,
			(SELECT COUNT(*) FROM time_entries t WHERE t.project_id = p.id) AS time_entry_count,
			p.start_date,
			p.due_date,
			p.updated_at
		FROM projects p
		ORDER BY p.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var summary project.Summary
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.ClientName,
			&summary.Status,
			&summary.Priority,
			&summary.Budget,
			&summary.MaterialsCost,
			&summary.TotalHours,
			&summary.MaterialCount,
			&summary.TimeEntryCount,
			&summary.StartDate,
			&summary.DueDate,
			&summary.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// Update merges the given fields into the stored project. A set Materials
// or TimeEntries pointer replaces the whole owned collection.
func (s *ProjectStore) Update(ctx context.Context, id string, fields project.Update) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}

	set, args := buildUpdateSet(fields)
	if len(set) > 0 {
		query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = ?`, strings.Join(set, ", "))
		args = append(args, id)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
	}

	if fields.Materials != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM materials WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear materials: %w", err)
		}
		if err := replaceMaterials(ctx, tx, id, *fields.Materials); err != nil {
			return err
		}
	}
	if fields.TimeEntries != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear time entries: %w", err)
		}
		if err := replaceTimeEntries(ctx, tx, id, *fields.TimeEntries); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a project; owned materials and time entries go with it
// via the cascading foreign keys.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read result: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (s *ProjectStore) loadMaterials(ctx context.Context, projectID string) ([]project.Material, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, unit_cost, total
		FROM materials
		WHERE project_id = ?
		ORDER BY position ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	defer rows.Close()

	materials := []project.Material{}
	for rows.Next() {
		var m project.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Quantity, &m.UnitCost, &m.Total); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}
	return materials, nil
}

func (s *ProjectStore) loadTimeEntries(ctx context.Context, projectID string) ([]project.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_date, hours, description
		FROM time_entries
		WHERE project_id = ?
		ORDER BY position ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	defer rows.Close()

	entries := []project.TimeEntry{}
	for rows.Next() {
		var e project.TimeEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Hours, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}
	return entries, nil
}

func replaceMaterials(ctx context.Context, tx *sql.Tx, projectID string, materials []project.Material) error {
	for i, m := range materials {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO materials (id, project_id, name, quantity, unit_cost, total, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, m.ID, projectID, m.Name, m.Quantity, m.UnitCost, m.Total, i)
		if err != nil {
			return fmt.Errorf("failed to insert material: %w", err)
		}
	}
	return nil
}

func replaceTimeEntries(ctx context.Context, tx *sql.Tx, projectID string, entries []project.TimeEntry) error {
	for i, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO time_entries (id, project_id, entry_date, hours, description, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.ID, projectID, e.Date, e.Hours, e.Description, i)
		if err != nil {
			return fmt.Errorf("failed to insert time entry: %w", err)
		}
	}
	return nil
}

func buildUpdateSet(fields project.Update) ([]string, []any) {
	var set []string
	var args []any

	add := func(column string, value any) {
		set = append(set, column+" = ?")
		args = append(args, value)
	}

	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.ClientName != nil {
		add("client_name", *fields.ClientName)
	}
	if fields.ClientContact != nil {
		add("client_contact", *fields.ClientContact)
	}
	if fields.Location != nil {
		add("location", *fields.Location)
	}
	if fields.Description != nil {
		add("description", *fields.Description)
	}
	if fields.Notes != nil {
		add("notes", *fields.Notes)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if fields.Priority != nil {
		add("priority", *fields.Priority)
	}
	if fields.CertificateType != nil {
		add("certificate_type", *fields.CertificateType)
	}
	if fields.Budget != nil {
		add("budget", *fields.Budget)
	}
	if fields.InvoiceIssued != nil {
		add("invoice_issued", *fields.InvoiceIssued)
	}
	if fields.InvoiceAmount != nil {
		add("invoice_amount", *fields.InvoiceAmount)
	}
	if fields.InvoicePaid != nil {
		add("invoice_paid", *fields.InvoicePaid)
	}
	if fields.StartDate != nil {
		add("start_date", *fields.StartDate)
	}
	if fields.DueDate != nil {
		add("due_date", *fields.DueDate)
	}
	if fields.UpdatedAt != nil {
		add("updated_at", *fields.UpdatedAt)
	}

	return set, args
}
