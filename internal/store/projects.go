package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sdlcpilot/pkg/models"
)

// CreateProject inserts a new project and returns its ID.
func (db *DB) CreateProject(name, description string) (int64, error) {
	now := formatTime(time.Now())
	res, err := db.Exec(`
		INSERT INTO projects (name, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, description, string(models.StatusNotStarted), now, now)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("project insert id: %w", err)
	}
	return id, nil
}

// CreateProjectWithPhases inserts a new project together with its six
// default SDLC phases in a single transaction.
func (db *DB) CreateProjectWithPhases(name, description string) (int64, error) {
	var projectID int64
	now := formatTime(time.Now())

	err := db.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO projects (name, description, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, name, description, string(models.StatusNotStarted), now, now)
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		projectID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("project insert id: %w", err)
		}

		for _, seed := range models.DefaultPhases() {
			_, err := tx.Exec(`
				INSERT INTO phases (project_id, name, description, status)
				VALUES (?, ?, ?, ?)
			`, projectID, string(seed.Name), seed.Description, string(models.StatusNotStarted))
			if err != nil {
				return fmt.Errorf("create phase %q: %w", seed.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return projectID, nil
}

// GetProject retrieves a project by ID. Returns nil if not found.
func (db *DB) GetProject(id int64) (*models.Project, error) {
	row := db.QueryRow(`
		SELECT id, name, description, status, created_at, updated_at
		FROM projects WHERE id = ?
	`, id)

	var p models.Project
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	p.CreatedAt, _ = parseTime(createdAt)
	p.UpdatedAt, _ = parseTime(updatedAt)
	return &p, nil
}

// ListProjects returns all projects, most recently created first.
func (db *DB) ListProjects() ([]*models.Project, error) {
	rows, err := db.Query(`
		SELECT id, name, description, status, created_at, updated_at
		FROM projects ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var p models.Project
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.CreatedAt, _ = parseTime(createdAt)
		p.UpdatedAt, _ = parseTime(updatedAt)
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// ProjectUpdate describes a partial update to a project. Nil fields are
// left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *models.Status
}

// UpdateProject applies a partial update to a project. A no-field update
// is a no-op.
func (db *DB) UpdateProject(id int64, u ProjectUpdate) error {
	var sets []string
	var args []any

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(time.Now()), id)

	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}
