package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sdlcpilot/pkg/models"
)

// CreatePhase inserts a new phase for a project and returns its ID.
func (db *DB) CreatePhase(projectID int64, name models.PhaseName, description string) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO phases (project_id, name, description, status)
		VALUES (?, ?, ?, ?)
	`, projectID, string(name), description, string(models.StatusNotStarted))
	if err != nil {
		return 0, fmt.Errorf("create phase: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("phase insert id: %w", err)
	}
	return id, nil
}

// GetPhase retrieves a phase by ID. Returns nil if not found.
func (db *DB) GetPhase(id int64) (*models.Phase, error) {
	row := db.QueryRow(`
		SELECT id, project_id, name, description, status, start_date, end_date
		FROM phases WHERE id = ?
	`, id)

	ph, err := scanPhase(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get phase: %w", err)
	}
	return ph, nil
}

// GetPhases returns all phases for a project in creation order, which for
// default phases is lifecycle order.
func (db *DB) GetPhases(projectID int64) ([]*models.Phase, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, description, status, start_date, end_date
		FROM phases WHERE project_id = ? ORDER BY id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	defer rows.Close()

	var phases []*models.Phase
	for rows.Next() {
		ph, err := scanPhase(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan phase: %w", err)
		}
		phases = append(phases, ph)
	}
	return phases, rows.Err()
}

func scanPhase(scan func(...any) error) (*models.Phase, error) {
	var ph models.Phase
	var start, end sql.NullString
	if err := scan(&ph.ID, &ph.ProjectID, &ph.Name, &ph.Description, &ph.Status, &start, &end); err != nil {
		return nil, err
	}
	ph.StartDate = parseNullableTime(start)
	ph.EndDate = parseNullableTime(end)
	return &ph, nil
}

// PhaseUpdate describes a partial update to a phase. Nil fields are left
// untouched.
type PhaseUpdate struct {
	Name        *models.PhaseName
	Description *string
	Status      *models.Status
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdatePhase applies a partial update to a phase. A no-field update is a
// no-op.
func (db *DB) UpdatePhase(id int64, u PhaseUpdate) error {
	var sets []string
	var args []any

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, string(*u.Name))
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if u.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, formatTime(*u.StartDate))
	}
	if u.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, formatTime(*u.EndDate))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE phases SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("update phase: %w", err)
	}
	return nil
}

// UpdatePhaseStatus sets only the status of a phase. This is the operation
// the crew orchestrator uses to mark a phase completed.
func (db *DB) UpdatePhaseStatus(id int64, status models.Status) error {
	return db.UpdatePhase(id, PhaseUpdate{Status: &status})
}
