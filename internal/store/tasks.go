package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sdlcpilot/pkg/models"
)

// CreateTask inserts a new work item under a phase and returns its ID.
func (db *DB) CreateTask(phaseID int64, name, description, assignedTo string, dueDate *time.Time) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO tasks (phase_id, name, description, status, assigned_to, due_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, phaseID, name, description, string(models.StatusNotStarted), nullableString(assignedTo), formatNullableTime(dueDate))
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task insert id: %w", err)
	}
	return id, nil
}

// GetTasks returns all work items for a phase in creation order.
func (db *DB) GetTasks(phaseID int64) ([]*models.Task, error) {
	rows, err := db.Query(`
		SELECT id, phase_id, name, description, status, assigned_to, due_date
		FROM tasks WHERE phase_id = ? ORDER BY id
	`, phaseID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var t models.Task
		var assignedTo, dueDate sql.NullString
		if err := rows.Scan(&t.ID, &t.PhaseID, &t.Name, &t.Description, &t.Status, &assignedTo, &dueDate); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.AssignedTo = assignedTo.String
		t.DueDate = parseNullableTime(dueDate)
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// TaskUpdate describes a partial update to a work item. Nil fields are
// left untouched.
type TaskUpdate struct {
	Name        *string
	Description *string
	Status      *models.Status
	AssignedTo  *string
	DueDate     *time.Time
}

// UpdateTask applies a partial update to a work item. A no-field update is
// a no-op.
func (db *DB) UpdateTask(id int64, u TaskUpdate) error {
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
	if u.AssignedTo != nil {
		sets = append(sets, "assigned_to = ?")
		args = append(args, *u.AssignedTo)
	}
	if u.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, formatTime(*u.DueDate))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// nullableString maps an empty string to NULL for storage.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
