// Package models defines the core domain types shared across SDLC Pilot:
// projects, their lifecycle phases, work items, generated documents, and
// test cases.
package models

import "time"

// Status represents the lifecycle state of a project, phase, or task.
type Status string

const (
	// StatusNotStarted indicates work has not begun.
	StatusNotStarted Status = "Not Started"
	// StatusInProgress indicates work is underway.
	StatusInProgress Status = "In Progress"
	// StatusCompleted indicates work finished successfully.
	StatusCompleted Status = "Completed"
	// StatusDelayed indicates work is behind schedule.
	StatusDelayed Status = "Delayed"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusDelayed:
		return true
	default:
		return false
	}
}

// Project represents a tracked software project. A project owns phases,
// documents, and test cases through foreign keys in the store.
type Project struct {
	// ID is the row identifier assigned by the store.
	ID int64 `json:"id"`
	// Name is the project name.
	Name string `json:"name"`
	// Description is a free-text summary of what the project builds.
	Description string `json:"description"`
	// Status is the current lifecycle state.
	Status Status `json:"status"`
	// CreatedAt is when the project was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the project was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}
