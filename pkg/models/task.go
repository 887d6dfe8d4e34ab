package models

import "time"

// Task represents an SDLC work item tracked under a phase. This is distinct
// from a pipeline task, which is one generation step inside a crew run.
type Task struct {
	// ID is the row identifier assigned by the store.
	ID int64 `json:"id"`
	// PhaseID is the owning phase.
	PhaseID int64 `json:"phase_id"`
	// Name is the short title of the work item.
	Name string `json:"name"`
	// Description provides detail about the work item.
	Description string `json:"description"`
	// Status is the current lifecycle state.
	Status Status `json:"status"`
	// AssignedTo names the person responsible, if anyone.
	AssignedTo string `json:"assigned_to,omitempty"`
	// DueDate is the deadline, if set.
	DueDate *time.Time `json:"due_date,omitempty"`
}
