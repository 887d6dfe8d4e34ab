package crew

import (
	"errors"
	"fmt"
)

// ErrCycleDetected indicates a circular dependency in a pipeline's tasks.
var ErrCycleDetected = errors.New("crew: circular task dependency detected")

// ErrRunInProgress indicates a pipeline is already running for the same
// project and phase type. Concurrent runs would double-write documents.
var ErrRunInProgress = errors.New("crew: pipeline already running for this project and phase")

// NotFoundError indicates a referenced entity does not exist in the
// repository.
type NotFoundError struct {
	// Kind is the entity kind, e.g. "project".
	Kind string
	// ID is the identifier that failed to resolve.
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// GenerationError indicates a pipeline task's generation call failed.
// It aborts the remaining pipeline; nothing is persisted for the run.
type GenerationError struct {
	// TaskID identifies the pipeline task that failed.
	TaskID string
	// Role is the role of the agent assigned to the task.
	Role string
	// Err is the underlying failure.
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at task %s (%s): %v", e.TaskID, e.Role, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
