package models

import "time"

// PhaseName is one of the six fixed SDLC phase names tracked per project.
type PhaseName string

const (
	PhaseRequirementsAnalysis PhaseName = "Requirements Analysis"
	PhaseSystemDesign         PhaseName = "System Design"
	PhaseImplementation       PhaseName = "Implementation"
	PhaseTesting              PhaseName = "Testing"
	PhaseDeployment           PhaseName = "Deployment"
	PhaseMaintenance          PhaseName = "Maintenance"
)

// Valid returns true if the phase name is one of the six fixed values.
func (n PhaseName) Valid() bool {
	switch n {
	case PhaseRequirementsAnalysis, PhaseSystemDesign, PhaseImplementation,
		PhaseTesting, PhaseDeployment, PhaseMaintenance:
		return true
	default:
		return false
	}
}

// PhaseSeed pairs a phase name with its default description. Used when
// creating the six default phases alongside a new project.
type PhaseSeed struct {
	Name        PhaseName
	Description string
}

// DefaultPhases returns the six SDLC phases every new project starts with,
// in lifecycle order.
func DefaultPhases() []PhaseSeed {
	return []PhaseSeed{
		{PhaseRequirementsAnalysis, "Gather and document project requirements"},
		{PhaseSystemDesign, "Design the system architecture and components"},
		{PhaseImplementation, "Implement the designed system"},
		{PhaseTesting, "Test the implemented system"},
		{PhaseDeployment, "Deploy the system to production"},
		{PhaseMaintenance, "Maintain and update the system"},
	}
}

// Phase represents one SDLC stage of a project.
type Phase struct {
	// ID is the row identifier assigned by the store.
	ID int64 `json:"id"`
	// ProjectID is the owning project.
	ProjectID int64 `json:"project_id"`
	// Name is one of the six fixed SDLC phase names.
	Name PhaseName `json:"name"`
	// Description summarizes the phase's purpose.
	Description string `json:"description"`
	// Status is the current lifecycle state.
	Status Status `json:"status"`
	// StartDate is when work on the phase began, if set.
	StartDate *time.Time `json:"start_date,omitempty"`
	// EndDate is when work on the phase ended, if set.
	EndDate *time.Time `json:"end_date,omitempty"`
}
