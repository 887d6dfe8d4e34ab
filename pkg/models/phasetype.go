package models

import "fmt"

// PhaseType identifies one of the three SDLC phases that delegate document
// generation to a crew pipeline.
type PhaseType string

const (
	// PhaseTypeRequirements generates a requirements document.
	PhaseTypeRequirements PhaseType = "requirements"
	// PhaseTypeDesign generates a system design document.
	PhaseTypeDesign PhaseType = "design"
	// PhaseTypeTesting generates a testing document.
	PhaseTypeTesting PhaseType = "testing"
)

// ParsePhaseType converts a string to a PhaseType, or errors if the value
// is not one of the three pipeline phases.
func ParsePhaseType(s string) (PhaseType, error) {
	pt := PhaseType(s)
	if !pt.Valid() {
		return "", fmt.Errorf("unknown phase type %q (want requirements, design, or testing)", s)
	}
	return pt, nil
}

// Valid returns true if the phase type is a known value.
func (p PhaseType) Valid() bool {
	switch p {
	case PhaseTypeRequirements, PhaseTypeDesign, PhaseTypeTesting:
		return true
	default:
		return false
	}
}

// DocType returns the document type a pipeline for this phase produces.
func (p PhaseType) DocType() DocType {
	switch p {
	case PhaseTypeRequirements:
		return DocTypeRequirements
	case PhaseTypeDesign:
		return DocTypeDesign
	case PhaseTypeTesting:
		return DocTypeTesting
	default:
		return DocTypeOther
	}
}

// PhaseName returns the SDLC phase marked completed after a successful
// pipeline run for this phase type.
func (p PhaseType) PhaseName() PhaseName {
	switch p {
	case PhaseTypeRequirements:
		return PhaseRequirementsAnalysis
	case PhaseTypeDesign:
		return PhaseSystemDesign
	case PhaseTypeTesting:
		return PhaseTesting
	default:
		return ""
	}
}

// DocumentName returns the name under which the pipeline's result is
// persisted, e.g. "Requirements Document".
func (p PhaseType) DocumentName() string {
	return string(p.DocType()) + " Document"
}
