package models

import "testing"

func TestDefaultPhases(t *testing.T) {
	phases := DefaultPhases()

	if len(phases) != 6 {
		t.Fatalf("DefaultPhases() returned %d phases, want 6", len(phases))
	}

	wantOrder := []PhaseName{
		PhaseRequirementsAnalysis,
		PhaseSystemDesign,
		PhaseImplementation,
		PhaseTesting,
		PhaseDeployment,
		PhaseMaintenance,
	}
	for i, seed := range phases {
		if seed.Name != wantOrder[i] {
			t.Errorf("phase %d = %q, want %q", i, seed.Name, wantOrder[i])
		}
		if seed.Description == "" {
			t.Errorf("phase %q has empty description", seed.Name)
		}
	}
}

func TestPhaseName_Valid(t *testing.T) {
	for _, seed := range DefaultPhases() {
		if !seed.Name.Valid() {
			t.Errorf("PhaseName(%q).Valid() = false, want true", seed.Name)
		}
	}
	if PhaseName("Planning").Valid() {
		t.Error("PhaseName(\"Planning\").Valid() = true, want false")
	}
}
