package models

import "testing"

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"not started is valid", StatusNotStarted, true},
		{"in progress is valid", StatusInProgress, true},
		{"completed is valid", StatusCompleted, true},
		{"delayed is valid", StatusDelayed, true},
		{"empty string is invalid", Status(""), false},
		{"lowercase is invalid", Status("completed"), false},
		{"unknown status is invalid", Status("Cancelled"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestTestStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status TestStatus
		want   bool
	}{
		{"not run is valid", TestStatusNotRun, true},
		{"passed is valid", TestStatusPassed, true},
		{"failed is valid", TestStatusFailed, true},
		{"empty string is invalid", TestStatus(""), false},
		{"project status is invalid", TestStatus("Completed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("TestStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestDocType_Valid(t *testing.T) {
	valid := []DocType{
		DocTypeRequirements, DocTypeDesign, DocTypeImplementation,
		DocTypeTesting, DocTypeUserManual, DocTypeOther,
	}
	for _, dt := range valid {
		if !dt.Valid() {
			t.Errorf("DocType(%q).Valid() = false, want true", dt)
		}
	}

	for _, dt := range []DocType{"", "requirements", "Spec"} {
		if dt.Valid() {
			t.Errorf("DocType(%q).Valid() = true, want false", dt)
		}
	}
}
