package models

// TestStatus represents the execution state of a test case.
type TestStatus string

const (
	TestStatusNotRun TestStatus = "Not Run"
	TestStatusPassed TestStatus = "Passed"
	TestStatusFailed TestStatus = "Failed"
)

// Valid returns true if the test status is a known value.
func (s TestStatus) Valid() bool {
	switch s {
	case TestStatusNotRun, TestStatusPassed, TestStatusFailed:
		return true
	default:
		return false
	}
}

// TestCase represents a tracked test case for a project.
type TestCase struct {
	// ID is the row identifier assigned by the store.
	ID int64 `json:"id"`
	// ProjectID is the owning project.
	ProjectID int64 `json:"project_id"`
	// Name is the test case title.
	Name string `json:"name"`
	// Description explains what the test verifies.
	Description string `json:"description"`
	// ExpectedResult is the outcome the test should produce.
	ExpectedResult string `json:"expected_result"`
	// ActualResult is the observed outcome, once the test has run.
	ActualResult string `json:"actual_result,omitempty"`
	// Status is the execution state.
	Status TestStatus `json:"status"`
}
