package store

import (
	"testing"

	"sdlcpilot/pkg/models"
)

func TestCreateTestCase_AndUpdate(t *testing.T) {
	db := setupTestDB(t)

	projectID, err := db.CreateProject("P", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	id, err := db.CreateTestCase(projectID, "login works", "attempt login with valid creds", "user is logged in")
	if err != nil {
		t.Fatalf("CreateTestCase failed: %v", err)
	}

	cases, err := db.GetTestCases(projectID)
	if err != nil {
		t.Fatalf("GetTestCases failed: %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("got %d test cases, want 1", len(cases))
	}
	if cases[0].Status != models.TestStatusNotRun {
		t.Errorf("Status = %q, want %q", cases[0].Status, models.TestStatusNotRun)
	}
	if cases[0].ActualResult != "" {
		t.Errorf("ActualResult = %q, want empty", cases[0].ActualResult)
	}

	actual := "user logged in"
	status := models.TestStatusPassed
	if err := db.UpdateTestCase(id, TestCaseUpdate{ActualResult: &actual, Status: &status}); err != nil {
		t.Fatalf("UpdateTestCase failed: %v", err)
	}

	cases, err = db.GetTestCases(projectID)
	if err != nil {
		t.Fatalf("GetTestCases failed: %v", err)
	}
	if cases[0].Status != models.TestStatusPassed {
		t.Errorf("Status = %q, want %q", cases[0].Status, models.TestStatusPassed)
	}
	if cases[0].ActualResult != actual {
		t.Errorf("ActualResult = %q, want %q", cases[0].ActualResult, actual)
	}
}

func TestCreateTask_AndList(t *testing.T) {
	db := setupTestDB(t)

	projectID, err := db.CreateProjectWithPhases("P", "")
	if err != nil {
		t.Fatalf("CreateProjectWithPhases failed: %v", err)
	}
	phases, err := db.GetPhases(projectID)
	if err != nil {
		t.Fatalf("GetPhases failed: %v", err)
	}

	if _, err := db.CreateTask(phases[0].ID, "interview stakeholders", "collect needs", "alice", nil); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := db.CreateTask(phases[0].ID, "draft requirements", "", "", nil); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, err := db.GetTasks(phases[0].ID)
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].AssignedTo != "alice" {
		t.Errorf("AssignedTo = %q, want %q", tasks[0].AssignedTo, "alice")
	}
	if tasks[1].AssignedTo != "" {
		t.Errorf("AssignedTo = %q, want empty", tasks[1].AssignedTo)
	}
	if tasks[0].DueDate != nil {
		t.Errorf("DueDate = %v, want nil", tasks[0].DueDate)
	}
}
