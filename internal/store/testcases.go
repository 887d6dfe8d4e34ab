package store

import (
	"database/sql"
	"fmt"
	"strings"

	"sdlcpilot/pkg/models"
)

// CreateTestCase inserts a new test case for a project and returns its ID.
func (db *DB) CreateTestCase(projectID int64, name, description, expectedResult string) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO test_cases (project_id, name, description, expected_result, status)
		VALUES (?, ?, ?, ?, ?)
	`, projectID, name, description, expectedResult, string(models.TestStatusNotRun))
	if err != nil {
		return 0, fmt.Errorf("create test case: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("test case insert id: %w", err)
	}
	return id, nil
}

// GetTestCases returns all test cases for a project in creation order.
func (db *DB) GetTestCases(projectID int64) ([]*models.TestCase, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, description, expected_result, actual_result, status
		FROM test_cases WHERE project_id = ? ORDER BY id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list test cases: %w", err)
	}
	defer rows.Close()

	var cases []*models.TestCase
	for rows.Next() {
		var tc models.TestCase
		var actual sql.NullString
		if err := rows.Scan(&tc.ID, &tc.ProjectID, &tc.Name, &tc.Description, &tc.ExpectedResult, &actual, &tc.Status); err != nil {
			return nil, fmt.Errorf("scan test case: %w", err)
		}
		tc.ActualResult = actual.String
		cases = append(cases, &tc)
	}
	return cases, rows.Err()
}

// TestCaseUpdate describes a partial update to a test case. Nil fields are
// left untouched.
type TestCaseUpdate struct {
	ActualResult *string
	Status       *models.TestStatus
}

// UpdateTestCase records execution results for a test case. A no-field
// update is a no-op.
func (db *DB) UpdateTestCase(id int64, u TestCaseUpdate) error {
	var sets []string
	var args []any

	if u.ActualResult != nil {
		sets = append(sets, "actual_result = ?")
		args = append(args, *u.ActualResult)
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE test_cases SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := db.Exec(query, args...); err != nil {
		return fmt.Errorf("update test case: %w", err)
	}
	return nil
}
