package store

import (
	"database/sql"
	"fmt"
	"time"

	"sdlcpilot/pkg/models"
)

// CreateDocument inserts a new document for a project and returns its ID.
func (db *DB) CreateDocument(projectID int64, name, content string, docType models.DocType) (int64, error) {
	now := formatTime(time.Now())
	res, err := db.Exec(`
		INSERT INTO documents (project_id, name, content, doc_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, projectID, name, content, string(docType), now, now)
	if err != nil {
		return 0, fmt.Errorf("create document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("document insert id: %w", err)
	}
	return id, nil
}

// GetDocument retrieves a document by ID. Returns nil if not found.
func (db *DB) GetDocument(id int64) (*models.Document, error) {
	row := db.QueryRow(`
		SELECT id, project_id, name, content, doc_type, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	var d models.Document
	var createdAt, updatedAt string
	err := row.Scan(&d.ID, &d.ProjectID, &d.Name, &d.Content, &d.Type, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	d.CreatedAt, _ = parseTime(createdAt)
	d.UpdatedAt, _ = parseTime(updatedAt)
	return &d, nil
}

// GetDocuments returns all documents for a project, most recently updated
// first. When several documents share a doc type, the first match in this
// order is the one pipelines consume as context.
func (db *DB) GetDocuments(projectID int64) ([]*models.Document, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, content, doc_type, created_at, updated_at
		FROM documents WHERE project_id = ? ORDER BY updated_at DESC, id DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		var d models.Document
		var createdAt, updatedAt string
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Name, &d.Content, &d.Type, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.CreatedAt, _ = parseTime(createdAt)
		d.UpdatedAt, _ = parseTime(updatedAt)
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}
