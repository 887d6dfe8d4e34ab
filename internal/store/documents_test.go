package store

import (
	"testing"

	"sdlcpilot/pkg/models"
)

func TestCreateDocument_AndGet(t *testing.T) {
	db := setupTestDB(t)

	projectID, err := db.CreateProject("P", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	id, err := db.CreateDocument(projectID, "Requirements Document", "the content", models.DocTypeRequirements)
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	d, err := db.GetDocument(id)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if d == nil {
		t.Fatal("GetDocument returned nil for existing document")
	}
	if d.Type != models.DocTypeRequirements {
		t.Errorf("Type = %q, want %q", d.Type, models.DocTypeRequirements)
	}
	if d.Content != "the content" {
		t.Errorf("Content = %q, want %q", d.Content, "the content")
	}
}

func TestGetDocuments_MostRecentlyUpdatedFirst(t *testing.T) {
	db := setupTestDB(t)

	projectID, err := db.CreateProject("P", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	// Two documents with the same doc type: the later one must come first
	// so pipelines consume the most recent as context.
	if _, err := db.CreateDocument(projectID, "old", "v1", models.DocTypeRequirements); err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	newer, err := db.CreateDocument(projectID, "new", "v2", models.DocTypeRequirements)
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	docs, err := db.GetDocuments(projectID)
	if err != nil {
		t.Fatalf("GetDocuments failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].ID != newer {
		t.Errorf("docs[0].ID = %d, want %d (most recent first)", docs[0].ID, newer)
	}
}

func TestGetDocuments_Empty(t *testing.T) {
	db := setupTestDB(t)

	projectID, err := db.CreateProject("P", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	docs, err := db.GetDocuments(projectID)
	if err != nil {
		t.Fatalf("GetDocuments failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents, want 0", len(docs))
	}
}
