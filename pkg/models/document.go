package models

import "time"

// DocType categorizes a project document.
type DocType string

const (
	DocTypeRequirements   DocType = "Requirements"
	DocTypeDesign         DocType = "Design"
	DocTypeImplementation DocType = "Implementation"
	DocTypeTesting        DocType = "Testing"
	DocTypeUserManual     DocType = "User Manual"
	DocTypeOther          DocType = "Other"
)

// Valid returns true if the doc type is a known value.
func (t DocType) Valid() bool {
	switch t {
	case DocTypeRequirements, DocTypeDesign, DocTypeImplementation,
		DocTypeTesting, DocTypeUserManual, DocTypeOther:
		return true
	default:
		return false
	}
}

// Document represents a persisted text artifact for a project, either
// produced by a crew pipeline or entered manually.
type Document struct {
	// ID is the row identifier assigned by the store.
	ID int64 `json:"id"`
	// ProjectID is the owning project.
	ProjectID int64 `json:"project_id"`
	// Name is the document title.
	Name string `json:"name"`
	// Content is the document body.
	Content string `json:"content"`
	// Type categorizes the document.
	Type DocType `json:"doc_type"`
	// CreatedAt is when the document was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the document was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}
