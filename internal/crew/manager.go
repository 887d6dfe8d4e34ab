package crew

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"sdlcpilot/pkg/models"
)

// Repository is the project store surface the orchestrator consumes. The
// SQLite store implements it.
type Repository interface {
	// GetProject returns a project by ID, or nil if not found.
	GetProject(id int64) (*models.Project, error)
	// GetDocuments returns a project's documents, most recently updated first.
	GetDocuments(projectID int64) ([]*models.Document, error)
	// GetPhases returns a project's phases in creation order.
	GetPhases(projectID int64) ([]*models.Phase, error)
	// CreateDocument persists a new document and returns its ID.
	CreateDocument(projectID int64, name, content string, docType models.DocType) (int64, error)
	// UpdatePhaseStatus sets a phase's status.
	UpdatePhaseStatus(id int64, status models.Status) error
}

// Manager orchestrates pipeline runs: it resolves prerequisite documents,
// builds and executes the pipeline, persists the result as a document, and
// marks the corresponding phase completed. It is the only crew component
// with repository side effects.
type Manager struct {
	repo    Repository
	factory *Factory
	exec    *Executor
	logf    func(format string, args ...any)
	warnOut io.Writer

	mu       sync.Mutex
	inflight map[runKey]struct{}
}

// runKey identifies one in-flight pipeline run.
type runKey struct {
	projectID int64
	phase     models.PhaseType
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogf sets the debug log function.
func WithManagerLogf(logf func(format string, args ...any)) ManagerOption {
	return func(m *Manager) {
		m.logf = logf
	}
}

// WithWarnOutput redirects soft-prerequisite warnings. Defaults to stderr.
func WithWarnOutput(w io.Writer) ManagerOption {
	return func(m *Manager) {
		m.warnOut = w
	}
}

// NewManager creates a pipeline orchestrator.
func NewManager(repo Repository, factory *Factory, exec *Executor, opts ...ManagerOption) *Manager {
	m := &Manager{
		repo:     repo,
		factory:  factory,
		exec:     exec,
		logf:     func(format string, args ...any) {},
		warnOut:  os.Stderr,
		inflight: make(map[runKey]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run executes the pipeline for a phase type against a project and returns
// the generated document content. On success exactly one document is
// persisted and the matching phase, if present, is marked completed. On
// any generation failure nothing is persisted.
func (m *Manager) Run(ctx context.Context, phase models.PhaseType, projectID int64) (string, error) {
	if !phase.Valid() {
		return "", fmt.Errorf("invalid phase type %q", phase)
	}

	if err := m.acquire(phase, projectID); err != nil {
		return "", err
	}
	defer m.release(phase, projectID)

	project, err := m.repo.GetProject(projectID)
	if err != nil {
		return "", fmt.Errorf("fetch project: %w", err)
	}
	if project == nil {
		return "", &NotFoundError{Kind: "project", ID: projectID}
	}

	inputs, err := m.resolveInputs(phase, project)
	if err != nil {
		return "", err
	}

	pipeline, err := BuildPipeline(m.factory, phase, inputs)
	if err != nil {
		return "", fmt.Errorf("build %s pipeline: %w", phase, err)
	}

	m.logf("[manager] running %s pipeline for project %d (%s)", phase, project.ID, project.Name)
	content, err := m.exec.Run(ctx, pipeline)
	if err != nil {
		// GenerationError propagates unchanged; nothing was persisted.
		return "", err
	}

	if _, err := m.repo.CreateDocument(projectID, phase.DocumentName(), content, phase.DocType()); err != nil {
		return "", fmt.Errorf("persist %s document: %w", phase, err)
	}
	m.logf("[manager] %s document saved for project %d", phase, projectID)

	if err := m.completePhase(projectID, phase); err != nil {
		return "", err
	}

	return content, nil
}

// acquire registers an in-flight run, refusing a second concurrent run
// for the same project and phase type.
func (m *Manager) acquire(phase models.PhaseType, projectID int64) error {
	key := runKey{projectID: projectID, phase: phase}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inflight[key]; busy {
		return fmt.Errorf("%w: %s for project %d", ErrRunInProgress, phase, projectID)
	}
	m.inflight[key] = struct{}{}
	return nil
}

func (m *Manager) release(phase models.PhaseType, projectID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, runKey{projectID: projectID, phase: phase})
}

// resolveInputs gathers the pipeline's inputs: project identity plus any
// prerequisite document contents. A missing prerequisite is a soft
// warning; the pipeline proceeds with placeholder text.
func (m *Manager) resolveInputs(phase models.PhaseType, project *models.Project) (Inputs, error) {
	inputs := Inputs{
		ProjectName:        project.Name,
		ProjectDescription: project.Description,
	}

	if phase == models.PhaseTypeRequirements {
		return inputs, nil
	}

	docs, err := m.repo.GetDocuments(project.ID)
	if err != nil {
		return Inputs{}, fmt.Errorf("fetch documents: %w", err)
	}

	inputs.RequirementsContent = m.docContent(docs, models.DocTypeRequirements, PlaceholderNoRequirements, project.ID)
	if phase == models.PhaseTypeTesting {
		inputs.DesignContent = m.docContent(docs, models.DocTypeDesign, PlaceholderNoDesign, project.ID)
	}

	return inputs, nil
}

// docContent returns the content of the first document of the given type,
// or the placeholder if none exists. Documents arrive most recently
// updated first, so the first match is the newest.
func (m *Manager) docContent(docs []*models.Document, docType models.DocType, placeholder string, projectID int64) string {
	for _, d := range docs {
		if d.Type == docType {
			m.logf("[manager] using %s document %q for project %d", docType, d.Name, projectID)
			return d.Content
		}
	}
	fmt.Fprintf(m.warnOut, "Warning: no %s document found for project %d; pipeline will run with degraded context.\n", docType, projectID)
	m.logf("[manager] no %s document for project %d, substituting placeholder", docType, projectID)
	return placeholder
}

// completePhase marks the phase mapped to the phase type as completed. A
// missing phase is skipped silently; the document has already been saved.
func (m *Manager) completePhase(projectID int64, phase models.PhaseType) error {
	phases, err := m.repo.GetPhases(projectID)
	if err != nil {
		return fmt.Errorf("fetch phases: %w", err)
	}

	name := phase.PhaseName()
	for _, ph := range phases {
		if ph.Name == name {
			if err := m.repo.UpdatePhaseStatus(ph.ID, models.StatusCompleted); err != nil {
				return fmt.Errorf("complete phase %q: %w", name, err)
			}
			m.logf("[manager] phase %q marked completed for project %d", name, projectID)
			return nil
		}
	}

	m.logf("[manager] no phase named %q for project %d, skipping status update", name, projectID)
	return nil
}
