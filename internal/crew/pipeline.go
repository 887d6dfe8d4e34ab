package crew

import (
	"fmt"

	"sdlcpilot/pkg/models"
)

// Placeholder text substituted when a prerequisite document is missing.
// Pipelines always receive concrete text, never an empty string.
const (
	PlaceholderNoRequirements = "No requirements document available"
	PlaceholderNoDesign       = "No design document available"
)

// Inputs carries the live content substituted into pipeline instructions
// at build time. There is no re-fetch during execution.
type Inputs struct {
	ProjectName        string
	ProjectDescription string
	// RequirementsContent feeds the design and testing pipelines.
	RequirementsContent string
	// DesignContent feeds the testing pipeline.
	DesignContent string
}

// Pipeline is a fixed DAG of tasks with a single designated sink whose
// output is the pipeline's result.
type Pipeline struct {
	// PhaseType identifies which SDLC phase this pipeline serves.
	PhaseType models.PhaseType
	// Tasks lists every task in declaration order.
	Tasks []*Task
	// Sink is the terminal task whose output is the pipeline result.
	Sink *Task
}

// BuildPipeline constructs the canonical pipeline for a phase type with
// the given inputs substituted into instruction text.
func BuildPipeline(f *Factory, phase models.PhaseType, in Inputs) (*Pipeline, error) {
	switch phase {
	case models.PhaseTypeRequirements:
		return buildRequirementsPipeline(f, in)
	case models.PhaseTypeDesign:
		return buildDesignPipeline(f, in)
	case models.PhaseTypeTesting:
		return buildTestingPipeline(f, in)
	default:
		return nil, fmt.Errorf("no pipeline for phase type %q", phase)
	}
}

// buildRequirementsPipeline chains gather -> validate -> document.
func buildRequirementsPipeline(f *Factory, in Inputs) (*Pipeline, error) {
	analyst, err := f.Agent(PersonaBusinessAnalyst)
	if err != nil {
		return nil, err
	}
	expert, err := f.Agent(PersonaDomainExpert)
	if err != nil {
		return nil, err
	}
	documenter, err := f.Agent(PersonaRequirementsDocumenter)
	if err != nil {
		return nil, err
	}

	gather := &Task{
		ID: "gather-requirements",
		Description: fmt.Sprintf(
			"Gather requirements for project: %s\n\nProject Description: %s\n\n"+
				"Analyze the project description and identify all functional and non-functional requirements. "+
				"Consider user needs, system constraints, and business objectives. "+
				"Organize requirements into categories and prioritize them.",
			in.ProjectName, in.ProjectDescription),
		ExpectedOutput: "A comprehensive list of functional and non-functional requirements",
		Agent:          analyst,
		OutputFile:     "requirements.md",
	}

	validate := &Task{
		ID: "validate-requirements",
		Description: "Validate the gathered requirements against domain knowledge and best practices. " +
			"Review the requirements and ensure they are complete, consistent, and feasible. " +
			"Identify any conflicts, ambiguities, or missing requirements.",
		ExpectedOutput: "Validated requirements with domain-specific insights",
		Agent:          expert,
		Context:        []*Task{gather},
		OutputFile:     "validated_requirements.md",
	}

	document := &Task{
		ID: "document-requirements",
		Description: "Create a formal requirements document based on the validated requirements. " +
			"Organize the requirements into a structured document with clear sections. " +
			"Include user stories, acceptance criteria, and prioritization.",
		ExpectedOutput: "A structured requirements document with user stories, acceptance criteria, and prioritization",
		Agent:          documenter,
		// The terminal task sees every ancestor's output, not just its
		// direct predecessor.
		Context:    []*Task{gather, validate},
		OutputFile: "requirements_document.md",
	}

	return &Pipeline{
		PhaseType: models.PhaseTypeRequirements,
		Tasks:     []*Task{gather, validate, document},
		Sink:      document,
	}, nil
}

// buildDesignPipeline fans out from the architecture task into database
// and UI branches. The UI task is the designated sink; the database
// branch's output reaches the artifact sink but is not persisted as a
// document.
func buildDesignPipeline(f *Factory, in Inputs) (*Pipeline, error) {
	architect, err := f.Agent(PersonaSystemArchitect)
	if err != nil {
		return nil, err
	}
	dbDesigner, err := f.Agent(PersonaDatabaseDesigner)
	if err != nil {
		return nil, err
	}
	uiDesigner, err := f.Agent(PersonaUIDesigner)
	if err != nil {
		return nil, err
	}

	architecture := &Task{
		ID: "design-architecture",
		Description: fmt.Sprintf(
			"Design system architecture for project: %s\n\nRequirements: %s",
			in.ProjectName, in.RequirementsContent),
		ExpectedOutput: "A comprehensive system architecture document with component diagrams",
		Agent:          architect,
		OutputFile:     "architecture_document.md",
	}

	database := &Task{
		ID:             "design-database",
		Description:    "Design a database schema based on the system architecture.",
		ExpectedOutput: "A database schema with entity-relationship diagrams",
		Agent:          dbDesigner,
		Context:        []*Task{architecture},
		OutputFile:     "database_schema.md",
	}

	ui := &Task{
		ID: "design-ui",
		Description: fmt.Sprintf(
			"Create UI/UX designs based on the system architecture and requirements.\n\nRequirements: %s",
			in.RequirementsContent),
		ExpectedOutput: "UI/UX mockups and user flow diagrams",
		Agent:          uiDesigner,
		Context:        []*Task{architecture},
		OutputFile:     "ui_designs.md",
	}

	return &Pipeline{
		PhaseType: models.PhaseTypeDesign,
		Tasks:     []*Task{architecture, database, ui},
		Sink:      ui,
	}, nil
}

// buildTestingPipeline chains plan -> cases -> execute.
func buildTestingPipeline(f *Factory, in Inputs) (*Pipeline, error) {
	manager, err := f.Agent(PersonaTestManager)
	if err != nil {
		return nil, err
	}
	designer, err := f.Agent(PersonaTestDesigner)
	if err != nil {
		return nil, err
	}
	executor, err := f.Agent(PersonaTestExecutor)
	if err != nil {
		return nil, err
	}

	plan := &Task{
		ID: "create-test-plan",
		Description: fmt.Sprintf(
			"Create a test plan for project: %s\n\nRequirements: %s\n\nSystem Design: %s",
			in.ProjectName, in.RequirementsContent, in.DesignContent),
		ExpectedOutput: "A comprehensive test plan with testing strategy and schedule",
		Agent:          manager,
		OutputFile:     "test_plan.md",
	}

	cases := &Task{
		ID: "design-test-cases",
		Description: fmt.Sprintf(
			"Design test cases based on the test plan, requirements, and system design.\n\n"+
				"Requirements: %s\n\nSystem Design: %s",
			in.RequirementsContent, in.DesignContent),
		ExpectedOutput: "A set of detailed test cases with steps, expected results, and traceability to requirements",
		Agent:          designer,
		Context:        []*Task{plan},
		OutputFile:     "test_cases.md",
	}

	execute := &Task{
		ID:             "execute-tests",
		Description:    "Execute the test cases and report results.",
		ExpectedOutput: "Test execution results with pass/fail status and defect reports",
		Agent:          executor,
		Context:        []*Task{plan, cases},
		OutputFile:     "test_results.md",
	}

	return &Pipeline{
		PhaseType: models.PhaseTypeTesting,
		Tasks:     []*Task{plan, cases, execute},
		Sink:      execute,
	}, nil
}
