package crew

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Persona keys used by the built-in pipelines.
const (
	PersonaBusinessAnalyst        = "business_analyst"
	PersonaDomainExpert           = "domain_expert"
	PersonaRequirementsDocumenter = "requirements_documenter"
	PersonaSystemArchitect        = "system_architect"
	PersonaDatabaseDesigner       = "database_designer"
	PersonaUIDesigner             = "ui_designer"
	PersonaTestManager            = "test_manager"
	PersonaTestDesigner           = "test_designer"
	PersonaTestExecutor           = "test_executor"
)

// Persona describes an agent's role, goal, and backstory.
type Persona struct {
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
}

// DefaultPersonas returns the built-in personas for all pipeline agents.
func DefaultPersonas() map[string]Persona {
	return map[string]Persona{
		PersonaBusinessAnalyst: {
			Role:      "Business Analyst",
			Goal:      "Understand business needs and translate them into system requirements",
			Backstory: "You are an experienced business analyst with expertise in gathering and analyzing business requirements. You excel at interviewing stakeholders, identifying pain points, and documenting clear requirements.",
		},
		PersonaDomainExpert: {
			Role:      "Domain Expert",
			Goal:      "Provide domain-specific knowledge and validate requirements",
			Backstory: "You have deep knowledge of the business domain and can provide insights into industry-specific requirements, regulations, and best practices.",
		},
		PersonaRequirementsDocumenter: {
			Role:      "Requirements Documenter",
			Goal:      "Create clear, comprehensive requirements documentation",
			Backstory: "You specialize in documenting requirements in a clear, structured format that can be easily understood by all stakeholders.",
		},
		PersonaSystemArchitect: {
			Role:      "System Architect",
			Goal:      "Design a robust, scalable system architecture",
			Backstory: "You are a skilled system architect with experience in designing complex systems.",
		},
		PersonaDatabaseDesigner: {
			Role:      "Database Designer",
			Goal:      "Design an efficient, normalized database schema",
			Backstory: "You specialize in database design and optimization.",
		},
		PersonaUIDesigner: {
			Role:      "UI/UX Designer",
			Goal:      "Create intuitive, user-friendly interface designs",
			Backstory: "You are an experienced UI/UX designer focused on creating engaging user experiences.",
		},
		PersonaTestManager: {
			Role:      "Test Manager",
			Goal:      "Plan and coordinate testing activities",
			Backstory: "You are an experienced test manager with expertise in test planning and coordination.",
		},
		PersonaTestDesigner: {
			Role:      "Test Case Designer",
			Goal:      "Design comprehensive test cases",
			Backstory: "You specialize in creating test cases that thoroughly validate system functionality.",
		},
		PersonaTestExecutor: {
			Role:      "Test Executor",
			Goal:      "Execute test cases and report results",
			Backstory: "You are detail-oriented and skilled at executing test cases and identifying defects.",
		},
	}
}

// LoadPersonas reads persona overrides from a YAML file keyed by persona
// name. Missing fields in an override fall back to the default persona.
func LoadPersonas(path string) (map[string]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personas file: %w", err)
	}

	var overrides map[string]Persona
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse personas file: %w", err)
	}

	defaults := DefaultPersonas()
	for key, p := range overrides {
		if def, ok := defaults[key]; ok {
			if p.Role == "" {
				p.Role = def.Role
			}
			if p.Goal == "" {
				p.Goal = def.Goal
			}
			if p.Backstory == "" {
				p.Backstory = def.Backstory
			}
			overrides[key] = p
		}
	}
	return overrides, nil
}
