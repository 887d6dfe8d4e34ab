package crew

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPersonas_Complete(t *testing.T) {
	personas := DefaultPersonas()

	keys := []string{
		PersonaBusinessAnalyst,
		PersonaDomainExpert,
		PersonaRequirementsDocumenter,
		PersonaSystemArchitect,
		PersonaDatabaseDesigner,
		PersonaUIDesigner,
		PersonaTestManager,
		PersonaTestDesigner,
		PersonaTestExecutor,
	}

	for _, key := range keys {
		p, ok := personas[key]
		if !ok {
			t.Errorf("persona %q missing", key)
			continue
		}
		if p.Role == "" || p.Goal == "" || p.Backstory == "" {
			t.Errorf("persona %q has empty fields: %+v", key, p)
		}
	}
}

func TestLoadPersonas_OverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	data := `business_analyst:
  role: Senior Business Analyst
test_executor:
  role: QA Engineer
  goal: Run every test twice
  backstory: You are meticulous about regression coverage.
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write personas file: %v", err)
	}

	personas, err := LoadPersonas(path)
	if err != nil {
		t.Fatalf("LoadPersonas failed: %v", err)
	}

	analyst := personas[PersonaBusinessAnalyst]
	if analyst.Role != "Senior Business Analyst" {
		t.Errorf("analyst role = %q, want override", analyst.Role)
	}
	// Unspecified fields fall back to the built-in persona.
	if analyst.Goal != DefaultPersonas()[PersonaBusinessAnalyst].Goal {
		t.Errorf("analyst goal = %q, want default", analyst.Goal)
	}

	executor := personas[PersonaTestExecutor]
	if executor.Role != "QA Engineer" || executor.Goal != "Run every test twice" {
		t.Errorf("executor override not applied: %+v", executor)
	}
}

func TestLoadPersonas_MissingFile(t *testing.T) {
	if _, err := LoadPersonas(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing personas file")
	}
}

func TestLoadPersonas_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	if err := os.WriteFile(path, []byte("role: [unclosed"), 0644); err != nil {
		t.Fatalf("write personas file: %v", err)
	}

	if _, err := LoadPersonas(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestFactoryAgent_UnknownPersona(t *testing.T) {
	f := NewFactory(&fakeGenerator{}, nil)

	if _, err := f.Agent("warlock"); err == nil {
		t.Error("expected error for unknown persona key")
	}
}

func TestFactoryAgent_Overrides(t *testing.T) {
	f := NewFactory(&fakeGenerator{}, map[string]Persona{
		PersonaBusinessAnalyst: {Role: "Product Owner", Goal: "Own the backlog", Backstory: "You prioritize ruthlessly."},
	})

	agent, err := f.Agent(PersonaBusinessAnalyst)
	if err != nil {
		t.Fatalf("Agent failed: %v", err)
	}
	if agent.Role != "Product Owner" {
		t.Errorf("agent role = %q, want override", agent.Role)
	}
}

func TestAgentSystemPrompt(t *testing.T) {
	agent := &Agent{
		Role:      "Business Analyst",
		Goal:      "Understand business needs",
		Backstory: "You are an experienced analyst.",
	}

	prompt := agent.SystemPrompt()
	if !strings.HasPrefix(prompt, "You are a Business Analyst. ") {
		t.Errorf("system prompt missing role preamble: %q", prompt)
	}
	if !strings.Contains(prompt, "Your goal: Understand business needs") {
		t.Errorf("system prompt missing goal: %q", prompt)
	}
}
