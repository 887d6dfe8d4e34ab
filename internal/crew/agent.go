// Package crew implements the document-generation pipelines for the three
// SDLC phases that delegate to LLM agent crews: requirements, design, and
// testing. A pipeline is a fixed DAG of tasks; each task is executed by a
// role-scoped agent, and each completed task's output feeds the context of
// the tasks that depend on it.
package crew

import (
	"context"
	"fmt"

	"sdlcpilot/internal/llm"
)

// Agent is a role-scoped text-generation worker.
type Agent struct {
	// Role is the agent's job title, e.g. "Business Analyst".
	Role string
	// Goal states what the agent works toward.
	Goal string
	// Backstory frames the agent's expertise.
	Backstory string

	gen llm.Generator
}

// SystemPrompt builds the role context sent with every generation call.
func (a *Agent) SystemPrompt() string {
	return fmt.Sprintf("You are a %s. %s\n\nYour goal: %s", a.Role, a.Backstory, a.Goal)
}

// Generate runs one generation call in this agent's role context.
func (a *Agent) Generate(ctx context.Context, prompt string) (string, error) {
	return a.gen.Generate(ctx, a.SystemPrompt(), prompt)
}

// Factory constructs agents bound to a shared generation capability.
// Construction is pure: no side effects beyond wiring the generator.
type Factory struct {
	gen      llm.Generator
	personas map[string]Persona
}

// NewFactory creates an agent factory. Overrides replace the default
// persona for matching keys; unknown keys in overrides are added as-is.
func NewFactory(gen llm.Generator, overrides map[string]Persona) *Factory {
	personas := DefaultPersonas()
	for key, p := range overrides {
		personas[key] = p
	}
	return &Factory{gen: gen, personas: personas}
}

// Agent returns a new agent for the named persona.
func (f *Factory) Agent(key string) (*Agent, error) {
	p, ok := f.personas[key]
	if !ok {
		return nil, fmt.Errorf("unknown agent persona %q", key)
	}
	return &Agent{
		Role:      p.Role,
		Goal:      p.Goal,
		Backstory: p.Backstory,
		gen:       f.gen,
	}, nil
}
