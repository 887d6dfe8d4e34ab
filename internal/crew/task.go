package crew

import "strings"

// Task is one pipeline step: an instruction, the agent assigned to it, the
// expected-output contract, and the upstream tasks whose outputs feed its
// context. This is distinct from the SDLC work item tracked per phase.
type Task struct {
	// ID identifies the task within its pipeline.
	ID string
	// Description is the base instruction sent to the agent.
	Description string
	// ExpectedOutput states the contract for what the task should produce.
	ExpectedOutput string
	// Agent executes the task.
	Agent *Agent
	// Context lists upstream tasks. Their outputs are concatenated in
	// declaration order and appended to the instruction. A task with a
	// non-empty Context is not executable until all upstream tasks have
	// produced output.
	Context []*Task
	// OutputFile is an optional artifact name for the audit sink.
	OutputFile string

	output string
	done   bool
}

// Prompt assembles the final instruction text: base description, the
// expected-output contract, then each upstream output in Context order.
func (t *Task) Prompt() string {
	var sb strings.Builder
	sb.WriteString(t.Description)

	if t.ExpectedOutput != "" {
		sb.WriteString("\n\nExpected output: ")
		sb.WriteString(t.ExpectedOutput)
	}

	for _, up := range t.Context {
		sb.WriteString("\n\n--- Context from ")
		sb.WriteString(up.ID)
		sb.WriteString(" ---\n")
		sb.WriteString(up.output)
	}

	return sb.String()
}

// Output returns the task's result once it has executed.
func (t *Task) Output() string {
	return t.output
}

// Done reports whether the task has executed.
func (t *Task) Done() bool {
	return t.done
}

// complete records the task's output.
func (t *Task) complete(output string) {
	t.output = output
	t.done = true
}
