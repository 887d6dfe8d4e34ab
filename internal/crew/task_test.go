package crew

import (
	"strings"
	"testing"
)

func TestTaskPrompt_BaseOnly(t *testing.T) {
	task := &Task{
		ID:          "solo",
		Description: "Do the thing.",
	}

	if got := task.Prompt(); got != "Do the thing." {
		t.Errorf("Prompt() = %q, want bare description", got)
	}
}

func TestTaskPrompt_ExpectedOutput(t *testing.T) {
	task := &Task{
		ID:             "solo",
		Description:    "Do the thing.",
		ExpectedOutput: "A done thing",
	}

	want := "Do the thing.\n\nExpected output: A done thing"
	if got := task.Prompt(); got != want {
		t.Errorf("Prompt() = %q, want %q", got, want)
	}
}

func TestTaskPrompt_ContextOrder(t *testing.T) {
	first := &Task{ID: "first"}
	first.complete("first result")
	second := &Task{ID: "second"}
	second.complete("second result")

	task := &Task{
		ID:          "downstream",
		Description: "Combine the results.",
		Context:     []*Task{first, second},
	}

	prompt := task.Prompt()

	firstIdx := strings.Index(prompt, "--- Context from first ---\nfirst result")
	secondIdx := strings.Index(prompt, "--- Context from second ---\nsecond result")
	if firstIdx < 0 || secondIdx < 0 {
		t.Fatalf("context sections missing from prompt: %q", prompt)
	}
	if firstIdx > secondIdx {
		t.Error("context sections out of declaration order")
	}
}

func TestTaskComplete(t *testing.T) {
	task := &Task{ID: "t"}

	if task.Done() {
		t.Error("new task should not be done")
	}

	task.complete("result text")

	if !task.Done() {
		t.Error("completed task should be done")
	}
	if got := task.Output(); got != "result text" {
		t.Errorf("Output() = %q, want %q", got, "result text")
	}
}
