package crew

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"sdlcpilot/pkg/models"
)

// memorySink collects artifact writes in memory.
type memorySink struct {
	mu     sync.Mutex
	writes map[string]string
	err    error
}

func newMemorySink() *memorySink {
	return &memorySink{writes: make(map[string]string)}
}

func (s *memorySink) Write(name, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.writes[name] = content
	return nil
}

func chainPipeline(gen *fakeGenerator) *Pipeline {
	f := NewFactory(gen, nil)
	a, _ := f.Agent(PersonaBusinessAnalyst)
	b, _ := f.Agent(PersonaDomainExpert)

	first := &Task{ID: "first", Description: "step one", Agent: a, OutputFile: "first.md"}
	second := &Task{ID: "second", Description: "step two", Agent: b, Context: []*Task{first}, OutputFile: "second.md"}

	return &Pipeline{
		PhaseType: models.PhaseTypeRequirements,
		Tasks:     []*Task{first, second},
		Sink:      second,
	}
}

func TestExecutorRun_ReturnsSinkOutput(t *testing.T) {
	gen := &fakeGenerator{respond: roleEcho}
	exec := NewExecutor(newMemorySink())

	out, err := exec.Run(context.Background(), chainPipeline(gen))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "[Domain Expert output]" {
		t.Errorf("Run output = %q, want sink task output", out)
	}
	if gen.callCount() != 2 {
		t.Errorf("expected 2 generation calls, got %d", gen.callCount())
	}
}

func TestExecutorRun_UpstreamOutputInContext(t *testing.T) {
	gen := &fakeGenerator{respond: roleEcho}
	exec := NewExecutor(nil)

	if _, err := exec.Run(context.Background(), chainPipeline(gen)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	second := gen.call(1)
	if !strings.Contains(second.Prompt, "--- Context from first ---\n[Business Analyst output]") {
		t.Errorf("downstream prompt missing upstream output: %q", second.Prompt)
	}
}

func TestExecutorRun_TerminalTaskSeesAllAncestors(t *testing.T) {
	gen := &fakeGenerator{respond: roleEcho}
	f := NewFactory(gen, nil)
	exec := NewExecutor(nil)

	p, err := BuildPipeline(f, models.PhaseTypeRequirements, Inputs{
		ProjectName:        "P",
		ProjectDescription: "D",
	})
	if err != nil {
		t.Fatalf("BuildPipeline failed: %v", err)
	}

	if _, err := exec.Run(context.Background(), p); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The first task's instruction carries the project identity; the
	// terminal prompt carries the outputs of both prior tasks.
	first := gen.call(0)
	if !strings.Contains(first.Prompt, "P") || !strings.Contains(first.Prompt, "D") {
		t.Error("gather prompt missing project name or description")
	}

	terminal := gen.call(2)
	if !strings.Contains(terminal.Prompt, "[Business Analyst output]") {
		t.Error("terminal prompt missing gather output")
	}
	if !strings.Contains(terminal.Prompt, "[Domain Expert output]") {
		t.Error("terminal prompt missing validate output")
	}
	gatherIdx := strings.Index(terminal.Prompt, "[Business Analyst output]")
	validateIdx := strings.Index(terminal.Prompt, "[Domain Expert output]")
	if gatherIdx > validateIdx {
		t.Error("ancestor outputs out of declaration order")
	}
}

func TestExecutorRun_WritesArtifacts(t *testing.T) {
	gen := &fakeGenerator{respond: roleEcho}
	sink := newMemorySink()
	exec := NewExecutor(sink)

	if _, err := exec.Run(context.Background(), chainPipeline(gen)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sink.writes["first.md"] != "[Business Analyst output]" {
		t.Errorf("first.md artifact = %q", sink.writes["first.md"])
	}
	if sink.writes["second.md"] != "[Domain Expert output]" {
		t.Errorf("second.md artifact = %q", sink.writes["second.md"])
	}
}

func TestExecutorRun_ArtifactFailureNotFatal(t *testing.T) {
	gen := &fakeGenerator{respond: roleEcho}
	sink := newMemorySink()
	sink.err = errors.New("disk full")
	exec := NewExecutor(sink)

	out, err := exec.Run(context.Background(), chainPipeline(gen))
	if err != nil {
		t.Fatalf("Run should survive artifact write failure, got %v", err)
	}
	if out == "" {
		t.Error("expected pipeline output despite artifact failure")
	}
}

func TestExecutorRun_FailureAbortsDownstream(t *testing.T) {
	genErr := errors.New("model unavailable")
	gen := &fakeGenerator{
		respond: func(system, prompt string) (string, error) {
			return "", genErr
		},
	}
	exec := NewExecutor(nil)

	_, err := exec.Run(context.Background(), chainPipeline(gen))

	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if ge.TaskID != "first" {
		t.Errorf("GenerationError task = %q, want first", ge.TaskID)
	}
	if ge.Role != "Business Analyst" {
		t.Errorf("GenerationError role = %q, want Business Analyst", ge.Role)
	}
	if !errors.Is(err, genErr) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if gen.callCount() != 1 {
		t.Errorf("downstream task ran after failure: %d calls", gen.callCount())
	}
}

func TestExecutorRun_NoSink(t *testing.T) {
	exec := NewExecutor(nil)
	p := &Pipeline{PhaseType: models.PhaseTypeRequirements}

	if _, err := exec.Run(context.Background(), p); err == nil {
		t.Error("expected error for pipeline without sink")
	}
}

func TestExecutorRun_InvalidGraph(t *testing.T) {
	f := NewFactory(&fakeGenerator{}, nil)
	a, _ := f.Agent(PersonaBusinessAnalyst)

	x := &Task{ID: "x", Agent: a}
	y := &Task{ID: "y", Agent: a}
	x.Context = []*Task{y}
	y.Context = []*Task{x}

	exec := NewExecutor(nil)
	p := &Pipeline{
		PhaseType: models.PhaseTypeRequirements,
		Tasks:     []*Task{x, y},
		Sink:      y,
	}

	_, err := exec.Run(context.Background(), p)
	if !errors.Is(err, ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected, got %v", err)
	}
}

func TestExecutorRun_TaskTimeout(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(system, prompt string) (string, error) {
			return "", fmt.Errorf("unreachable")
		},
	}
	// expired parent context trips the fake's ctx check before respond
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := NewExecutor(nil, WithTaskTimeout(10*time.Millisecond))

	_, err := exec.Run(ctx, chainPipeline(gen))

	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GenerationError on cancelled context, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled cause, got %v", ge.Err)
	}
}
