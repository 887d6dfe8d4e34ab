package crew

import (
	"context"
	"fmt"
	"time"

	"sdlcpilot/internal/artifact"
)

// Executor runs a pipeline's tasks to completion in dependency order.
// Execution is sequential: each task sees the finished outputs of every
// task reachable through its context chain.
type Executor struct {
	sink        artifact.Sink
	taskTimeout time.Duration
	logf        func(format string, args ...any)
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithTaskTimeout caps the wall-clock time of each task's generation
// call. Expiry is reported as a GenerationError. Zero means no cap.
func WithTaskTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.taskTimeout = d
	}
}

// WithLogf sets the debug log function.
func WithLogf(logf func(format string, args ...any)) ExecutorOption {
	return func(e *Executor) {
		e.logf = logf
	}
}

// NewExecutor creates an executor writing per-task artifacts to the given
// sink.
func NewExecutor(sink artifact.Sink, opts ...ExecutorOption) *Executor {
	e := &Executor{
		sink: sink,
		logf: func(format string, args ...any) {},
	}
	if e.sink == nil {
		e.sink = artifact.NopSink{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every task of the pipeline in a topological order and
// returns the sink task's output. The first task failure aborts the run:
// downstream tasks never execute with missing upstream output, and no
// partial result is returned.
func (e *Executor) Run(ctx context.Context, p *Pipeline) (string, error) {
	if p.Sink == nil {
		return "", fmt.Errorf("pipeline %s has no sink task", p.PhaseType)
	}

	g, err := newDepGraph(p.Tasks)
	if err != nil {
		return "", fmt.Errorf("build task graph for %s: %w", p.PhaseType, err)
	}

	for _, id := range g.topoOrder() {
		task := g.task(id)

		out, err := e.runTask(ctx, task)
		if err != nil {
			e.logf("[executor] task %s failed, aborting pipeline: %v", id, err)
			return "", &GenerationError{TaskID: task.ID, Role: task.Agent.Role, Err: err}
		}
		task.complete(out)
		e.logf("[executor] task %s completed (%d bytes)", id, len(out))

		if task.OutputFile != "" {
			if err := e.sink.Write(task.OutputFile, out); err != nil {
				// Artifacts are an audit side channel, never fatal.
				e.logf("[executor] artifact write for %s failed: %v", id, err)
			}
		}
	}

	return p.Sink.Output(), nil
}

// runTask executes a single task's generation call under the configured
// timeout.
func (e *Executor) runTask(ctx context.Context, task *Task) (string, error) {
	if e.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.taskTimeout)
		defer cancel()
	}

	e.logf("[executor] running task %s with agent %s", task.ID, task.Agent.Role)
	return task.Agent.Generate(ctx, task.Prompt())
}
