package crew

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// genCall records one generation request seen by the fake generator.
type genCall struct {
	System string
	Prompt string
}

// fakeGenerator is a scripted llm.Generator for tests. Without a custom
// respond func it returns "output-N" for the Nth call.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   []genCall
	respond func(system, prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.calls = append(f.calls, genCall{System: system, Prompt: prompt})
	n := len(f.calls)
	f.mu.Unlock()

	if f.respond != nil {
		return f.respond(system, prompt)
	}
	return fmt.Sprintf("output-%d", n), nil
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGenerator) call(i int) genCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

// roleEcho responds with a stable token derived from the agent role in the
// system prompt, so tests can trace whose output landed where.
func roleEcho(system, prompt string) (string, error) {
	role := system
	if after, ok := strings.CutPrefix(system, "You are a "); ok {
		if dot := strings.Index(after, "."); dot >= 0 {
			role = after[:dot]
		}
	}
	return "[" + role + " output]", nil
}
