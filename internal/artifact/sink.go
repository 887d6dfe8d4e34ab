// Package artifact persists per-task pipeline outputs as audit files.
// Sink writes are a side channel: failures are reported but must never
// abort a pipeline run, and no component reads artifacts back.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Sink receives task outputs as named artifacts.
type Sink interface {
	Write(name, content string) error
}

// FileSink writes artifacts under a per-run directory.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink rooted at baseDir/<runID>, where runID is a
// short unique identifier for this pipeline run. The directory is created
// lazily on first write.
func NewFileSink(baseDir string) *FileSink {
	runID := uuid.New().String()[:8]
	return &FileSink{dir: filepath.Join(baseDir, runID)}
}

// Dir returns the run directory this sink writes into.
func (s *FileSink) Dir() string {
	return s.dir
}

// Write stores content under the sink's run directory.
func (s *FileSink) Write(name, content string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write artifact %s: %w", name, err)
	}
	return nil
}

// NopSink discards all artifacts.
type NopSink struct{}

// Write discards the artifact.
func (NopSink) Write(name, content string) error {
	return nil
}
