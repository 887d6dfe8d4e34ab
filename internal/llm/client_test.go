package llm

import (
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if c.Model() != anthropic.ModelClaudeSonnet4_20250514 {
		t.Errorf("default model = %q, want sonnet", c.Model())
	}
	if c.maxTokens != 8192 {
		t.Errorf("default maxTokens = %d, want 8192", c.maxTokens)
	}
}

func TestTranslateModelForBedrock(t *testing.T) {
	tests := []struct {
		name  string
		model anthropic.Model
		want  anthropic.Model
	}{
		{
			"known model is translated",
			anthropic.ModelClaudeSonnet4_20250514,
			"us.anthropic.claude-sonnet-4-20250514-v1:0",
		},
		{
			"bedrock format passes through",
			"us.anthropic.claude-sonnet-4-20250514-v1:0",
			"us.anthropic.claude-sonnet-4-20250514-v1:0",
		},
		{
			"unknown model passes through",
			"custom-model",
			"custom-model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateModelForBedrock(tt.model); got != tt.want {
				t.Errorf("translateModelForBedrock(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestTokenTracker(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(100, 50)
	tracker.Add(200, 100)

	in, out := tracker.Total()
	if in != 300 || out != 150 {
		t.Errorf("Total() = (%d, %d), want (300, 150)", in, out)
	}
	if tracker.Calls() != 2 {
		t.Errorf("Calls() = %d, want 2", tracker.Calls())
	}

	tracker.Reset()
	in, out = tracker.Total()
	if in != 0 || out != 0 || tracker.Calls() != 0 {
		t.Error("Reset did not clear tracker")
	}
}
