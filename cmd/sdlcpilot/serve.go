package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sdlcpilot/internal/artifact"
	"sdlcpilot/internal/config"
	"sdlcpilot/internal/crew"
	"sdlcpilot/internal/llm"
	"sdlcpilot/internal/store"
	"sdlcpilot/internal/web"

	"github.com/anthropics/anthropic-sdk-go"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	Long: `Serve the dashboard API over HTTP.

Endpoints cover project, phase, task, document, and test case
management plus POST /api/projects/:id/run/:phase to launch a
pipeline. Prometheus metrics are exposed at /metrics.

Pipeline runs need LLM credentials. Without them the server still
starts, but the run endpoint answers 503.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	runner, err := buildRunner(cfg, db)
	if err != nil {
		fmt.Printf("Pipeline runner disabled: %v\n", err)
	}

	server := web.NewServer(db, runner)

	fmt.Printf("Serving dashboard API on %s\n", cfg.Server.Addr)
	return server.Run(cfg.Server.Addr)
}

// buildRunner wires the crew manager, or reports why it cannot.
func buildRunner(cfg *config.Config, db *store.DB) (web.Runner, error) {
	apiKey, err := config.GetAPIKey(cfg)
	if err != nil && !cfg.AWS.UseBedrock {
		return nil, err
	}

	client, err := llm.NewClient(llm.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        apiKey,
		UseAWSBedrock: cfg.AWS.UseBedrock,
		AWSRegion:     cfg.AWS.Region,
		AWSProfile:    cfg.AWS.Profile,
		MaxTokens:     cfg.Anthropic.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	personas := map[string]crew.Persona{}
	if cfg.Crew.AgentsFile != "" {
		personas, err = crew.LoadPersonas(cfg.Crew.AgentsFile)
		if err != nil {
			return nil, err
		}
	}

	var sink artifact.Sink = artifact.NopSink{}
	if cfg.Artifacts.Dir != "" {
		sink = artifact.NewFileSink(cfg.Artifacts.Dir)
	}

	logger, err := crew.NewDebugLogger(cfg.Crew.DebugLog)
	if err != nil {
		return nil, err
	}

	factory := crew.NewFactory(client, personas)
	exec := crew.NewExecutor(sink,
		crew.WithTaskTimeout(cfg.Crew.TaskTimeout),
		crew.WithLogf(logger.Log),
	)

	return crew.NewManager(db, factory, exec, crew.WithManagerLogf(logger.Log)), nil
}
