package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sdlcpilot/internal/artifact"
	"sdlcpilot/internal/config"
	"sdlcpilot/internal/crew"
	"sdlcpilot/internal/llm"
	"sdlcpilot/pkg/models"
)

var (
	runModel      string
	runBedrock    bool
	runArtifacts  string
	runAgentsFile string
	runDebugLog   string
)

var runCmd = &cobra.Command{
	Use:   "run <phase> <project-id>",
	Short: "Run an agent pipeline for a project phase",
	Long: `Run the agent pipeline for a phase and persist its document.

Phase must be one of: requirements, design, testing.

Each pipeline feeds the documents of earlier phases into its agents:
  requirements  uses only the project name and description
  design        uses the requirements document
  testing       uses the requirements and design documents

A missing prerequisite document produces a warning and the pipeline
runs with placeholder context. On success the generated document is
saved and the matching project phase is marked completed.`,
	Args: cobra.ExactArgs(2),
	RunE: runPipelineCmd,
}

func init() {
	runCmd.Flags().StringVar(&runModel, "model", "", "Claude model override")
	runCmd.Flags().BoolVar(&runBedrock, "bedrock", false, "Use AWS Bedrock instead of the Anthropic API")
	runCmd.Flags().StringVar(&runArtifacts, "artifacts", "", "Directory for per-task artifact output")
	runCmd.Flags().StringVar(&runAgentsFile, "agents", "", "YAML file with agent persona overrides")
	runCmd.Flags().StringVar(&runDebugLog, "debug-log", "", "File path for pipeline debug logging")
}

func runPipelineCmd(cmd *cobra.Command, args []string) error {
	phase, err := models.ParsePhaseType(args[0])
	if err != nil {
		return err
	}

	projectID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[1])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyRunFlags(cfg)

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	apiKey, err := config.GetAPIKey(cfg)
	if err != nil && !cfg.AWS.UseBedrock {
		return err
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
		return fmt.Errorf("create LLM client: %w", err)
	}

	logger, err := crew.NewDebugLogger(cfg.Crew.DebugLog)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer logger.Close()

	personas := map[string]crew.Persona{}
	if cfg.Crew.AgentsFile != "" {
		personas, err = crew.LoadPersonas(cfg.Crew.AgentsFile)
		if err != nil {
			return fmt.Errorf("load agent personas: %w", err)
		}
	}

	var sink artifact.Sink = artifact.NopSink{}
	if cfg.Artifacts.Dir != "" {
		sink = artifact.NewFileSink(cfg.Artifacts.Dir)
	}

	factory := crew.NewFactory(client, personas)
	exec := crew.NewExecutor(sink,
		crew.WithTaskTimeout(cfg.Crew.TaskTimeout),
		crew.WithLogf(logger.Log),
	)
	manager := crew.NewManager(db, factory, exec, crew.WithManagerLogf(logger.Log))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Running %s pipeline for project %d...\n", phase, projectID)

	content, err := manager.Run(ctx, phase, projectID)
	if err != nil {
		printRunError(err)
		os.Exit(1)
	}

	fmt.Printf("\n%s %s document saved for project %d.\n",
		color.GreenString("✓"), phase.DocType(), projectID)

	in, out := client.Tracker().Total()
	fmt.Printf("Tokens: %d in / %d out across %d calls (est. $%.4f)\n",
		in, out, client.Tracker().Calls(), client.Tracker().Cost())

	fmt.Println("\n" + content)
	return nil
}

// applyRunFlags overlays command-line flags onto the loaded config.
func applyRunFlags(cfg *config.Config) {
	if runModel != "" {
		cfg.Anthropic.Model = runModel
	}
	if runBedrock {
		cfg.AWS.UseBedrock = true
	}
	if runArtifacts != "" {
		cfg.Artifacts.Dir = runArtifacts
	}
	if runAgentsFile != "" {
		cfg.Crew.AgentsFile = runAgentsFile
	}
	if runDebugLog != "" {
		cfg.Crew.DebugLog = runDebugLog
	}
}

// printRunError prints the failure with its kind so scripts can tell
// configuration problems from generation problems.
func printRunError(err error) {
	var nf *crew.NotFoundError
	var ge *crew.GenerationError

	switch {
	case errors.As(err, &nf):
		fmt.Fprintf(os.Stderr, "%s not found: %v\n", color.RedString("✗"), nf)
	case errors.As(err, &ge):
		fmt.Fprintf(os.Stderr, "%s generation failed: %v\n", color.RedString("✗"), ge)
	case errors.Is(err, llm.ErrNotConfigured):
		fmt.Fprintf(os.Stderr, "%s configuration: %v\n", color.RedString("✗"), err)
	default:
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
	}
}
