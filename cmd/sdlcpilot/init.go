package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sdlcpilot/internal/config"
	"sdlcpilot/internal/store"
)

var (
	initForce        bool
	initDBPath       string
	initArtifactsDir string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the database, artifact directory, and config template",
	Long: `Set up everything needed to run sdlcpilot:
  - Creates the SQLite database and applies migrations
  - Creates the artifact output directory
  - Writes a .sdlcpilot.yaml template in the current directory

Examples:
  sdlcpilot init                       # Initialize with defaults
  sdlcpilot init --db ./projects.db    # Use a specific database path
  sdlcpilot init --force               # Overwrite an existing config template`,
	Args: cobra.NoArgs,
	RunE: runInitCmd,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing .sdlcpilot.yaml")
	initCmd.Flags().StringVar(&initDBPath, "db", "", "Database file path (default: user data directory)")
	initCmd.Flags().StringVar(&initArtifactsDir, "artifacts", "output", "Artifact output directory")

	rootCmd.AddCommand(initCmd)
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if initDBPath != "" {
		cfg.Database.Path = initDBPath
	}
	if initArtifactsDir != "" {
		cfg.Artifacts.Dir = initArtifactsDir
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = store.DefaultDBPath()
	}

	db, err := store.Open(dbPath)
	if err != nil {
		printInitStatus("✗", fmt.Sprintf("Database at %s", dbPath), color.FgRed)
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		printInitStatus("✗", "Database migrations", color.FgRed)
		return fmt.Errorf("migrate database: %w", err)
	}
	printInitStatus("✓", fmt.Sprintf("Database ready at %s", dbPath), color.FgGreen)

	if cfg.Artifacts.Dir != "" {
		if err := os.MkdirAll(cfg.Artifacts.Dir, 0755); err != nil {
			return fmt.Errorf("creating artifact directory: %w", err)
		}
		printInitStatus("✓", fmt.Sprintf("Artifact directory %s", cfg.Artifacts.Dir), color.FgGreen)
	}

	if err := writeProjectConfigTemplate(cfg); err != nil {
		return err
	}

	if os.Getenv("ANTHROPIC_API_KEY") == "" && cfg.Anthropic.APIKey == "" && !cfg.AWS.UseBedrock {
		printInitStatus("⚠", "ANTHROPIC_API_KEY not set (required before running pipelines)", color.FgYellow)
	} else {
		printInitStatus("✓", "Anthropic credentials found", color.FgGreen)
	}

	fmt.Printf("\n%s sdlcpilot is ready.\n\n", color.GreenString("✓"))
	fmt.Println("Next steps:")
	fmt.Println("  sdlcpilot project create \"My Project\"")
	fmt.Println("  sdlcpilot run requirements 1")
	fmt.Println("  sdlcpilot serve")
	return nil
}

// writeProjectConfigTemplate writes .sdlcpilot.yaml in the working
// directory unless one exists and --force was not given.
func writeProjectConfigTemplate(cfg *config.Config) error {
	path := ".sdlcpilot.yaml"
	if _, err := os.Stat(path); err == nil && !initForce {
		printInitStatus("✓", ".sdlcpilot.yaml exists (use --force to overwrite)", color.FgGreen)
		return nil
	}

	template := fmt.Sprintf(`# sdlcpilot project configuration
# Overrides defaults from %s

database:
  path: %q

artifacts:
  dir: %q

# anthropic:
#   model: claude-sonnet-4-20250514
#   max_tokens: 8192

# aws:
#   use_bedrock: true
#   region: us-east-1

# crew:
#   task_timeout: 10m
#   agents_file: agents.yaml
`, config.GetUserConfigPath(), cfg.Database.Path, cfg.Artifacts.Dir)

	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	printInitStatus("✓", fmt.Sprintf("Wrote config template %s", abs), color.FgGreen)
	return nil
}

// printInitStatus prints a status line with a colored glyph.
func printInitStatus(symbol, message string, attr color.Attribute) {
	c := color.New(attr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
