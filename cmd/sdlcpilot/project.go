package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sdlcpilot/internal/config"
	"sdlcpilot/internal/store"
	"sdlcpilot/pkg/models"
)

var projectCreateDescription string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage tracked projects",
	Long: `Create and inspect SDLC projects.

Every new project starts with the six standard phases:
Requirements Analysis, System Design, Implementation, Testing,
Deployment, and Maintenance.`,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project with the six default phases",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project with its phases and documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

func init() {
	projectCreateCmd.Flags().StringVarP(&projectCreateDescription, "description", "d", "", "Project description")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
}

// openStore opens the project database from the configured path and
// applies pending migrations.
func openStore(cfg *config.Config) (*store.DB, error) {
	path := cfg.Database.Path
	if path == "" {
		path = store.DefaultDBPath()
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.CreateProjectWithPhases(args[0], projectCreateDescription)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	fmt.Printf("%s Created project %d: %s\n", color.GreenString("✓"), id, args[0])
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	projects, err := db.ListProjects()
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects. Run 'sdlcpilot project create <name>' to start.")
		return nil
	}

	for _, p := range projects {
		fmt.Printf("%4d  %-30s %s\n", p.ID, p.Name, statusString(p.Status))
	}
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	project, err := db.GetProject(id)
	if err != nil {
		return fmt.Errorf("fetch project: %w", err)
	}
	if project == nil {
		fmt.Fprintf(os.Stderr, "Project %d not found.\n", id)
		os.Exit(1)
	}

	fmt.Printf("%s (%s)\n", color.New(color.Bold).Sprint(project.Name), statusString(project.Status))
	if project.Description != "" {
		fmt.Printf("  %s\n", project.Description)
	}

	phases, err := db.GetPhases(id)
	if err != nil {
		return fmt.Errorf("fetch phases: %w", err)
	}

	fmt.Println("\nPhases:")
	for _, ph := range phases {
		fmt.Printf("  %4d  %-25s %s\n", ph.ID, string(ph.Name), statusString(ph.Status))
	}

	docs, err := db.GetDocuments(id)
	if err != nil {
		return fmt.Errorf("fetch documents: %w", err)
	}

	if len(docs) > 0 {
		fmt.Println("\nDocuments:")
		for _, d := range docs {
			fmt.Printf("  %4d  %-25s %s\n", d.ID, d.Name, string(d.Type))
		}
	}

	return nil
}

// statusString renders a lifecycle status with a colored glyph.
func statusString(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return color.GreenString("✓ %s", string(s))
	case models.StatusInProgress:
		return color.YellowString("● %s", string(s))
	case models.StatusDelayed:
		return color.RedString("⚠ %s", string(s))
	default:
		return color.New(color.Faint).Sprintf("○ %s", string(s))
	}
}
