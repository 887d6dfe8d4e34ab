package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sdlcpilot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify sdlcpilot configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/sdlcpilot/config.yaml
Project-specific overrides can be placed in .sdlcpilot.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("anthropic.api_key: %s\n", config.MaskAPIKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", orUnset(cfg.Anthropic.Model))
	fmt.Printf("anthropic.max_tokens: %d\n", cfg.Anthropic.MaxTokens)
	fmt.Printf("aws.use_bedrock: %t\n", cfg.AWS.UseBedrock)
	fmt.Printf("aws.region: %s\n", orUnset(cfg.AWS.Region))
	fmt.Printf("aws.profile: %s\n", orUnset(cfg.AWS.Profile))
	fmt.Printf("database.path: %s\n", orUnset(cfg.Database.Path))
	fmt.Printf("artifacts.dir: %s\n", orUnset(cfg.Artifacts.Dir))
	fmt.Printf("server.addr: %s\n", cfg.Server.Addr)
	fmt.Printf("crew.task_timeout: %s\n", cfg.Crew.TaskTimeout)
	fmt.Printf("crew.agents_file: %s\n", orUnset(cfg.Crew.AgentsFile))
	fmt.Printf("crew.debug_log: %s\n", orUnset(cfg.Crew.DebugLog))
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		return config.MaskAPIKey(cfg.Anthropic.APIKey), nil
	case "anthropic.model":
		return orUnset(cfg.Anthropic.Model), nil
	case "anthropic.max_tokens":
		return strconv.FormatInt(cfg.Anthropic.MaxTokens, 10), nil
	case "aws.use_bedrock":
		return strconv.FormatBool(cfg.AWS.UseBedrock), nil
	case "aws.region":
		return orUnset(cfg.AWS.Region), nil
	case "aws.profile":
		return orUnset(cfg.AWS.Profile), nil
	case "database.path":
		return orUnset(cfg.Database.Path), nil
	case "artifacts.dir":
		return orUnset(cfg.Artifacts.Dir), nil
	case "server.addr":
		return cfg.Server.Addr, nil
	case "crew.task_timeout":
		return cfg.Crew.TaskTimeout.String(), nil
	case "crew.agents_file":
		return orUnset(cfg.Crew.AgentsFile), nil
	case "crew.debug_log":
		return orUnset(cfg.Crew.DebugLog), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "anthropic.max_tokens":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid max_tokens value: %s", value)
		}
		cfg.Anthropic.MaxTokens = n
	case "aws.use_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		cfg.AWS.UseBedrock = b
	case "aws.region":
		cfg.AWS.Region = value
	case "aws.profile":
		cfg.AWS.Profile = value
	case "database.path":
		cfg.Database.Path = value
	case "artifacts.dir":
		cfg.Artifacts.Dir = value
	case "server.addr":
		cfg.Server.Addr = value
	case "crew.task_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value: %s", value)
		}
		cfg.Crew.TaskTimeout = d
	case "crew.agents_file":
		cfg.Crew.AgentsFile = value
	case "crew.debug_log":
		cfg.Crew.DebugLog = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
