package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentpilot"
	"github.com/hupe1980/agentpilot/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "agentpilot",
	Short: "Agent routing and plan execution engine",
	Long: `AgentPilot routes natural language requests to specialized agents,
decides between a single direct pass and a decomposed multi-step plan,
executes plans under a step budget with partial-failure handling, and
keeps cross-turn session state.

Configuration is read from a config file, environment variables with the
AGENTPILOT_ prefix, or built-in defaults, in that order of precedence.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(promptsCmd)
}

// loadPilot builds the fully wired pilot from configuration. Shared by every
// command that needs an orchestrator.
func loadPilot() (*agentpilot.AgentPilot, *config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	pilot, err := agentpilot.FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return pilot, cfg, nil
}
