package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage prompt pack versions",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompt pack versions",
	RunE:  runPromptsList,
}

var promptsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print a prompt template from the active version",
	Long: `Print the raw template for a prompt key. Placeholders are shown
literally.

Keys: router, mode_decider, planner, step_executor, synthesizer`,
	Args: cobra.ExactArgs(1),
	RunE: runPromptsShow,
}

var promptsSetCmd = &cobra.Command{
	Use:   "set <version>",
	Short: "Set the active prompt pack version",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsSet,
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsShowCmd)
	promptsCmd.AddCommand(promptsSetCmd)
}

func runPromptsShow(cmd *cobra.Command, args []string) error {
	pilot, _, err := loadPilot()
	if err != nil {
		return err
	}

	template, err := pilot.Orchestrator().Prompts().GetPrompt(args[0], nil)
	if err != nil {
		return err
	}
	fmt.Println(template)
	return nil
}

func runPromptsList(cmd *cobra.Command, args []string) error {
	pilot, _, err := loadPilot()
	if err != nil {
		return err
	}

	prompts := pilot.Orchestrator().Prompts()
	versions, err := prompts.ListVersions()
	if err != nil {
		return err
	}
	active, err := prompts.GetActiveVersion()
	if err != nil {
		return err
	}

	for _, version := range versions {
		if version == active {
			color.New(color.FgGreen).Printf("* %s\n", version)
		} else {
			fmt.Printf("  %s\n", version)
		}
	}
	return nil
}

func runPromptsSet(cmd *cobra.Command, args []string) error {
	pilot, _, err := loadPilot()
	if err != nil {
		return err
	}

	if err := pilot.Orchestrator().Prompts().SetActiveVersion(args[0]); err != nil {
		return err
	}
	color.New(color.FgGreen).Printf("Active prompt version set to %s\n", args[0])
	return nil
}
