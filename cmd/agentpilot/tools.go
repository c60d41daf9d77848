package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect and run tools",
}

var toolsGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List tool groups and their members",
	RunE:  runToolsGroups,
}

var toolsRunCmd = &cobra.Command{
	Use:   "run <tool> [json-args]",
	Short: "Execute a single tool directly",
	Long: `Execute one tool with JSON encoded arguments, outside of any agent.

Examples:
  agentpilot tools run calculator '{"expression": "12 * (3 + 4)"}'
  agentpilot tools run daily_quote`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runToolsRun,
}

func init() {
	toolsCmd.AddCommand(toolsGroupsCmd)
	toolsCmd.AddCommand(toolsRunCmd)
}

func runToolsGroups(cmd *cobra.Command, args []string) error {
	pilot, _, err := loadPilot()
	if err != nil {
		return err
	}

	groups := pilot.Orchestrator().Tools().ListGroups()
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		color.New(color.FgCyan).Printf("%s\n", name)
		for _, toolName := range groups[name] {
			fmt.Printf("  %s\n", toolName)
		}
	}
	return nil
}

func runToolsRun(cmd *cobra.Command, args []string) error {
	pilot, _, err := loadPilot()
	if err != nil {
		return err
	}

	t, err := pilot.Orchestrator().Tools().Get(args[0])
	if err != nil {
		return err
	}

	toolArgs := map[string]any{}
	if len(args) > 1 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("parse tool arguments: %w", err)
		}
	}

	color.New(color.Faint).Printf("%s\n", t.ActionText())
	result, err := t.Execute(cmd.Context(), toolArgs)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}
