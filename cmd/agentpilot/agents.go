package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List available agents",
	RunE:  runAgents,
}

func runAgents(cmd *cobra.Command, args []string) error {
	pilot, _, err := loadPilot()
	if err != nil {
		return err
	}

	descriptions := pilot.Orchestrator().Agents().Descriptions()
	ids := make([]string, 0, len(descriptions))
	for id := range descriptions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		color.New(color.FgCyan).Printf("%s\n", id)
		fmt.Printf("  %s\n", descriptions[id])
	}
	return nil
}
