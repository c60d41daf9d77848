package session

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/agentpilot/core"
)

// BuildContext renders a session record into the compact text block injected
// into routing, planning and execution prompts. The format is stable; prompt
// templates reference its labeled lines.
func BuildContext(record *core.SessionRecord) string {
	var objective string
	var done, pending, failed []string
	if record.Plan != nil {
		objective = record.Plan.Objective
		for _, s := range record.Plan.Steps {
			switch s.Status {
			case core.StepCompleted:
				done = append(done, s.Title)
			case core.StepFailed:
				failed = append(failed, s.Title)
			default:
				pending = append(pending, s.Title)
			}
		}
	}

	var previousInput, previousResponse string
	if record.LastRun != nil {
		previousInput = record.LastRun.UserInput
		previousResponse = truncate(record.LastRun.Response, 500)
	}

	history := record.RunHistory
	if len(history) > 3 {
		history = history[len(history)-3:]
	}
	var recentLines []string
	for i, run := range history {
		recentLines = append(recentLines, fmt.Sprintf(
			"%d. user=%s | assistant=%s",
			i+1, truncate(run.UserInput, 140), truncate(run.Response, 200),
		))
	}

	return fmt.Sprintf(
		"Session ID: %s\n"+
			"Previous input: %s\n"+
			"Previous response summary: %s\n"+
			"Recent turns:\n%s\n"+
			"Plan objective: %s\n"+
			"Completed steps: %s\n"+
			"Pending steps: %s\n"+
			"Failed steps: %s",
		record.SessionID,
		orNone(previousInput),
		orNone(previousResponse),
		orNone(strings.Join(recentLines, "\n")),
		orNone(objective),
		orNone(strings.Join(done, ", ")),
		orNone(strings.Join(pending, ", ")),
		orNone(strings.Join(failed, ", ")),
	)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// truncate caps s at n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
