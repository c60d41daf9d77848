package session

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentpilot/core"
)

func TestBuildContextEmptyRecord(t *testing.T) {
	record := core.NewSessionRecord("sid-1")

	got := BuildContext(record)

	want := "Session ID: sid-1\n" +
		"Previous input: None\n" +
		"Previous response summary: None\n" +
		"Recent turns:\nNone\n" +
		"Plan objective: None\n" +
		"Completed steps: None\n" +
		"Pending steps: None\n" +
		"Failed steps: None"
	assert.Equal(t, want, got)
}

func TestBuildContextWithState(t *testing.T) {
	record := core.NewSessionRecord("sid-2")
	record.UpsertPlan("ship the report", []core.PlanStep{
		{Title: "gather data"},
		{Title: "analyze"},
		{Title: "write up"},
	})
	record.ApplyStepResults([]core.StepResult{
		{Title: "gather data", Status: core.StepCompleted, Result: "done"},
		{Title: "analyze", Status: core.StepFailed, Result: "api down"},
	})
	record.SetLastRun(core.RunSummary{UserInput: "first", Response: "one"})
	record.SetLastRun(core.RunSummary{UserInput: "second", Response: "two"})

	got := BuildContext(record)

	assert.Contains(t, got, "Session ID: sid-2")
	assert.Contains(t, got, "Previous input: second")
	assert.Contains(t, got, "Previous response summary: two")
	assert.Contains(t, got, "1. user=first | assistant=one")
	assert.Contains(t, got, "2. user=second | assistant=two")
	assert.Contains(t, got, "Plan objective: ship the report")
	assert.Contains(t, got, "Completed steps: gather data")
	assert.Contains(t, got, "Pending steps: write up")
	assert.Contains(t, got, "Failed steps: analyze")
}

func TestBuildContextTruncation(t *testing.T) {
	record := core.NewSessionRecord("sid-3")
	record.SetLastRun(core.RunSummary{
		UserInput: strings.Repeat("u", 300),
		Response:  strings.Repeat("r", 900),
	})

	got := BuildContext(record)

	// Previous response is cut to 500, history lines to 140/200.
	assert.Contains(t, got, "Previous response summary: "+strings.Repeat("r", 500)+"\n")
	assert.Contains(t, got, "1. user="+strings.Repeat("u", 140)+" | assistant="+strings.Repeat("r", 200))
}

func TestBuildContextMultibyteTruncation(t *testing.T) {
	record := core.NewSessionRecord("sid-5")

	// 301 characters but 601 bytes; the limit counts characters, so the
	// response must survive untruncated.
	short := "a" + strings.Repeat("ü", 300)
	record.SetLastRun(core.RunSummary{UserInput: "hi", Response: short})

	got := BuildContext(record)

	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, "Previous response summary: "+short+"\n")

	// Over the limit: cut at a rune boundary, never mid-rune.
	record.SetLastRun(core.RunSummary{UserInput: "hi", Response: strings.Repeat("ü", 600)})

	got = BuildContext(record)

	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, "Previous response summary: "+strings.Repeat("ü", 500)+"\n")
}

func TestBuildContextRecentTurnsWindow(t *testing.T) {
	record := core.NewSessionRecord("sid-4")
	for _, input := range []string{"one", "two", "three", "four", "five"} {
		record.SetLastRun(core.RunSummary{UserInput: input, Response: "ok"})
	}

	got := BuildContext(record)

	assert.NotContains(t, got, "user=one")
	assert.NotContains(t, got, "user=two")
	assert.Contains(t, got, "1. user=three")
	assert.Contains(t, got, "2. user=four")
	assert.Contains(t, got, "3. user=five")
}
