package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStepResults(t *testing.T) {
	plan := &Plan{
		Objective: "objective",
		Steps: []PlanStep{
			{Title: "first"},
			{Title: "second"},
			{Title: "third"},
		},
	}

	results := NewStepResults(plan)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, plan.Steps[i].Title, r.Title)
		assert.Equal(t, StepPending, r.Status)
		assert.Empty(t, r.Result)
	}
}

func TestAllCompleted(t *testing.T) {
	assert.False(t, AllCompleted(nil))
	assert.False(t, AllCompleted([]StepResult{}))

	assert.True(t, AllCompleted([]StepResult{
		{Title: "a", Status: StepCompleted},
		{Title: "b", Status: StepCompleted},
	}))

	assert.False(t, AllCompleted([]StepResult{
		{Title: "a", Status: StepCompleted},
		{Title: "b", Status: StepPending},
	}))

	assert.False(t, AllCompleted([]StepResult{
		{Title: "a", Status: StepFailed},
	}))
}

func TestTitlesByStatus(t *testing.T) {
	results := []StepResult{
		{Title: "a", Status: StepCompleted},
		{Title: "b", Status: StepFailed},
		{Title: "c", Status: StepCompleted},
		{Title: "d", Status: StepPending},
	}

	assert.Equal(t, []string{"a", "c"}, TitlesByStatus(results, StepCompleted))
	assert.Equal(t, []string{"b"}, TitlesByStatus(results, StepFailed))
	assert.Equal(t, []string{"d"}, TitlesByStatus(results, StepPending))
}
