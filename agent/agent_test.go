package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeInstructions(t *testing.T) {
	t.Run("all sections in fixed order", func(t *testing.T) {
		spec := Spec{
			ID:           "tester",
			Role:         "QA persona",
			Backstory:    "Years of breaking things.",
			Goals:        []string{"Find bugs", "  ", "Report clearly"},
			Boundary:     "No production access.",
			Instructions: "Test everything.",
		}

		got := spec.RuntimeInstructions()

		want := "** Role **: QA persona\n\n" +
			"** Backstory **: Years of breaking things.\n\n" +
			"** Goals **:\n- Find bugs\n- Report clearly\n\n" +
			"** Operating boundaries **: No production access.\n\n" +
			"** Core instructions **: Test everything."
		assert.Equal(t, want, got)
	})

	t.Run("empty sections omitted", func(t *testing.T) {
		spec := Spec{Role: "Minimal", Instructions: "Do the thing."}
		got := spec.RuntimeInstructions()
		assert.NotContains(t, got, "Backstory")
		assert.NotContains(t, got, "Goals")
		assert.NotContains(t, got, "Operating boundaries")
		assert.Equal(t, 2, strings.Count(got, "** "))
	})

	t.Run("fully empty spec yields empty prompt", func(t *testing.T) {
		assert.Empty(t, Spec{}.RuntimeInstructions())
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.True(t, r.Has(DefaultAgentID))

	spec, err := r.Get("analysis_assistant")
	require.NoError(t, err)
	assert.Equal(t, []string{"analysis_plus_api"}, spec.ToolGroups)

	_, err = r.Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown agent")

	ids := make([]string, 0)
	for _, s := range r.List() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"analysis_assistant", "general_assistant", "lifestyle_guru", "skill_enhancer"}, ids)

	descs := r.Descriptions()
	assert.Equal(t, "General-purpose assistant for broad tasks", descs["general_assistant"])
}
