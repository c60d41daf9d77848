package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchema(t *testing.T) {
	type step struct {
		Title string `json:"title" description:"short label"`
	}
	type decision struct {
		Objective string `json:"objective"`
		Steps     []step `json:"steps"`
		Note      string `json:"note,omitempty"`
		hidden    int    //nolint:unused
	}

	schema := CreateSchema(&decision{})

	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "objective")
	assert.Contains(t, props, "steps")
	assert.Contains(t, props, "note")
	assert.NotContains(t, props, "hidden")

	steps, ok := props["steps"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", steps["type"])
	items, ok := steps["items"].(map[string]any)
	require.True(t, ok)
	itemProps, ok := items["properties"].(map[string]any)
	require.True(t, ok)
	title, ok := itemProps["title"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "short label", title["description"])

	required, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"objective", "steps"}, required)
}

func TestCreateSchemaNonStruct(t *testing.T) {
	schema := CreateSchema("not a struct")
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}
