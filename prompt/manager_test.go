package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePack(t *testing.T, dir, version, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "versions"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "versions", version+".json"), []byte(content), 0o644))
}

func TestManagerSeedsDefaultPack(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	versions, err := m.ListVersions()
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, versions)

	for _, key := range []string{KeyRouter, KeyModeDecider, KeyPlanner, KeyStepExecutor, KeySynthesizer} {
		got, err := m.GetPrompt(key, nil)
		require.NoError(t, err, key)
		assert.NotEmpty(t, got, key)
	}
}

func TestManagerActiveVersion(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "v1", `{"prompts":{"router":"one"}}`)
	writePack(t, dir, "v2", `{"prompts":{"router":"two"}}`)

	m, err := NewManager(dir)
	require.NoError(t, err)

	// First version becomes active and the pointer file is written.
	active, err := m.GetActiveVersion()
	require.NoError(t, err)
	assert.Equal(t, "v1", active)
	raw, err := os.ReadFile(filepath.Join(dir, "active_version.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(raw))

	require.NoError(t, m.SetActiveVersion("v2"))
	got, err := m.GetPrompt(KeyRouter, nil)
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	err = m.SetActiveVersion("v9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prompt version")
}

func TestManagerVersionOverride(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "v1", `{"prompts":{"router":"one"}}`)
	writePack(t, dir, "v2", `{"prompts":{"router":"two"}}`)

	m, err := NewManager(dir, WithVersionOverride("v2"))
	require.NoError(t, err)

	active, err := m.GetActiveVersion()
	require.NoError(t, err)
	assert.Equal(t, "v2", active)
}

func TestGetPromptUnknownKey(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "v1", `{"prompts":{"router":"one"}}`)

	m, err := NewManager(dir)
	require.NoError(t, err)

	_, err = m.GetPrompt("nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `prompt key "nope" not found`)
}

func TestManagerRejectsInvalidPack(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "v1", `{"something_else":true}`)

	m, err := NewManager(dir)
	require.NoError(t, err)

	_, err = m.GetPrompt(KeyRouter, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid prompt pack format")
}

func TestSafeFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]any
		want     string
	}{
		{
			name:     "replaces known placeholders",
			template: "Hello {name}, budget {budget}",
			vars:     map[string]any{"name": "world", "budget": 3},
			want:     "Hello world, budget 3",
		},
		{
			name:     "keeps unknown placeholders literal",
			template: "Objective: {objective}",
			vars:     map[string]any{},
			want:     "Objective: {objective}",
		},
		{
			name:     "ignores malformed braces",
			template: "a {1bad} b {} c",
			vars:     map[string]any{"1bad": "x"},
			want:     "a {1bad} b {} c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeFormat(tt.template, tt.vars))
		})
	}
}
