package tool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolNames(tools []Tool) []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name()
	}
	return names
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	t.Run("group members in declared order", func(t *testing.T) {
		tools, err := r.Resolve(nil, []string{"core"})
		require.NoError(t, err)
		assert.Equal(t, []string{"web_search", "calculator", "web_scrape"}, toolNames(tools))
	})

	t.Run("groups then names, deduplicated", func(t *testing.T) {
		tools, err := r.Resolve([]string{"daily_quote", "calculator"}, []string{"analysis_plus_api"})
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"web_search", "calculator", "web_scrape", "bank_account_api", "daily_quote"},
			toolNames(tools))
	})

	t.Run("unknown group is a hard error", func(t *testing.T) {
		_, err := r.Resolve(nil, []string{"nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown tool group")
	})

	t.Run("unknown tool is a hard error", func(t *testing.T) {
		_, err := r.Resolve([]string{"nope"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown tool")
	})
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t,
		[]string{"bank_account_api", "calculator", "daily_quote", "web_scrape", "web_search"},
		toolNames(r.List()))
}

func TestWebSearchTool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"results":["one"]}`))
	}))
	defer srv.Close()

	search := NewWebSearchTool(srv.Client(), srv.URL)
	result, err := search.Execute(context.Background(), map[string]any{"query": "golang"})
	require.NoError(t, err)
	assert.Contains(t, result, "results")
}

func TestWebSearchToolReportsFailureInResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	search := NewWebSearchTool(srv.Client(), srv.URL)
	result, err := search.Execute(context.Background(), map[string]any{"query": "golang"})
	require.NoError(t, err)
	assert.Contains(t, result, "web_search tool failed")
}

func TestDailyQuoteTool(t *testing.T) {
	quote := NewDailyQuoteTool()
	result, err := quote.Execute(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.NotEmpty(t, result)
}
