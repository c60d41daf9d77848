package tool

import (
	"fmt"
	"net/http"
	"sort"
	"time"
)

// RegistryOptions configure construction of the builtin tool registry.
type RegistryOptions struct {
	// HTTPClient is shared by the web backed tools.
	HTTPClient *http.Client
	// SearchBaseURL is the upstream endpoint for web_search.
	SearchBaseURL string
	// APIBaseURL is the base of the internal records API.
	APIBaseURL string
	// BankAPIToken authenticates bank_account_api calls when set.
	BankAPIToken string
}

// Registry maps tool names to implementations and group names to tool sets.
// Groups let agents opt into batches of related capabilities.
type Registry struct {
	tools  map[string]Tool
	groups map[string][]string
}

// NewRegistry builds the registry with all builtin tools registered under
// their standard groups.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		HTTPClient:    &http.Client{Timeout: 20 * time.Second},
		SearchBaseURL: "https://example.com/search",
		APIBaseURL:    "https://example.com/api",
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &Registry{
		tools: map[string]Tool{},
		groups: map[string][]string{
			"core":              {"web_search", "calculator", "web_scrape"},
			"analysis_plus_api": {"web_search", "calculator", "web_scrape", "bank_account_api"},
			"social":            {"daily_quote"},
		},
	}
	r.Register(NewCalculatorTool())
	r.Register(NewWebSearchTool(opts.HTTPClient, opts.SearchBaseURL))
	r.Register(NewWebScrapeTool(opts.HTTPClient))
	r.Register(NewBankAccountAPITool(opts.HTTPClient, opts.APIBaseURL, opts.BankAPIToken))
	r.Register(NewDailyQuoteTool())
	return r
}

// Register adds or replaces a tool by name.
func (r *Registry) Register(t Tool) { r.tools[t.Name()] = t }

// Get returns the named tool or an error if it is unknown.
func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return t, nil
}

// Resolve merges group members and explicit tool names into a deduplicated,
// order-preserving tool list. Group members come first, then explicit names.
// Unknown groups or tools are hard errors.
func (r *Registry) Resolve(toolNames, groupNames []string) ([]Tool, error) {
	var merged []string
	for _, group := range groupNames {
		members, ok := r.groups[group]
		if !ok {
			return nil, fmt.Errorf("unknown tool group: %s", group)
		}
		merged = append(merged, members...)
	}
	merged = append(merged, toolNames...)

	seen := map[string]bool{}
	var resolved []Tool
	for _, name := range merged {
		if seen[name] {
			continue
		}
		seen[name] = true
		t, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, t)
	}
	return resolved, nil
}

// ListGroups returns the group membership map with group names sorted.
func (r *Registry) ListGroups() map[string][]string {
	out := make(map[string][]string, len(r.groups))
	for name, members := range r.groups {
		out[name] = append([]string(nil), members...)
	}
	return out
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	tools := make([]Tool, len(names))
	for i, name := range names {
		tools[i] = r.tools[name]
	}
	return tools
}
