// Package prompt loads versioned prompt packs and supports safe rollback by
// switching the active version. A pack is a JSON file under
// <dir>/versions/<version>.json with a top-level "prompts" map; the active
// version is tracked in <dir>/active_version.txt.
package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Known prompt keys used by the orchestrator.
const (
	KeyRouter       = "router"
	KeyModeDecider  = "mode_decider"
	KeyPlanner      = "planner"
	KeyStepExecutor = "step_executor"
	KeySynthesizer  = "synthesizer"
)

type pack struct {
	Prompts map[string]string `json:"prompts"`
}

// Manager resolves prompt templates from versioned packs on disk.
type Manager struct {
	baseDir     string
	versionsDir string
	activeFile  string
	override    string

	mu    sync.Mutex
	cache map[string]*pack
}

// ManagerOption customizes a Manager at construction time.
type ManagerOption func(*Manager)

// WithVersionOverride pins the active version, bypassing the pointer file.
func WithVersionOverride(version string) ManagerOption {
	return func(m *Manager) { m.override = strings.TrimSpace(version) }
}

// NewManager creates a Manager rooted at baseDir. If the versions directory
// does not exist yet it is created and seeded with the embedded default pack.
func NewManager(baseDir string, optFns ...ManagerOption) (*Manager, error) {
	m := &Manager{
		baseDir:     baseDir,
		versionsDir: filepath.Join(baseDir, "versions"),
		activeFile:  filepath.Join(baseDir, "active_version.txt"),
		cache:       map[string]*pack{},
	}
	for _, fn := range optFns {
		fn(m)
	}
	if err := m.ensureLayout(); err != nil {
		return nil, err
	}
	return m, nil
}

// ensureLayout creates the versions directory and materializes the embedded
// default pack when no packs exist yet.
func (m *Manager) ensureLayout() error {
	if err := os.MkdirAll(m.versionsDir, 0o755); err != nil {
		return fmt.Errorf("create prompt versions dir: %w", err)
	}
	versions, err := m.ListVersions()
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		path := filepath.Join(m.versionsDir, defaultVersion+".json")
		if err := os.WriteFile(path, defaultPack, 0o644); err != nil {
			return fmt.Errorf("seed default prompt pack: %w", err)
		}
	}
	return nil
}

// ListVersions returns the available pack versions sorted lexically.
func (m *Manager) ListVersions() ([]string, error) {
	entries, err := os.ReadDir(m.versionsDir)
	if err != nil {
		return nil, fmt.Errorf("read prompt versions dir: %w", err)
	}
	var versions []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		versions = append(versions, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(versions)
	return versions, nil
}

// GetActiveVersion resolves the active version: override first, then the
// pointer file, then the first available version (writing the pointer).
func (m *Manager) GetActiveVersion() (string, error) {
	if m.override != "" {
		return m.override, nil
	}

	if raw, err := os.ReadFile(m.activeFile); err == nil {
		if version := strings.TrimSpace(string(raw)); version != "" {
			return version, nil
		}
	}

	versions, err := m.ListVersions()
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no prompt versions found")
	}
	defaultVer := versions[0]
	if err := os.WriteFile(m.activeFile, []byte(defaultVer), 0o644); err != nil {
		return "", fmt.Errorf("write active version file: %w", err)
	}
	return defaultVer, nil
}

// SetActiveVersion switches the active version. Unknown versions are rejected.
func (m *Manager) SetActiveVersion(version string) error {
	versions, err := m.ListVersions()
	if err != nil {
		return err
	}
	known := false
	for _, v := range versions {
		if v == version {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown prompt version: %s", version)
	}
	if err := os.WriteFile(m.activeFile, []byte(version), 0o644); err != nil {
		return fmt.Errorf("write active version file: %w", err)
	}
	return nil
}

func (m *Manager) loadVersion(version string) (*pack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cached, ok := m.cache[version]; ok {
		return cached, nil
	}

	path := filepath.Join(m.versionsDir, version+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt pack %s: %w", version, err)
	}
	var p pack
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode prompt pack %s: %w", version, err)
	}
	if p.Prompts == nil {
		return nil, fmt.Errorf("invalid prompt pack format in %s", path)
	}
	m.cache[version] = &p
	return &p, nil
}

// GetPrompt resolves the template for key from the active pack and
// substitutes {name} placeholders from variables. Unresolved placeholders are
// kept as-is so missing optional fields never crash a request.
func (m *Manager) GetPrompt(key string, variables map[string]any) (string, error) {
	version, err := m.GetActiveVersion()
	if err != nil {
		return "", err
	}
	p, err := m.loadVersion(version)
	if err != nil {
		return "", err
	}
	template, ok := p.Prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in version %q", key, version)
	}
	return safeFormat(template, variables), nil
}

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

func safeFormat(template string, variables map[string]any) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := variables[name]; ok {
			return fmt.Sprintf("%v", value)
		}
		return match
	})
}
