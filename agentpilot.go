// Package agentpilot provides a high-level façade over the orchestration
// engine and its collaborators (reasoning engine, agent and tool catalogs,
// prompt store, session persistence & logging). Most applications interact
// with this package by:
//  1. Creating an AgentPilot via New() (optionally overriding default services)
//     or FromConfig() to wire everything from a Config
//  2. Invoking requests synchronously (Invoke) or streaming typed progress
//     events (Stream)
//
// The façade delegates request execution to engine.Orchestrator while keeping
// setup ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a real reasoning engine,
// a durable session store and a structured logger.
package agentpilot

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/agentpilot/agent"
	"github.com/hupe1980/agentpilot/config"
	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/engine"
	"github.com/hupe1980/agentpilot/logging"
	"github.com/hupe1980/agentpilot/model"
	anthropicengine "github.com/hupe1980/agentpilot/model/anthropic"
	openaiengine "github.com/hupe1980/agentpilot/model/openai"
	"github.com/hupe1980/agentpilot/prompt"
	"github.com/hupe1980/agentpilot/session"
	"github.com/hupe1980/agentpilot/tool"
)

// Options configures the AgentPilot instance.
type Options struct {
	// Engine is the reasoning engine. Defaults to a mock engine suitable
	// for local development and tests.
	Engine model.Engine

	// PromptDir is where prompt packs live. Defaults to ".agentpilot/prompts".
	PromptDir string

	// PromptVersion pins the prompt pack version, bypassing the active
	// version pointer when set.
	PromptVersion string

	// Agents is the agent catalog. Defaults to the builtin registry.
	Agents *agent.Registry

	// Tools is the tool catalog. Defaults to the builtin registry.
	Tools *tool.Registry

	// Store persists session records. Defaults to in-memory.
	Store session.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// DefaultPlanStepBudget applies when a request carries no budget.
	DefaultPlanStepBudget int
}

// AgentPilot is the high-level façade aggregating the orchestrator and its
// services.
type AgentPilot struct {
	opts         Options
	orchestrator *engine.Orchestrator
}

// New creates a new AgentPilot instance with optional overrides. Any unset
// service is initialized with a local default.
func New(optFns ...func(o *Options)) (*AgentPilot, error) {
	opts := Options{
		Engine:    model.NewMockEngine("local"),
		PromptDir: ".agentpilot/prompts",
		Agents:    agent.NewRegistry(),
		Tools:     tool.NewRegistry(),
		Store:     session.NewInMemoryStore(),
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var promptOpts []prompt.ManagerOption
	if opts.PromptVersion != "" {
		promptOpts = append(promptOpts, prompt.WithVersionOverride(opts.PromptVersion))
	}
	prompts, err := prompt.NewManager(opts.PromptDir, promptOpts...)
	if err != nil {
		return nil, fmt.Errorf("init prompt manager: %w", err)
	}

	orchestrator := engine.New(opts.Engine, prompts, func(o *engine.Options) {
		o.Agents = opts.Agents
		o.Tools = opts.Tools
		o.Store = opts.Store
		o.Logger = opts.Logger
		o.DefaultPlanStepBudget = opts.DefaultPlanStepBudget
	})

	return &AgentPilot{opts: opts, orchestrator: orchestrator}, nil
}

// FromConfig wires a complete AgentPilot from configuration: the provider
// selects the reasoning engine, the session backend selects persistence and
// the log settings build the structured logger.
func FromConfig(cfg *config.Config) (*AgentPilot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: "agentpilot",
	}).WithContext("provider", cfg.Provider)

	tools := tool.NewRegistry(func(o *tool.RegistryOptions) {
		o.SearchBaseURL = cfg.SearchBaseURL
		o.APIBaseURL = cfg.APIBaseURL
		o.BankAPIToken = cfg.BankAPIToken
	})

	return New(func(o *Options) {
		o.Engine = eng
		o.PromptDir = cfg.PromptDir
		o.PromptVersion = cfg.PromptVersion
		o.Tools = tools
		o.Store = store
		o.Logger = logger
		o.DefaultPlanStepBudget = cfg.DefaultPlanStepBudget
	})
}

func buildEngine(cfg *config.Config) (model.Engine, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openaiengine.NewEngine(func(o *openaiengine.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Temperature = cfg.Temperature
			o.MaxCompletionTokens = cfg.MaxTokens
		}), nil
	case config.ProviderAnthropic:
		return anthropicengine.NewEngine(func(o *anthropicengine.Options) {
			if cfg.Model != "" {
				o.Model = anthropic.Model(cfg.Model)
			}
			o.Temperature = cfg.Temperature
			o.MaxTokens = cfg.MaxTokens
		}), nil
	case config.ProviderMock:
		return model.NewMockEngine("mock"), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func buildStore(cfg *config.Config) (session.Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendFile:
		return session.NewFileStore(cfg.SessionDir)
	case config.SessionBackendSQLite:
		return session.NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.SessionBackend)
	}
}

// Orchestrator exposes the underlying engine for advanced use.
func (p *AgentPilot) Orchestrator() *engine.Orchestrator { return p.orchestrator }

// Invoke executes one request to completion and returns the final result.
func (p *AgentPilot) Invoke(ctx context.Context, req engine.Request) (*engine.Result, error) {
	return p.orchestrator.Invoke(ctx, req)
}

// Stream executes one request, delivering typed progress events on the
// returned channel. See engine.Orchestrator.Stream for ordering guarantees.
func (p *AgentPilot) Stream(ctx context.Context, req engine.Request) (<-chan core.StreamEvent, <-chan error) {
	return p.orchestrator.Stream(ctx, req)
}
