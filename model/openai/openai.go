// Package openai provides an implementation of model.Engine using the OpenAI
// Chat Completions API (including streaming). It adapts AgentPilot's
// normalized Request into the SDK's message format and surfaces incremental
// output as model.Notification values.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/hupe1980/agentpilot/model"
)

// Options configure the OpenAI engine adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Engine wraps the OpenAI Chat Completions API behind the generic
// model.Engine interface.
type Engine struct {
	client *openai.Client
	opts   Options
}

// NewEngine creates a new OpenAI engine using the official client.
func NewEngine(optFns ...func(o *Options)) *Engine {
	client := openai.NewClient()
	return NewEngineFromClient(&client, optFns...)
}

// NewEngineFromClient creates a new OpenAI engine from an existing client.
func NewEngineFromClient(client *openai.Client, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{client: client, opts: opts}
}

func (e *Engine) buildParams(req model.Request) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	return openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               e.opts.Model,
		Temperature:         openai.Float(e.opts.Temperature),
		MaxCompletionTokens: openai.Int(e.opts.MaxCompletionTokens),
	}
}

// Generate implements a blocking completion.
func (e *Engine) Generate(ctx context.Context, req model.Request) (string, error) {
	resp, err := e.client.Chat.Completions.New(ctx, e.buildParams(req))
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream implements streaming generation, forwarding text deltas and a
// final output notification carrying the accumulated text.
func (e *Engine) Stream(ctx context.Context, req model.Request) (<-chan model.Notification, <-chan error) {
	out := make(chan model.Notification, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		stream := e.client.Chat.Completions.NewStreaming(ctx, e.buildParams(req))
		var textBuilder strings.Builder
		for stream.Next() {
			ck := stream.Current()
			for _, ch := range ck.Choices {
				if ch.Delta.Content != "" {
					textBuilder.WriteString(ch.Delta.Content)
					out <- model.Notification{Kind: model.NotificationTextDelta, Text: ch.Delta.Content}
				}
			}
		}
		if err := stream.Err(); err != nil {
			errCh <- fmt.Errorf("openai streaming error: %w", err)
			return
		}
		out <- model.Notification{Kind: model.NotificationFinalOutput, Text: textBuilder.String()}
	}()
	return out, errCh
}

// Decide implements structured decisions via a schema-guided completion.
func (e *Engine) Decide(ctx context.Context, req model.Request, out any) error {
	return model.DecideViaGenerate(ctx, e, req, out)
}

// Info returns metadata describing this OpenAI engine implementation.
func (e *Engine) Info() model.Info {
	return model.Info{
		Name:     e.opts.Model,
		Provider: "openai",
	}
}

var _ model.Engine = (*Engine)(nil)
