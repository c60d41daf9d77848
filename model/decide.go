package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/agentpilot/internal/util"
)

// generator is the subset of Engine needed to implement Decide on top of a
// plain text completion.
type generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// DecideViaGenerate implements structured decisions for providers without a
// native structured output mode. It derives a JSON schema from out's type,
// instructs the engine to answer with a single JSON object, and decodes the
// first object found in the reply.
func DecideViaGenerate(ctx context.Context, g generator, req Request, out any) error {
	schema := util.CreateSchema(out)
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal decision schema: %w", err)
	}

	instructions := req.Instructions
	if instructions != "" {
		instructions += "\n\n"
	}
	instructions += fmt.Sprintf(
		"Respond with a single JSON object matching this schema, with no surrounding prose:\n%s",
		string(schemaJSON),
	)

	raw, err := g.Generate(ctx, Request{Instructions: instructions, Prompt: req.Prompt})
	if err != nil {
		return fmt.Errorf("decision generation: %w", err)
	}
	return DecodeDecision(raw, out)
}

// DecodeDecision extracts the first JSON object embedded in text and decodes
// it into out. Models often wrap JSON in prose or code fences, so everything
// outside the outermost braces is ignored.
func DecodeDecision(text string, out any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("no JSON object found in decision output: %q", truncate(text, 200))
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), out); err != nil {
		return fmt.Errorf("decode decision output: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
