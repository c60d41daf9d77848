package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEngineGenerate(t *testing.T) {
	eng := NewMockEngine("test-model")
	eng.AddResponse("hello", "world")

	out, err := eng.Generate(context.Background(), Request{Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "world", out)

	out, err = eng.Generate(context.Background(), Request{Prompt: "unknown"})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: unknown", out)
}

func TestMockEngineStream(t *testing.T) {
	eng := NewMockEngine("test-model")
	eng.AddResponse("hi", "ok!")

	notifCh, errCh := eng.Stream(context.Background(), Request{Prompt: "hi"})

	var deltas string
	var final string
	for n := range notifCh {
		switch n.Kind {
		case NotificationTextDelta:
			deltas += n.Text
		case NotificationFinalOutput:
			final = n.Text
		}
	}
	require.NoError(t, <-errCh)
	assert.Equal(t, "ok!", deltas)
	assert.Equal(t, "ok!", final)
}

func TestMockEngineStreamError(t *testing.T) {
	eng := NewMockEngine("test-model")
	eng.FailWith(errors.New("boom"))

	notifCh, errCh := eng.Stream(context.Background(), Request{Prompt: "hi"})
	for range notifCh { //nolint:revive // drain
	}
	err := <-errCh
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}

func TestMockEngineDecide(t *testing.T) {
	eng := NewMockEngine("test-model")
	eng.AddResponse("choose", `Sure, here you go: {"agent_id":"analysis_assistant","reasoning":"numbers"}`)

	var decision struct {
		AgentID   string `json:"agent_id"`
		Reasoning string `json:"reasoning"`
	}
	err := eng.Decide(context.Background(), Request{Prompt: "choose"}, &decision)
	require.NoError(t, err)
	assert.Equal(t, "analysis_assistant", decision.AgentID)
	assert.Equal(t, "numbers", decision.Reasoning)
}

func TestMockEngineInfo(t *testing.T) {
	eng := NewMockEngine("test-model")
	info := eng.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
}
