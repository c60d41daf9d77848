package model

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	lastReq Request
	reply   string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, req Request) (string, error) {
	f.lastReq = req
	return f.reply, f.err
}

func TestDecodeDecision(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "bare object", text: `{"mode":"plan"}`, want: "plan"},
		{name: "fenced object", text: "```json\n{\"mode\":\"direct\"}\n```", want: "direct"},
		{name: "surrounded by prose", text: `I think {"mode":"plan"} fits best.`, want: "plan"},
		{name: "no object", text: "no json here", wantErr: true},
		{name: "malformed object", text: `{"mode":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Mode string `json:"mode"`
			}
			err := DecodeDecision(tt.text, &out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Mode)
		})
	}
}

func TestDecodeDecisionErrorKeepsValidUTF8(t *testing.T) {
	var out struct {
		Mode string `json:"mode"`
	}
	err := DecodeDecision(strings.Repeat("ü", 300), &out)

	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
}

func TestDecideViaGenerate(t *testing.T) {
	gen := &fakeGenerator{reply: `{"agent_id":"general_assistant","reasoning":"default"}`}

	var out struct {
		AgentID   string `json:"agent_id"`
		Reasoning string `json:"reasoning"`
	}
	err := DecideViaGenerate(context.Background(), gen, Request{Instructions: "pick an agent", Prompt: "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "general_assistant", out.AgentID)

	// The schema is appended to the caller's instructions.
	assert.True(t, strings.HasPrefix(gen.lastReq.Instructions, "pick an agent"))
	assert.Contains(t, gen.lastReq.Instructions, `"agent_id"`)
	assert.Contains(t, gen.lastReq.Instructions, `"reasoning"`)
}
