package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/tools"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/types"
)

// scriptedProvider replays a fixed sequence of model responses and
// records every message list it was called with
type scriptedProvider struct {
	responses []string
	err       error
	calls     [][]*types.Message
}

func (p *scriptedProvider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	p.calls = append(p.calls, messages)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.calls) > len(p.responses) {
		return nil, fmt.Errorf("scripted provider exhausted after %d responses", len(p.responses))
	}
	return types.NewAssistantMessage(p.responses[len(p.calls)-1]), nil
}

func (p *scriptedProvider) GetModelInfo() *types.ModelInfo {
	return &types.ModelInfo{Provider: "test", Name: "scripted"}
}

func (p *scriptedProvider) GetModel() string { return "scripted" }

// recordingTool captures its invocations and returns a fixed result
type recordingTool struct {
	name   string
	result string
	err    error
	inputs []string
}

func (rt *recordingTool) Name() string        { return rt.name }
func (rt *recordingTool) Description() string { return "test tool" }
func (rt *recordingTool) Execute(ctx context.Context, input tools.Input) (string, error) {
	rt.inputs = append(rt.inputs, input.Text())
	if rt.err != nil {
		return "", rt.err
	}
	return rt.result, nil
}

func newTestRegistry(t *testing.T, toolList ...tools.Tool) *tools.Registry {
	t.Helper()
	registry, err := tools.NewRegistry(toolList...)
	require.NoError(t, err)
	return registry
}

func TestRunImmediateFinalAnswer(t *testing.T) {
	tool := &recordingTool{name: "lookup"}
	provider := &scriptedProvider{responses: []string{
		`{"action": "Final Answer", "action_input": "42"}`,
	}}

	loop := NewLoop(provider, newTestRegistry(t, tool))
	result, err := loop.Run(context.Background(), "what is the answer")

	require.NoError(t, err)
	assert.Equal(t, "42", result.Answer)
	assert.Equal(t, 1, result.Iterations)
	assert.Empty(t, tool.inputs, "no tool should run when the first decision is final")
	assert.Equal(t, StateDone, loop.State())
}

func TestRunToolThenFinalAnswer(t *testing.T) {
	tool := &recordingTool{name: "lookup", result: "the page says hello"}
	provider := &scriptedProvider{responses: []string{
		`{"action": "lookup", "action_input": "hello"}`,
		`{"action": "Final Answer", "action_input": "it says hello"}`,
	}}

	loop := NewLoop(provider, newTestRegistry(t, tool))
	result, err := loop.Run(context.Background(), "read the page")

	require.NoError(t, err)
	assert.Equal(t, "it says hello", result.Answer)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, []string{"hello"}, tool.inputs)

	// The second call must show the model its own decision and the observation
	require.Len(t, provider.calls, 2)
	secondCall := provider.calls[1]
	var sawDecision, sawObservation bool
	for _, msg := range secondCall {
		if msg.Role == types.RoleAssistant && strings.Contains(msg.Content, `"lookup"`) {
			sawDecision = true
		}
		if msg.Role == types.RoleUser && strings.Contains(msg.Content, "Observation: the page says hello") {
			sawObservation = true
		}
	}
	assert.True(t, sawDecision, "history should contain the prior decision")
	assert.True(t, sawObservation, "history should contain the observation")
}

func TestRunUnknownActionRecovers(t *testing.T) {
	tool := &recordingTool{name: "lookup", result: "ok"}
	provider := &scriptedProvider{responses: []string{
		`{"action": "teleport", "action_input": "moon"}`,
		`{"action": "Final Answer", "action_input": "done"}`,
	}}

	loop := NewLoop(provider, newTestRegistry(t, tool))
	result, err := loop.Run(context.Background(), "task")

	require.NoError(t, err)
	assert.Equal(t, "done", result.Answer)

	// The unknown action becomes an observation listing what is available
	require.Len(t, provider.calls, 2)
	var observation string
	for _, msg := range provider.calls[1] {
		if msg.Role == types.RoleUser && strings.Contains(msg.Content, "Unknown action") {
			observation = msg.Content
		}
	}
	require.NotEmpty(t, observation)
	assert.Contains(t, observation, `"lookup"`)
	assert.Contains(t, observation, `"Final Answer"`)
}

func TestRunToolErrorBecomesObservation(t *testing.T) {
	tool := &recordingTool{name: "lookup", err: errors.New("element not found")}
	provider := &scriptedProvider{responses: []string{
		`{"action": "lookup", "action_input": "#missing"}`,
		`{"action": "Final Answer", "action_input": "gave up"}`,
	}}

	loop := NewLoop(provider, newTestRegistry(t, tool))
	result, err := loop.Run(context.Background(), "task")

	require.NoError(t, err, "tool errors must not terminate the task")
	assert.Equal(t, "gave up", result.Answer)

	var sawError bool
	for _, msg := range provider.calls[1] {
		if msg.Role == types.RoleUser && strings.Contains(msg.Content, "Error: element not found") {
			sawError = true
		}
	}
	assert.True(t, sawError, "the tool error should reach the model as an observation")
}

func TestRunParseFailureRetries(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"I think I should search for it.",
		"still not valid json",
		`{"action": "Final Answer", "action_input": "recovered"}`,
	}}

	loop := NewLoop(provider, newTestRegistry(t))
	result, err := loop.Run(context.Background(), "task")

	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Answer)
	require.Len(t, provider.calls, 3)

	// Retries carry a corrective hint but the garbage itself is never
	// recorded in history
	var sawHint bool
	for _, msg := range provider.calls[1] {
		if msg.Role == types.RoleUser && strings.Contains(msg.Content, "could not be parsed") {
			sawHint = true
		}
		assert.NotContains(t, msg.Content, "I think I should search for it.")
	}
	assert.True(t, sawHint)
}

func TestRunParseFailuresExhaust(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"garbage one",
		"garbage two",
		"garbage three",
	}}

	loop := NewLoop(provider, newTestRegistry(t), WithMaxParseRetries(3))
	_, err := loop.Run(context.Background(), "task")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseableOutput)
	assert.Equal(t, StateFailed, loop.State())
}

func TestRunIterationLimit(t *testing.T) {
	tool := &recordingTool{name: "lookup", result: "more data"}
	provider := &scriptedProvider{responses: []string{
		`{"action": "lookup", "action_input": "a"}`,
		`{"action": "lookup", "action_input": "b"}`,
		`{"action": "lookup", "action_input": "c"}`,
	}}

	loop := NewLoop(provider, newTestRegistry(t, tool), WithMaxIterations(3))
	_, err := loop.Run(context.Background(), "task")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIterationLimit)
	assert.Len(t, tool.inputs, 3)
	assert.Equal(t, StateFailed, loop.State())
}

func TestRunContextCancellation(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"action": "Final Answer", "action_input": "too late"}`,
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := NewLoop(provider, newTestRegistry(t))
	_, err := loop.Run(ctx, "task")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, provider.calls, "a canceled context should stop before the first completion")
}

func TestRunProviderErrorIsTerminal(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection refused")}

	loop := NewLoop(provider, newTestRegistry(t))
	_, err := loop.Run(context.Background(), "task")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, StateFailed, loop.State())
}
