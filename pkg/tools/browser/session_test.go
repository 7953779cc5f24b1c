package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/tools"
)

// closedSession builds a session whose resources were already released
func closedSession() *Session {
	return &Session{state: StateClosed, opts: SessionOptions{}.withDefaults()}
}

func TestSessionGuardsWhenNotActive(t *testing.T) {
	s := closedSession()

	assert.EqualError(t, s.Search("query"), ErrNotRunning)
	assert.EqualError(t, s.Navigate("https://example.com"), ErrNotRunning)
	assert.EqualError(t, s.Fill("#input", "text"), ErrNotRunning)
	assert.EqualError(t, s.Click("#button"), ErrNotRunning)

	_, err := s.ReadPage()
	assert.EqualError(t, err, ErrNotRunning)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s := &Session{state: StateActive}

	require.NoError(t, s.Close())
	assert.Equal(t, StateClosed, s.State())

	// Further closes are no-ops
	require.NoError(t, s.Close())
	assert.Equal(t, StateClosed, s.State())
}

func TestSessionCurrentURLWhenClosed(t *testing.T) {
	assert.Empty(t, closedSession().CurrentURL())
}

func TestToolsAgainstClosedSession(t *testing.T) {
	registry, err := NewRegistry(closedSession())
	require.NoError(t, err)

	ctx := context.Background()
	for _, name := range []string{"google_search", "navigate_to_url", "click_element", "read_current_page_content"} {
		tool, ok := registry.Lookup(name)
		require.True(t, ok, name)

		_, execErr := tool.Execute(ctx, tools.NewTextInput("https://example.com"))
		require.Error(t, execErr, name)
		assert.Contains(t, execErr.Error(), ErrNotRunning, name)
	}

	typeTool, ok := registry.Lookup("type_text")
	require.True(t, ok)
	_, execErr := typeTool.Execute(ctx, tools.NewInput([]byte(`{"css_selector": "#q", "text": "hi"}`)))
	require.Error(t, execErr)
	assert.Contains(t, execErr.Error(), ErrNotRunning)
}

func TestRegistryToolNames(t *testing.T) {
	registry, err := NewRegistry(closedSession())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"google_search",
		"navigate_to_url",
		"type_text",
		"click_element",
		"read_current_page_content",
	}, registry.Names())
}
