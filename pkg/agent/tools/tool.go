package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Tool represents a capability that an agent can use during execution.
// Tools are invoked by the LLM through JSON-formatted decisions and
// perform browser actions like navigation, typing, and reading pages.
//
// Example decision format from LLM:
//
//	{
//	  "action": "navigate_to_url",
//	  "action_input": "https://example.com"
//	}
type Tool interface {
	// Name returns the unique identifier for this tool (e.g., "read_page")
	Name() string

	// Description returns a human-readable description of what this tool does.
	// Descriptions are surfaced verbatim in the system prompt's tool catalog,
	// so they should tell the model what the input is expected to contain.
	Description() string

	// Execute runs the tool with the raw action_input from the decision and
	// returns an observation string. Errors returned here are recoverable:
	// the loop converts them to observations rather than aborting the task.
	Execute(ctx context.Context, input Input) (string, error)
}

// Input holds the raw action_input value from a parsed decision.
// The value may be a JSON string, number, object, or absent entirely,
// so tools use the accessor that matches the shape they expect.
type Input struct {
	raw json.RawMessage
}

// NewInput wraps a raw JSON value as a tool input
func NewInput(raw json.RawMessage) Input {
	return Input{raw: raw}
}

// NewTextInput wraps a plain string as a tool input
func NewTextInput(text string) Input {
	encoded, _ := json.Marshal(text)
	return Input{raw: encoded}
}

// IsEmpty reports whether no action_input was provided
func (in Input) IsEmpty() bool {
	trimmed := bytes.TrimSpace(in.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Raw returns the underlying JSON value
func (in Input) Raw() json.RawMessage {
	return in.raw
}

// Text returns the input as a plain string. JSON strings are unquoted,
// numbers and booleans are rendered as their literal text, and objects
// are returned as compact JSON.
func (in Input) Text() string {
	if in.IsEmpty() {
		return ""
	}

	var s string
	if err := json.Unmarshal(in.raw, &s); err == nil {
		return s
	}

	return string(bytes.TrimSpace(in.raw))
}

// Decode unmarshals a structured input into the given value
func (in Input) Decode(v interface{}) error {
	if in.IsEmpty() {
		return fmt.Errorf("action_input is empty")
	}
	if err := json.Unmarshal(in.raw, v); err != nil {
		return fmt.Errorf("failed to decode action_input: %w", err)
	}
	return nil
}

// Field extracts a named string field from an object-shaped input.
// Scalar fields are coerced to their string form.
func (in Input) Field(name string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(in.raw, &obj); err != nil {
		return "", false
	}

	raw, ok := obj[name]
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}

	return string(bytes.TrimSpace(raw)), true
}

// Registry holds the set of tools available to a single task.
// Lookup is by exact tool name. Registries are built once per task
// and read-only afterwards, so no locking is needed.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a registry containing the given tools.
// Registration order is preserved for prompt rendering.
func NewRegistry(toolList ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]Tool, len(toolList)),
	}
	for _, t := range toolList {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool to the registry
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the tool with the given name
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Catalog renders the "name: description" lines used in the system prompt
func (r *Registry) Catalog() string {
	var b strings.Builder
	for i, name := range r.order {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(r.tools[name].Description())
	}
	return b.String()
}
