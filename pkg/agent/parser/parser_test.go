package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantAction string
		wantInput  string
		wantErr    bool
	}{
		{
			name:       "bare JSON object",
			input:      `{"action": "google_search", "action_input": "weather in Amsterdam"}`,
			wantAction: "google_search",
			wantInput:  `"weather in Amsterdam"`,
		},
		{
			name: "fenced json block",
			input: "```json\n" +
				`{"action": "navigate_to_url", "action_input": "https://example.com"}` +
				"\n```",
			wantAction: "navigate_to_url",
			wantInput:  `"https://example.com"`,
		},
		{
			name: "fenced block without language tag",
			input: "```\n" +
				`{"action": "read_current_page_content", "action_input": ""}` +
				"\n```",
			wantAction: "read_current_page_content",
		},
		{
			name: "prose before and after the object",
			input: `I should look at the page first.
{"action": "read_current_page_content", "action_input": ""}
That will show me the results.`,
			wantAction: "read_current_page_content",
		},
		{
			name:       "object-shaped action_input",
			input:      `{"action": "type_text", "action_input": {"css_selector": "input[name='q']", "text": "golang"}}`,
			wantAction: "type_text",
			wantInput:  `{"css_selector": "input[name='q']", "text": "golang"}`,
		},
		{
			name:       "final answer",
			input:      `{"action": "Final Answer", "action_input": "The weather is sunny."}`,
			wantAction: "Final Answer",
		},
		{
			name:    "no JSON at all",
			input:   "I am not sure what to do next.",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			input:   `{"action": "google_search", "action_input": `,
			wantErr: true,
		},
		{
			name:    "missing action key",
			input:   `{"tool": "google_search", "action_input": "query"}`,
			wantErr: true,
		},
		{
			name:    "empty action value",
			input:   `{"action": "   ", "action_input": "query"}`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := Parse(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got decision %+v", decision)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("expected *ParseError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.Action != tt.wantAction {
				t.Errorf("expected action %q, got %q", tt.wantAction, decision.Action)
			}
			if tt.wantInput != "" && strings.TrimSpace(string(decision.Input)) != tt.wantInput {
				t.Errorf("expected input %s, got %s", tt.wantInput, decision.Input)
			}
		})
	}
}

func TestDecisionIsFinal(t *testing.T) {
	final := &Decision{Action: FinalAnswerAction}
	if !final.IsFinal() {
		t.Error("Final Answer decision should be final")
	}

	tool := &Decision{Action: "google_search"}
	if tool.IsFinal() {
		t.Error("tool decision should not be final")
	}
}

func TestParseErrorHint(t *testing.T) {
	_, err := Parse("no json here")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	hint := parseErr.Hint()
	if !strings.Contains(hint, "action") || !strings.Contains(hint, "action_input") {
		t.Errorf("hint should name the required keys, got %q", hint)
	}
}
