// Package parser extracts structured action decisions from raw LLM output.
//
// Models are instructed to respond with a single JSON object of the form
// {"action": "...", "action_input": ...}, but real responses arrive wrapped
// in markdown code fences, preceded by reasoning prose, or occasionally
// malformed. The parser tolerates the first two and reports the third.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// FinalAnswerAction is the reserved action name that terminates the task
// with the action_input as the task result.
const FinalAnswerAction = "Final Answer"

// Decision is a single parsed action from the model
type Decision struct {
	// Action is the tool name to invoke, or FinalAnswerAction
	Action string `json:"action"`

	// Input is the raw action_input value, kept unparsed because its
	// shape (string, object, number) depends on the target tool
	Input json.RawMessage `json:"action_input"`
}

// IsFinal reports whether this decision terminates the task
func (d *Decision) IsFinal() bool {
	return d.Action == FinalAnswerAction
}

// ParseError indicates the model output contained no usable decision.
// The loop feeds Hint back to the model as a corrective observation.
type ParseError struct {
	Output string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse action decision: %s", e.Reason)
}

// Hint returns a corrective instruction suitable for feeding back to the model
func (e *ParseError) Hint() string {
	return fmt.Sprintf("Your response could not be parsed (%s). Respond with a single JSON object containing \"action\" and \"action_input\" keys and nothing else.", e.Reason)
}

// jsonBlockRegex matches a fenced code block, optionally tagged as json,
// capturing the content between the fences.
var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Parse extracts an action decision from raw model output.
//
// Extraction order:
//  1. content of the first fenced code block, if any
//  2. otherwise the substring from the first '{' to the last '}'
//
// A response whose JSON decodes but lacks an "action" key is still a
// parse failure: there is no decision to act on.
func Parse(output string) (*Decision, error) {
	candidate := extractJSON(output)
	if candidate == "" {
		return nil, &ParseError{Output: output, Reason: "no JSON object found"}
	}

	var raw struct {
		Action *string         `json:"action"`
		Input  json.RawMessage `json:"action_input"`
	}
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, &ParseError{Output: output, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if raw.Action == nil {
		return nil, &ParseError{Output: output, Reason: "missing \"action\" key"}
	}

	action := strings.TrimSpace(*raw.Action)
	if action == "" {
		return nil, &ParseError{Output: output, Reason: "empty \"action\" value"}
	}

	return &Decision{
		Action: action,
		Input:  raw.Input,
	}, nil
}

// extractJSON pulls the most likely JSON payload out of raw model output
func extractJSON(output string) string {
	if match := jsonBlockRegex.FindStringSubmatch(output); len(match) > 1 {
		inner := strings.TrimSpace(match[1])
		if inner != "" {
			return inner
		}
	}

	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return strings.TrimSpace(output[start : end+1])
}
