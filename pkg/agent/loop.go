// Package agent implements the think/act/observe decision loop that
// drives a task to completion. Each iteration asks the LLM for the next
// action, executes it against the tool registry, and feeds the resulting
// observation back into the conversation history.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/parser"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/prompts"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/tools"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/llm"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/llm/tokenizer"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/logging"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/types"
)

// State represents the loop's position in the think/act/observe cycle
type State string

const (
	// StateThinking means the loop is waiting on the LLM for a decision
	StateThinking State = "thinking"
	// StateActing means the loop is executing a tool
	StateActing State = "acting"
	// StateObserving means the loop is recording a tool result
	StateObserving State = "observing"
	// StateDone means the task finished with a final answer
	StateDone State = "done"
	// StateFailed means the task terminated without an answer
	StateFailed State = "failed"
)

const (
	// DefaultMaxIterations bounds think/act cycles per task
	DefaultMaxIterations = 15

	// DefaultMaxParseRetries bounds consecutive unparseable responses
	DefaultMaxParseRetries = 3
)

// Loop drives a single task through the think/act/observe cycle.
// A Loop is built per task and is not safe for concurrent use.
type Loop struct {
	provider        llm.Provider
	registry        *tools.Registry
	systemPrompt    string
	maxIterations   int
	maxParseRetries int
	requestTimeout  time.Duration
	logger          *logging.Logger
	tokenizer       *tokenizer.Tokenizer

	state   State
	history []*types.Message
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithMaxIterations sets the iteration bound
func WithMaxIterations(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.maxIterations = n
		}
	}
}

// WithMaxParseRetries sets the consecutive parse failure bound
func WithMaxParseRetries(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.maxParseRetries = n
		}
	}
}

// WithRequestTimeout bounds each individual completion call. Zero
// means no per-call bound beyond the task's own context.
func WithRequestTimeout(d time.Duration) LoopOption {
	return func(l *Loop) {
		l.requestTimeout = d
	}
}

// WithLogger sets the logger for loop diagnostics
func WithLogger(logger *logging.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithTokenizer enables prompt token counting in loop diagnostics
func WithTokenizer(tk *tokenizer.Tokenizer) LoopOption {
	return func(l *Loop) {
		l.tokenizer = tk
	}
}

// WithCustomInstructions appends extra instructions to the system prompt
func WithCustomInstructions(instructions string) LoopOption {
	return func(l *Loop) {
		l.systemPrompt = prompts.NewPromptBuilder().
			WithRegistry(l.registry).
			WithCustomInstructions(instructions).
			Build()
	}
}

// NewLoop creates a decision loop over the given provider and tool registry
func NewLoop(provider llm.Provider, registry *tools.Registry, opts ...LoopOption) *Loop {
	l := &Loop{
		provider:        provider,
		registry:        registry,
		systemPrompt:    prompts.NewPromptBuilder().WithRegistry(registry).Build(),
		maxIterations:   DefaultMaxIterations,
		maxParseRetries: DefaultMaxParseRetries,
		state:           StateThinking,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State returns the loop's current state
func (l *Loop) State() State {
	return l.state
}

// History returns the conversation history accumulated so far
func (l *Loop) History() []*types.Message {
	return l.history
}

// Result is the outcome of a completed task
type Result struct {
	// Answer is the model's final answer to the task
	Answer string

	// Iterations is the number of think/act cycles consumed
	Iterations int
}

// Run executes the loop until the model produces a final answer or a
// terminal condition is hit. Tool failures and malformed responses are
// recoverable: they become observations the model sees on its next turn.
// Only iteration exhaustion, repeated parse failures, provider errors,
// and context cancellation terminate the task.
func (l *Loop) Run(ctx context.Context, task string) (*Result, error) {
	l.state = StateThinking
	l.history = nil

	var errorContext string
	parseFailures := 0

	for iteration := 1; iteration <= l.maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			l.state = StateFailed
			return nil, ctx.Err()
		default:
		}

		decision, err := l.think(ctx, task, errorContext, iteration)
		if err != nil {
			var parseErr *parser.ParseError
			if !errors.As(err, &parseErr) {
				l.state = StateFailed
				return nil, err
			}

			parseFailures++
			l.logf("iteration %d: parse failure %d/%d: %v", iteration, parseFailures, l.maxParseRetries, parseErr)
			if parseFailures >= l.maxParseRetries {
				l.state = StateFailed
				return nil, fmt.Errorf("%w: %v", ErrUnparseableOutput, parseErr)
			}

			// The raw response is not recorded in history. The hint is
			// ephemeral and replaced on the next failure, so one bad
			// response cannot pollute later iterations.
			errorContext = parseErr.Hint()
			continue
		}

		parseFailures = 0
		errorContext = ""

		if decision.IsFinal() {
			l.state = StateDone
			answer := tools.NewInput(decision.Input).Text()
			l.logf("iteration %d: final answer", iteration)
			return &Result{Answer: answer, Iterations: iteration}, nil
		}

		observation := l.act(ctx, decision)
		if ctx.Err() != nil {
			l.state = StateFailed
			return nil, ctx.Err()
		}

		l.observe(decision, observation)
		l.state = StateThinking
	}

	l.state = StateFailed
	return nil, fmt.Errorf("%w (limit %d)", ErrIterationLimit, l.maxIterations)
}

// think asks the provider for the next decision
func (l *Loop) think(ctx context.Context, task, errorContext string, iteration int) (*parser.Decision, error) {
	messages := prompts.BuildMessages(l.systemPrompt, task, l.history, errorContext)

	if l.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.requestTimeout)
		defer cancel()
	}

	if l.tokenizer != nil {
		l.logf("iteration %d: sending %d messages (%d prompt tokens)", iteration, len(messages), l.tokenizer.CountMessagesTokens(messages))
	}

	response, err := l.provider.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return parser.Parse(response.Content)
}

// act executes the decided action and returns the observation.
// Unknown actions and tool errors produce observations, not failures.
func (l *Loop) act(ctx context.Context, decision *parser.Decision) string {
	l.state = StateActing

	tool, ok := l.registry.Lookup(decision.Action)
	if !ok {
		l.logf("unknown action %q", decision.Action)
		return fmt.Sprintf("Unknown action %q. Available actions: %s and %q.",
			decision.Action, joinNames(l.registry.Names()), parser.FinalAnswerAction)
	}

	result, err := tool.Execute(ctx, tools.NewInput(decision.Input))
	if err != nil {
		l.logf("action %q failed: %v", decision.Action, err)
		return fmt.Sprintf("Error: %v", err)
	}

	return result
}

// observe appends the decision and its observation to history
func (l *Loop) observe(decision *parser.Decision, observation string) {
	l.state = StateObserving

	// Re-encode the decision so history shows the canonical form the
	// model was asked to produce, not whatever prose surrounded it.
	encoded, err := json.Marshal(decision)
	if err != nil {
		encoded = []byte(fmt.Sprintf(`{"action":%q}`, decision.Action))
	}

	l.history = append(l.history, types.NewAssistantMessage(string(encoded)))
	l.history = append(l.history, types.NewUserMessage(prompts.FormatObservation(observation)))
}

func (l *Loop) logf(format string, v ...interface{}) {
	if l.logger != nil {
		l.logger.Debugf(format, v...)
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", n)
	}
	return out
}
