// Package llm provides the abstraction over the external reasoning service
// (the "oracle") that decides the agent's next step.
//
// Example usage:
//
//	provider, err := openai.NewProvider(
//	    os.Getenv("OPENAI_API_KEY"),
//	    openai.WithModel("gpt-4o"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	msg, err := provider.Complete(ctx, []*types.Message{
//	    types.NewUserMessage("Hello!"),
//	})
package llm

import (
	"context"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/types"
)

// Provider defines the interface for LLM integrations.
//
// Providers handle API communication with LLM services and return plain
// messages. This keeps providers focused on the completion call without
// coupling them to agent-level decision parsing or history management.
//
// The agent layer is responsible for:
// - Building the prompt (system instructions, task, rendered history)
// - Parsing the returned free text into a structured decision
// - Deciding what happens after a failed call
type Provider interface {
	// Complete sends messages to the LLM and returns the full response.
	//
	// The call blocks until the model has produced its complete output or
	// the context is canceled. The agent loop issues exactly one Complete
	// call per iteration and only ever consumes the response whole, through
	// the decision parser, so there is no streaming variant.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// GetModelInfo returns information about the LLM model being used.
	GetModelInfo() *types.ModelInfo

	// GetModel returns the model name being used.
	GetModel() string
}
