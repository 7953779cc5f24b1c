package prompts

import (
	"fmt"
	"strings"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/tools"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/types"
)

// PromptBuilder constructs the system prompt for the agent loop
type PromptBuilder struct {
	registry           *tools.Registry
	customInstructions string
}

// NewPromptBuilder creates a new prompt builder with default settings
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// WithRegistry sets the available tools for the agent
func (pb *PromptBuilder) WithRegistry(registry *tools.Registry) *PromptBuilder {
	pb.registry = registry
	return pb
}

// WithCustomInstructions adds custom user-provided instructions
// These are instructions from the end user, not the base system prompt
func (pb *PromptBuilder) WithCustomInstructions(instructions string) *PromptBuilder {
	pb.customInstructions = instructions
	return pb
}

// Build constructs the complete system prompt by assembling all sections
func (pb *PromptBuilder) Build() string {
	var builder strings.Builder

	builder.WriteString(SystemRolePrompt)
	builder.WriteString("\n\n")

	if pb.registry != nil && len(pb.registry.Names()) > 0 {
		builder.WriteString("AVAILABLE TOOLS\n\n")
		builder.WriteString(pb.registry.Catalog())
		builder.WriteString("\n\n")
	}

	builder.WriteString(ResponseFormatPrompt)
	builder.WriteString("\n\n")

	builder.WriteString(BehaviorRulesPrompt)

	if pb.customInstructions != "" {
		builder.WriteString("\n\nADDITIONAL INSTRUCTIONS\n\n")
		builder.WriteString(pb.customInstructions)
	}

	return builder.String()
}

// BuildMessages creates the complete message list for one think step:
// system prompt, task statement, conversation history, and an optional
// ephemeral error context. The error context is passed to the model for
// this call only and is never stored in history, so a recovered mistake
// does not keep resurfacing in later iterations.
func BuildMessages(systemPrompt, task string, history []*types.Message, errorContext string) []*types.Message {
	messages := make([]*types.Message, 0, len(history)+3)

	messages = append(messages, types.NewSystemMessage(systemPrompt))
	messages = append(messages, types.NewUserMessage(fmt.Sprintf("Task: %s", task)))

	// Skip any system messages in history to avoid duplicates
	for _, msg := range history {
		if msg.Role != types.RoleSystem {
			messages = append(messages, msg)
		}
	}

	if errorContext != "" {
		messages = append(messages, types.NewUserMessage(errorContext))
	}

	return messages
}

// FormatObservation renders a tool result as the user message fed back
// to the model on the next iteration
func FormatObservation(observation string) string {
	return fmt.Sprintf("Observation: %s", observation)
}
