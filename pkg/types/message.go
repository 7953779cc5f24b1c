// Package types holds the shared message types exchanged between the agent
// loop and LLM providers.
package types

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	// RoleSystem is the system instruction role.
	RoleSystem MessageRole = "system"

	// RoleUser is the human (or tool-observation) role.
	RoleUser MessageRole = "user"

	// RoleAssistant is the model response role.
	RoleAssistant MessageRole = "assistant"
)

// Message is a single conversation message sent to or received from an
// LLM provider.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// NewMessage creates a message with the given role and content.
func NewMessage(role MessageRole, content string) *Message {
	return &Message{Role: role, Content: content}
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// ModelInfo describes the LLM model backing a provider.
type ModelInfo struct {
	// Provider is the provider family (e.g. "openai").
	Provider string

	// Name is the model identifier.
	Name string

	// MaxTokens is the model's context window size, if known.
	MaxTokens int

	// Metadata holds provider-specific details such as a custom base URL.
	Metadata map[string]interface{}
}
