// Package tokenizer provides client-side token counting so the agent can
// report how large each oracle prompt is without an extra API round trip.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/types"
)

// defaultEncoding is the cl100k_base encoding used by current chat models.
// Counts are an estimate for non-OpenAI models but close enough for
// reporting and budgeting.
const defaultEncoding = "cl100k_base"

// messageOverheadTokens approximates the per-message framing tokens the chat
// format adds around each message's content.
const messageOverheadTokens = 4

// Tokenizer counts tokens using tiktoken.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer with the default chat encoding.
func New() (*Tokenizer, error) {
	encoding, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", defaultEncoding, err)
	}
	return &Tokenizer{encoding: encoding}, nil
}

// CountTokens returns the number of tokens in the given text.
func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// CountMessagesTokens returns the approximate token count of a full message
// list, including per-message framing overhead.
func (t *Tokenizer) CountMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		total += t.CountTokens(msg.Content)
		total += t.CountTokens(string(msg.Role))
		total += messageOverheadTokens
	}
	return total
}
