package agent

import "errors"

var (
	// ErrIterationLimit indicates the loop reached its iteration bound
	// without the model producing a final answer
	ErrIterationLimit = errors.New("agent reached maximum iterations without a final answer")

	// ErrUnparseableOutput indicates the model produced too many
	// consecutive responses that could not be parsed into a decision
	ErrUnparseableOutput = errors.New("agent output could not be parsed after repeated attempts")
)
