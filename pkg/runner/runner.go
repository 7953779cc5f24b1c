// Package runner orchestrates single task executions: it acquires a
// fresh browser session, runs the agent loop against it, and releases
// the session on every exit path.
package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/tools"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/logging"
)

// Session is the slice of a browser session the runner manages.
// Close must be idempotent.
type Session interface {
	Close() error
}

// SessionFactory creates one session and its tool registry per task
type SessionFactory interface {
	NewSession() (Session, *tools.Registry, error)
}

// Agent drives one task to completion over a tool registry
type Agent interface {
	Run(ctx context.Context, task string) (*agent.Result, error)
}

// AgentFactory builds the agent for a task's registry
type AgentFactory func(registry *tools.Registry) Agent

// Runner executes tasks one at a time. Tasks are serialized because
// each one needs exclusive use of a browser and the underlying driver
// is not built for concurrent task interleaving.
type Runner struct {
	mu       sync.Mutex
	sessions SessionFactory
	agents   AgentFactory
	logger   *logging.Logger
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithLogger sets the logger for task lifecycle diagnostics
func WithLogger(logger *logging.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a task runner
func New(sessions SessionFactory, agents AgentFactory, opts ...RunnerOption) *Runner {
	r := &Runner{
		sessions: sessions,
		agents:   agents,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs a single task and returns its final answer.
//
// Session setup failures are terminal and bypass the agent loop
// entirely. Once a session exists it is closed exactly once on every
// exit path, including agent failures and panics unwinding through
// the deferred close.
func (r *Runner) Execute(ctx context.Context, task string) (*agent.Result, error) {
	if task == "" {
		return nil, fmt.Errorf("no task provided")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	taskID := uuid.New().String()
	r.logf("task %s: starting: %s", taskID, task)

	session, registry, err := r.sessions.NewSession()
	if err != nil {
		r.logf("task %s: session setup failed: %v", taskID, err)
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logf("task %s: session close failed: %v", taskID, cerr)
		}
	}()

	result, err := r.agents(registry).Run(ctx, task)
	if err != nil {
		r.logf("task %s: failed: %v", taskID, err)
		return nil, err
	}

	r.logf("task %s: done in %d iterations", taskID, result.Iterations)
	return result, nil
}

func (r *Runner) logf(format string, v ...interface{}) {
	if r.logger != nil {
		r.logger.Infof(format, v...)
	}
}
