package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Launcher owns the shared Playwright driver process and creates
// per-task browser sessions from it. One Launcher serves the whole
// process lifetime; sessions come and go per task.
type Launcher struct {
	mu          sync.Mutex
	playwright  *playwright.Playwright
	initialized bool
}

// NewLauncher creates an uninitialized launcher
func NewLauncher() *Launcher {
	return &Launcher{}
}

// Start installs browser binaries if needed and boots the Playwright
// driver. Safe to call more than once.
func (l *Launcher) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.initialized {
		return nil
	}

	// Discard driver output so it does not interleave with our own logs
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	l.playwright = pw
	l.initialized = true
	return nil
}

// NewSession launches a fresh browser, context, and page for one task.
// Resources acquired before a failure are released before returning.
func (l *Launcher) NewSession(opts SessionOptions) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return nil, fmt.Errorf("launcher not started")
	}

	opts = opts.withDefaults()

	scope, err := newScope(opts.AllowedHosts)
	if err != nil {
		return nil, fmt.Errorf("invalid allowed_hosts: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	}
	browser, err := l.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(float64(opts.ActionTimeout.Milliseconds()))

	return &Session{
		browser:   browser,
		context:   context,
		page:      page,
		opts:      opts,
		scope:     scope,
		state:     StateActive,
		createdAt: time.Now(),
	}, nil
}

// Stop shuts down the Playwright driver. Existing sessions must be
// closed first.
func (l *Launcher) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized || l.playwright == nil {
		return nil
	}

	if err := l.playwright.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	l.initialized = false
	l.playwright = nil
	return nil
}
