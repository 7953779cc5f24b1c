package browser

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/playwright-community/playwright-go"
)

// ErrNotRunning is the observation text for tool calls against a
// session that is not active.
const ErrNotRunning = "browser session is not running"

// Session is one task's browser: a dedicated browser process, context,
// and single page. Sessions move from active to closed exactly once
// and are never reused across tasks.
type Session struct {
	mu        sync.Mutex
	browser   playwright.Browser
	context   playwright.BrowserContext
	page      playwright.Page
	opts      SessionOptions
	scope     *scope
	state     SessionState
	createdAt time.Time
	closeOnce sync.Once
}

// State returns the session's lifecycle state
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentURL returns the page's current URL, or empty if not active
func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ""
	}
	return s.page.URL()
}

// requireActive returns the page if the session is usable
func (s *Session) requireActive() (playwright.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return nil, fmt.Errorf("%s", ErrNotRunning)
	}
	return s.page, nil
}

// Search opens the search engine and submits the query through its
// search box, then waits for the results page to load.
func (s *Session) Search(query string) error {
	page, err := s.requireActive()
	if err != nil {
		return err
	}

	waitUntil := playwright.WaitUntilStateDomcontentloaded
	timeout := float64(s.opts.NavigationTimeout.Milliseconds())
	if _, err := page.Goto(s.opts.SearchURL, playwright.PageGotoOptions{
		WaitUntil: waitUntil,
		Timeout:   &timeout,
	}); err != nil {
		return fmt.Errorf("failed to open search page: %w", err)
	}

	box := page.Locator(`textarea[name="q"]`)
	if err := box.Fill(query); err != nil {
		return fmt.Errorf("failed to fill search box: %w", err)
	}
	if err := box.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}

	loadState := playwright.LoadStateLoad
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState,
		Timeout: &timeout,
	}); err != nil {
		return fmt.Errorf("search results did not load: %w", err)
	}

	return nil
}

// Navigate loads the given URL, waiting for DOM content
func (s *Session) Navigate(url string) error {
	page, err := s.requireActive()
	if err != nil {
		return err
	}

	if err := s.scope.check(url); err != nil {
		return err
	}

	waitUntil := playwright.WaitUntilStateDomcontentloaded
	timeout := float64(s.opts.NavigationTimeout.Milliseconds())
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: waitUntil,
		Timeout:   &timeout,
	}); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	return nil
}

// Fill types text into the element matching the selector
func (s *Session) Fill(selector, text string) error {
	page, err := s.requireActive()
	if err != nil {
		return err
	}

	if err := page.Locator(selector).Fill(text); err != nil {
		return fmt.Errorf("failed to type into %q: %w", selector, err)
	}
	return nil
}

// Click clicks the element matching the selector
func (s *Session) Click(selector string) error {
	page, err := s.requireActive()
	if err != nil {
		return err
	}

	if err := page.Locator(selector).Click(); err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// ReadPage waits for the page to settle and returns its visible text,
// truncated to the configured limit.
func (s *Session) ReadPage() (string, error) {
	page, err := s.requireActive()
	if err != nil {
		return "", err
	}

	// Best effort: a page that never goes network-idle is still readable
	loadState := playwright.LoadStateNetworkidle
	timeout := float64(s.opts.NavigationTimeout.Milliseconds())
	_ = page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState,
		Timeout: &timeout,
	})

	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}

	text := visibleText(content)
	return truncate(text, s.opts.ReadMaxChars), nil
}

// Close releases the page, context, and browser. Safe to call from any
// state and from multiple exit paths; only the first call does work.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.state = StateClosed
		s.mu.Unlock()

		// Continue cleanup past individual failures
		if s.page != nil {
			if cerr := s.page.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
		if s.context != nil {
			if cerr := s.context.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
		if s.browser != nil {
			if cerr := s.browser.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	})
	return err
}

// truncate caps s at maxChars bytes without adding a marker, backing
// off to the nearest rune boundary so the observation never ends in a
// broken UTF-8 sequence
func truncate(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}

	cut := maxChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
