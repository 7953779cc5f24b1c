package browser

import "time"

// Default session settings
const (
	// DefaultSearchURL is the search engine landing page
	DefaultSearchURL = "https://www.google.com"

	// DefaultNavigationTimeout bounds page navigations
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultActionTimeout bounds individual element interactions
	DefaultActionTimeout = 10 * time.Second

	// DefaultReadMaxChars caps the text returned by page reads
	DefaultReadMaxChars = 4000

	// DefaultViewportWidth is the browser viewport width
	DefaultViewportWidth = 1280

	// DefaultViewportHeight is the browser viewport height
	DefaultViewportHeight = 800
)

// SessionState tracks a session through its lifecycle
type SessionState string

const (
	// StateUninitialized means the session exists but holds no browser yet
	StateUninitialized SessionState = "uninitialized"

	// StateActive means the session holds a live browser, context, and page
	StateActive SessionState = "active"

	// StateClosed means the session's resources have been released
	StateClosed SessionState = "closed"
)

// SessionOptions configures a new browser session
type SessionOptions struct {
	// Headless controls whether the browser window is shown
	Headless bool

	// NavigationTimeout bounds page navigations. Zero means default.
	NavigationTimeout time.Duration

	// ActionTimeout bounds element interactions. Zero means default.
	ActionTimeout time.Duration

	// SearchURL overrides the search engine landing page
	SearchURL string

	// ReadMaxChars overrides the page read truncation limit
	ReadMaxChars int

	// AllowedHosts restricts navigation to matching host glob patterns.
	// Empty means unrestricted.
	AllowedHosts []string
}

// withDefaults fills zero-valued options
func (o SessionOptions) withDefaults() SessionOptions {
	if o.NavigationTimeout == 0 {
		o.NavigationTimeout = DefaultNavigationTimeout
	}
	if o.ActionTimeout == 0 {
		o.ActionTimeout = DefaultActionTimeout
	}
	if o.SearchURL == "" {
		o.SearchURL = DefaultSearchURL
	}
	if o.ReadMaxChars == 0 {
		o.ReadMaxChars = DefaultReadMaxChars
	}
	return o
}
