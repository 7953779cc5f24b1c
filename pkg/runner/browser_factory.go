package runner

import (
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/tools"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/config"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/tools/browser"
)

// BrowserSessionFactory creates real browser sessions from a shared
// Playwright launcher.
type BrowserSessionFactory struct {
	launcher *browser.Launcher
	opts     browser.SessionOptions
}

// NewBrowserSessionFactory builds a factory over the given launcher
func NewBrowserSessionFactory(launcher *browser.Launcher, cfg config.BrowserConfig) *BrowserSessionFactory {
	return &BrowserSessionFactory{
		launcher: launcher,
		opts: browser.SessionOptions{
			Headless:          cfg.Headless,
			NavigationTimeout: cfg.NavigationTimeout,
			SearchURL:         cfg.SearchURL,
			ReadMaxChars:      cfg.ReadPageMaxChars,
			AllowedHosts:      cfg.AllowedHosts,
		},
	}
}

// NewSession launches a session and binds the browser tool set to it
func (f *BrowserSessionFactory) NewSession() (Session, *tools.Registry, error) {
	session, err := f.launcher.NewSession(f.opts)
	if err != nil {
		return nil, nil, err
	}

	registry, err := browser.NewRegistry(session)
	if err != nil {
		session.Close()
		return nil, nil, err
	}

	return session, registry, nil
}
