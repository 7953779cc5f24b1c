package browser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// scope restricts explicit navigation to an operator-approved set of
// hosts. Patterns are glob-matched against the hostname, so
// "*.example.com" covers subdomains and "example.com" only the apex.
// A nil or empty scope allows everything.
type scope struct {
	patterns []glob.Glob
	sources  []string
}

// newScope compiles host patterns into a navigation scope
func newScope(patterns []string) (*scope, error) {
	if len(patterns) == 0 {
		return &scope{}, nil
	}

	s := &scope{sources: patterns}
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p), '.')
		if err != nil {
			return nil, fmt.Errorf("invalid host pattern %q: %w", p, err)
		}
		s.patterns = append(s.patterns, g)
	}
	return s, nil
}

// check returns an error when the URL's host falls outside the scope
func (s *scope) check(rawURL string) error {
	if s == nil || len(s.patterns) == 0 {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("URL %q has no host", rawURL)
	}

	for _, g := range s.patterns {
		if g.Match(host) {
			return nil
		}
	}

	return fmt.Errorf("navigation to %q is not allowed (allowed hosts: %s)", host, strings.Join(s.sources, ", "))
}
