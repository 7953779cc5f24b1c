package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full agent configuration
type Config struct {
	// LLM provider configuration
	LLM LLMConfig `yaml:"llm" json:"llm"`

	// Agent loop configuration
	Agent AgentConfig `yaml:"agent" json:"agent"`

	// Browser configuration
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// HTTP server configuration
	Server ServerConfig `yaml:"server" json:"server"`
}

// LLMConfig defines the language model provider settings
type LLMConfig struct {
	// API key for the provider (falls back to OPENAI_API_KEY)
	APIKey string `yaml:"api_key" json:"api_key"`

	// BaseURL overrides the default API endpoint
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Model name to use for completions
	Model string `yaml:"model" json:"model"`

	// Temperature for sampling
	Temperature float64 `yaml:"temperature" json:"temperature"`

	// RequestTimeout bounds a single completion call
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// AgentConfig defines the decision loop bounds
type AgentConfig struct {
	// MaxIterations bounds the number of think/act cycles per task
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`

	// MaxParseRetries bounds consecutive unparseable model responses
	MaxParseRetries int `yaml:"max_parse_retries" json:"max_parse_retries"`
}

// BrowserConfig defines browser session settings
type BrowserConfig struct {
	// Headless controls whether the browser window is shown
	Headless bool `yaml:"headless" json:"headless"`

	// NavigationTimeout bounds page navigations
	NavigationTimeout time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`

	// ReadPageMaxChars caps the text returned by page reads
	ReadPageMaxChars int `yaml:"read_page_max_chars" json:"read_page_max_chars"`

	// SearchURL is the search engine landing page
	SearchURL string `yaml:"search_url" json:"search_url"`

	// AllowedHosts restricts navigation to matching host patterns.
	// Glob patterns, e.g. "*.example.com". Empty means unrestricted.
	AllowedHosts []string `yaml:"allowed_hosts" json:"allowed_hosts"`
}

// ServerConfig defines HTTP server settings
type ServerConfig struct {
	// ListenAddr is the address to serve on, e.g. ":5001"
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
}

// DefaultConfig returns a default configuration suitable for most use cases
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:          "gpt-4o",
			Temperature:    0,
			RequestTimeout: 2 * time.Minute,
		},
		Agent: AgentConfig{
			MaxIterations:   15,
			MaxParseRetries: 3,
		},
		Browser: BrowserConfig{
			Headless:          true,
			NavigationTimeout: 30 * time.Second,
			ReadPageMaxChars:  4000,
			SearchURL:         "https://www.google.com",
		},
		Server: ServerConfig{
			ListenAddr: ":5001",
		},
	}
}

// Load reads a YAML configuration file and merges it over the defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("llm model is required")
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature must be between 0 and 2")
	}

	if c.LLM.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout cannot be negative")
	}

	if c.Agent.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive")
	}

	if c.Agent.MaxParseRetries <= 0 {
		return fmt.Errorf("max_parse_retries must be positive")
	}

	if c.Browser.NavigationTimeout < 0 {
		return fmt.Errorf("navigation_timeout cannot be negative")
	}

	if c.Browser.ReadPageMaxChars <= 0 {
		return fmt.Errorf("read_page_max_chars must be positive")
	}

	if c.Browser.SearchURL == "" {
		return fmt.Errorf("search_url is required")
	}

	return nil
}
