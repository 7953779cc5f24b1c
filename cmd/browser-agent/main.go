// Package main provides the browser agent entry point. It runs a
// single task from the command line or serves the task execution API
// for a web front end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent/tools"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/config"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/llm/openai"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/llm/tokenizer"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/logging"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/runner"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/server"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/tools/browser"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	ConfigFile  string
	Task        string
	Listen      string
	Headless    bool
	HeadlessSet bool
	ShowVersion bool
}

func main() {
	// Load .env if present, matching how deployments keep API keys
	_ = godotenv.Load()

	cliConfig := parseFlags()

	if cliConfig.ShowVersion {
		fmt.Printf("browser-agent v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, cliConfig); err != nil {
		cancel()
		log.Printf("Execution failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cliConfig := &CLIConfig{}

	flag.StringVar(&cliConfig.APIKey, "api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key")
	flag.StringVar(&cliConfig.BaseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI API base URL")
	flag.StringVar(&cliConfig.Model, "model", "", "LLM model to use")
	flag.StringVar(&cliConfig.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&cliConfig.Task, "task", "", "Task to run once (exits after completion)")
	flag.StringVar(&cliConfig.Listen, "listen", "", "Serve the task API on this address (e.g. :5001)")
	flag.BoolVar(&cliConfig.Headless, "headless", true, "Run the browser without a visible window")
	flag.BoolVar(&cliConfig.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Browser Agent - Autonomous Web Task Agent\n\n")
		fmt.Fprintf(os.Stderr, "Usage: browser-agent [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Run a single task\n")
		fmt.Fprintf(os.Stderr, "  browser-agent -task \"Find the current weather in Amsterdam\"\n\n")
		fmt.Fprintf(os.Stderr, "  # Serve the task API for a front end\n")
		fmt.Fprintf(os.Stderr, "  browser-agent -listen :5001\n\n")
	}

	flag.Parse()

	// A flag only overrides the config file when the user actually set it
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			cliConfig.HeadlessSet = true
		}
	})

	return cliConfig
}

// run wires the agent stack together and executes the requested mode
func run(ctx context.Context, cliConfig *CLIConfig) error {
	cfg, err := loadConfig(cliConfig)
	if err != nil {
		return err
	}

	logger, logErr := logging.NewLogger("main")
	if logErr == nil {
		fmt.Printf("Logging to %s\n", logger.LogPath())
	}
	defer logger.Close()

	provider, err := openai.NewProvider(cliConfig.APIKey,
		openai.WithModel(cfg.LLM.Model),
		openai.WithBaseURL(cfg.LLM.BaseURL),
		openai.WithTemperature(cfg.LLM.Temperature),
	)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	launcher := browser.NewLauncher()
	if err := launcher.Start(); err != nil {
		return err
	}
	defer launcher.Stop()

	factory := runner.NewBrowserSessionFactory(launcher, cfg.Browser)

	agentFactory := func(registry *tools.Registry) runner.Agent {
		opts := []agent.LoopOption{
			agent.WithMaxIterations(cfg.Agent.MaxIterations),
			agent.WithMaxParseRetries(cfg.Agent.MaxParseRetries),
			agent.WithRequestTimeout(cfg.LLM.RequestTimeout),
			agent.WithLogger(logger),
		}
		if tk, err := tokenizer.New(); err == nil {
			opts = append(opts, agent.WithTokenizer(tk))
		}
		return agent.NewLoop(provider, registry, opts...)
	}

	taskRunner := runner.New(factory, agentFactory, runner.WithLogger(logger))

	if cliConfig.Task != "" {
		result, err := taskRunner.Execute(ctx, cliConfig.Task)
		if err != nil {
			return err
		}
		fmt.Println(result.Answer)
		return nil
	}

	addr := cfg.Server.ListenAddr
	if cliConfig.Listen != "" {
		addr = cliConfig.Listen
	}
	return server.New(taskRunner, logger).ListenAndServe(ctx, addr)
}

// loadConfig merges the config file, defaults, and flag overrides
func loadConfig(cliConfig *CLIConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if cliConfig.ConfigFile != "" {
		loaded, err := config.Load(cliConfig.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cliConfig.Model != "" {
		cfg.LLM.Model = cliConfig.Model
	}
	if cliConfig.BaseURL != "" {
		cfg.LLM.BaseURL = cliConfig.BaseURL
	}
	if cliConfig.HeadlessSet {
		cfg.Browser.Headless = cliConfig.Headless
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
