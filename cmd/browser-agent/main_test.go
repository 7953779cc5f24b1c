package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfigFileHeadlessSurvivesUnsetFlag(t *testing.T) {
	path := writeConfigFile(t, "browser:\n  headless: false\n")

	cfg, err := loadConfig(&CLIConfig{ConfigFile: path, Headless: true})
	require.NoError(t, err)

	assert.False(t, cfg.Browser.Headless, "config file value must survive when -headless was not passed")
}

func TestLoadConfigExplicitFlagOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "browser:\n  headless: false\n")

	cfg, err := loadConfig(&CLIConfig{ConfigFile: path, Headless: true, HeadlessSet: true})
	require.NoError(t, err)

	assert.True(t, cfg.Browser.Headless)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(&CLIConfig{})
	require.NoError(t, err)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 15, cfg.Agent.MaxIterations)
}

func TestLoadConfigModelFlagOverride(t *testing.T) {
	path := writeConfigFile(t, "llm:\n  model: gpt-4o-mini\n")

	cfg, err := loadConfig(&CLIConfig{ConfigFile: path, Model: "llama3-70b-8192"})
	require.NoError(t, err)

	assert.Equal(t, "llama3-70b-8192", cfg.LLM.Model)
}
