// FILE: logship/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"logship/src/internal/core"

	lconfig "github.com/lixenwraith/config"
)

const envPrefix = "LOGSHIP_"

func defaults() *Config {
	return &Config{
		StatusIntervalSeconds: 30,
		Logging:               DefaultLogConfig(),
		Input: &InputConfig{
			Type:   "stdin",
			Source: "stdin",
		},
		Destinations: []DestinationConfig{
			{
				Name:          "default",
				Type:          "http",
				MaxEntries:    core.DefaultMaxEntries,
				MinFlushLevel: "error",
				SendTimeoutMS: core.DefaultSendTimeoutMS,
				Format:        &FormatConfig{Type: "json"},
				HTTP: &HTTPOptions{
					URL:    "http://localhost:8080/logs",
					Method: "POST",
				},
			},
		},
	}
}

// LoadWithCLI loads configuration from defaults, the config file, environment and CLI
// overrides (highest priority first: CLI, env, file, defaults), then validates it.
func LoadWithCLI(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix(envPrefix).
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan("", finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, Validate(finalConfig)
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = envPrefix + env
	return env
}

// GetConfigPath resolves the config file from LOGSHIP_CONFIG_FILE / LOGSHIP_CONFIG_DIR,
// falling back to ~/.config/logship.toml and then ./logship.toml.
func GetConfigPath() string {
	if configFile := os.Getenv("LOGSHIP_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("LOGSHIP_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("LOGSHIP_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "logship.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "logship.toml")
	}

	return "logship.toml"
}
