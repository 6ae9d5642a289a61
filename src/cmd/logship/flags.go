// FILE: logship/src/cmd/logship/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/log"
)

// FlagConfig holds the parsed command line flags
type FlagConfig struct {
	ConfigFile  string
	Quiet       bool
	ShowVersion bool

	Input  string
	Follow string

	LogLevel  string
	LogOutput string

	// Dotted overrides (--destinations.0.max_entries=50) handed to the config loader
	ConfigArgs []string
}

// ParseFlags parses the agent flags. Arguments of the form --section.key[=value]
// are not flags; they are collected as config overrides.
func ParseFlags(args []string) (*FlagConfig, error) {
	fc := &FlagConfig{}

	fs := flag.NewFlagSet("logship", flag.ContinueOnError)
	fs.Usage = customUsage

	fs.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	fs.BoolVar(&fc.Quiet, "quiet", false, "Suppress all console output")
	fs.BoolVar(&fc.ShowVersion, "version", false, "Show version information")
	fs.StringVar(&fc.Input, "input", "", "Input: stdin, file, none (overrides config)")
	fs.StringVar(&fc.Follow, "follow", "", "Follow this file as input (implies -input file)")
	fs.StringVar(&fc.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	fs.StringVar(&fc.LogOutput, "log-output", "", "Log output: file, stdout, stderr, both, none (overrides config)")

	var flagArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if isConfigOverride(arg) {
			fc.ConfigArgs = append(fc.ConfigArgs, arg)
			// Space separated value
			if !strings.Contains(arg, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				fc.ConfigArgs = append(fc.ConfigArgs, args[i+1])
				i++
			}
			continue
		}
		flagArgs = append(flagArgs, arg)
	}

	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}

	if err := fc.validate(); err != nil {
		return nil, err
	}

	fc.ConfigArgs = append(fc.ConfigArgs, fc.overrides()...)
	return fc, nil
}

func isConfigOverride(arg string) bool {
	if !strings.HasPrefix(arg, "--") {
		return false
	}
	key, _, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
	return strings.Contains(key, ".")
}

func (fc *FlagConfig) validate() error {
	if fc.LogOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true,
			"both": true, "none": true,
		}
		if !validOutputs[fc.LogOutput] {
			return fmt.Errorf("invalid log-output: %s (valid: file, stdout, stderr, both, none)", fc.LogOutput)
		}
	}

	if fc.LogLevel != "" {
		if _, err := parseLogLevel(fc.LogLevel); err != nil {
			return fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", fc.LogLevel)
		}
	}

	if fc.Follow != "" && fc.Input != "" && fc.Input != "file" {
		return fmt.Errorf("-follow requires -input file, got %s", fc.Input)
	}

	switch fc.Input {
	case "", "stdin", "file", "none":
	default:
		return fmt.Errorf("invalid input: %s (valid: stdin, file, none)", fc.Input)
	}

	return nil
}

// overrides translates flags into config loader arguments so they share the CLI precedence
func (fc *FlagConfig) overrides() []string {
	var out []string
	if fc.Quiet {
		out = append(out, "--quiet=true")
	}
	if fc.LogLevel != "" {
		out = append(out, "--logging.level="+fc.LogLevel)
	}
	if fc.LogOutput != "" {
		out = append(out, "--logging.output="+fc.LogOutput)
	}
	if fc.Follow != "" {
		out = append(out, "--input.type=file", "--input.path="+fc.Follow)
	} else if fc.Input != "" {
		out = append(out, "--input.type="+fc.Input)
	}
	return out
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "logship - Buffered Remote Log Shipping Agent\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [command] [options] [--section.key=value ...]\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "General:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress all console output\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")

	fmt.Fprintf(os.Stderr, "\nInput:\n")
	fmt.Fprintf(os.Stderr, "  -input string\n\tInput: stdin, file, none (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -follow string\n\tFollow this file as input\n")

	fmt.Fprintf(os.Stderr, "\nLogging:\n")
	fmt.Fprintf(os.Stderr, "  -log-output string\n\tLog output: file, stdout, stderr, both, none (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tLog level: debug, info, warn, error (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Ship stdin lines with the config file destinations\n")
	fmt.Fprintf(os.Stderr, "  app | %s --config /etc/logship.toml\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  # Follow a file, debug logging\n")
	fmt.Fprintf(os.Stderr, "  %s -follow /var/log/app.log -log-level debug\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  # Override a destination setting\n")
	fmt.Fprintf(os.Stderr, "  %s --destinations.0.max_entries=500\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  LOGSHIP_CONFIG_FILE              Config file path\n")
	fmt.Fprintf(os.Stderr, "  LOGSHIP_CONFIG_DIR               Config directory\n")
	fmt.Fprintf(os.Stderr, "  LOGSHIP_DISABLE_STATUS_REPORTER  Disable periodic status reports (set to 1)\n")
}

func parseLogLevel(level string) (int64, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
