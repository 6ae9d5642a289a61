// FILE: logship/src/cmd/logship/commands/help.go
package commands

import (
	"fmt"
	"strings"
)

const generalHelpTemplate = `logship: buffered remote log shipping.

Usage:
  logship [command] [options]
  logship [options] [--section.key=value ...]

Commands:
%s

Agent Options:
  -config <path>        Path to configuration file (default: ~/.config/logship.toml)
  -quiet                Suppress all console output, including errors
  -version              Display version information and exit
  -input <type>         Line input: stdin, file, none
  -follow <path>        Follow a file as the line input
  -log-level <level>    Agent log level: debug, info, warn, error
  -log-output <mode>    Agent log output: file, stdout, stderr, both, none

Signals:
  SIGUSR1, SIGTSTP      Flush every destination (resign active)
  SIGINT, SIGTERM       Flush, close all destinations and exit

Configuration Sources (Precedence: CLI > Env > File > Defaults):
  - --section.key=value arguments override all other settings
  - LOGSHIP_ environment variables override file settings
  - TOML configuration file is the primary method

Examples:
  # Ship an application's output
  ./app 2>&1 | logship -config /etc/logship.toml

  # Watch a tcp destination locally
  logship collect -port 9514
`

// HelpCommand handles the display of general or command-specific help messages.
type HelpCommand struct {
	router *CommandRouter
}

func NewHelpCommand(router *CommandRouter) *HelpCommand {
	return &HelpCommand{router: router}
}

func (c *HelpCommand) Execute(args []string) error {
	if len(args) > 0 && args[0] != "" {
		cmdName := args[0]

		if handler, exists := c.router.GetCommand(cmdName); exists {
			fmt.Fprint(c.router.out, handler.Help())
			return nil
		}

		return fmt.Errorf("unknown command: %s", cmdName)
	}

	fmt.Fprintf(c.router.out, generalHelpTemplate, c.formatCommandList())
	return nil
}

func (c *HelpCommand) Description() string {
	return "Display help information"
}

func (c *HelpCommand) Help() string {
	return `Help Command - Display help information

Usage:
  logship help              Show general help
  logship help <command>    Show help for a specific command
`
}

// formatCommandList creates an aligned list of all available commands.
func (c *HelpCommand) formatCommandList() string {
	names := c.router.Names()

	maxLen := 0
	for _, name := range names {
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		handler, _ := c.router.GetCommand(name)
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		lines = append(lines, fmt.Sprintf("  %s%s%s", name, padding, handler.Description()))
	}

	return strings.Join(lines, "\n")
}
