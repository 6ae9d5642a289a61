// FILE: logship/src/cmd/logship/commands/collect.go
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"logship/src/internal/collector"
	"logship/src/internal/lifecycle"

	"github.com/lixenwraith/log"
)

// CollectCommand runs a local TCP line receiver that prints what tcp destinations ship.
type CollectCommand struct {
	output io.Writer
	errOut io.Writer
	mu     sync.Mutex
}

func NewCollectCommand() *CollectCommand {
	return &CollectCommand{
		output: os.Stdout,
		errOut: os.Stderr,
	}
}

func (c *CollectCommand) Execute(args []string) error {
	cmd := flag.NewFlagSet("collect", flag.ContinueOnError)
	cmd.SetOutput(c.errOut)

	var (
		host       = cmd.String("host", "127.0.0.1", "Listen address")
		port       = cmd.Int64("port", 9514, "Listen port")
		showRemote = cmd.Bool("remote", false, "Prefix each line with the sender address")
		verbose    = cmd.Bool("v", false, "Log collector events to stderr")
	)

	cmd.Usage = func() {
		fmt.Fprint(c.errOut, c.Help())
	}

	if err := cmd.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	logger, err := c.newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Shutdown()

	col, err := collector.New(*host, *port, c.lineHandler(*showRemote), logger)
	if err != nil {
		return err
	}
	if err := col.Start(); err != nil {
		return fmt.Errorf("failed to start collector: %w", err)
	}
	fmt.Fprintf(c.errOut, "Collecting on %s:%d, Ctrl+C to stop\n", *host, *port)

	watcher := lifecycle.NewSignalWatcher(lifecycle.NewHub(logger), logger)
	defer watcher.Stop()
	watcher.Watch(context.Background())

	col.Stop()
	stats := col.Stats()
	fmt.Fprintf(c.errOut, "Received %d lines (%d bytes, %d oversized)\n",
		stats.TotalLines, stats.TotalBytes, stats.OversizedLines)
	return nil
}

// lineHandler serializes writes from the gnet event loops
func (c *CollectCommand) lineHandler(showRemote bool) collector.LineHandler {
	return func(remote string, line []byte) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if showRemote {
			fmt.Fprintf(c.output, "[%s] %s\n", remote, line)
			return
		}
		fmt.Fprintf(c.output, "%s\n", line)
	}
}

func (c *CollectCommand) newLogger(verbose bool) (*log.Logger, error) {
	logger := log.NewLogger()
	cfg := log.DefaultConfig()
	cfg.EnableFile = false
	cfg.EnableConsole = verbose
	cfg.ConsoleTarget = "stderr"
	if err := logger.ApplyConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	if err := logger.Start(); err != nil {
		return nil, fmt.Errorf("failed to start logger: %w", err)
	}
	return logger, nil
}

func (c *CollectCommand) Description() string {
	return "Print lines received on a local TCP port"
}

func (c *CollectCommand) Help() string {
	return `Collect Command - Receive newline-delimited logs over TCP

Usage:
  logship collect [options]

Options:
  -host <addr>    Listen address (default: 127.0.0.1)
  -port <port>    Listen port (default: 9514)
  -remote         Prefix each line with the sender address
  -v              Log collector events to stderr

Examples:
  # Terminal 1
  logship collect -port 9514

  # Terminal 2, with a tcp destination at 127.0.0.1:9514
  ./app | logship -config tcp.toml
`
}
