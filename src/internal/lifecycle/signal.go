// FILE: logship/src/internal/lifecycle/signal.go
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/log"
)

// SignalWatcher turns OS signals into lifecycle events on a Hub.
type SignalWatcher struct {
	hub     *Hub
	logger  *log.Logger
	sigChan chan os.Signal
}

// NewSignalWatcher registers for resign-active and termination signals.
func NewSignalWatcher(hub *Hub, logger *log.Logger) *SignalWatcher {
	w := &SignalWatcher{
		hub:     hub,
		logger:  logger,
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(w.sigChan,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGUSR1, // Resign active
		syscall.SIGTSTP, // Terminal stop
	)

	return w
}

// Watch publishes events until a termination signal arrives or ctx is done.
// It returns the termination signal, or nil when ctx ended first.
func (w *SignalWatcher) Watch(ctx context.Context) os.Signal {
	for {
		select {
		case sig := <-w.sigChan:
			switch sig {
			case syscall.SIGUSR1, syscall.SIGTSTP:
				w.logger.Info("msg", "Resign-active signal received",
					"component", "lifecycle",
					"signal", sig)
				w.hub.Publish(EventResignActive)
			default:
				w.logger.Info("msg", "Termination signal received",
					"component", "lifecycle",
					"signal", sig)
				w.hub.Publish(EventTerminate)
				return sig
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop cleans up signal handling
func (w *SignalWatcher) Stop() {
	signal.Stop(w.sigChan)
}
