// FILE: logship/src/cmd/logship/status.go
package main

import (
	"context"
	"time"

	"logship/src/internal/service"
)

// Periodically logs service status
func statusReporter(ctx context.Context, svc *service.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("msg", "Panic in status reporter",
							"component", "status_reporter",
							"panic", r)
					}
				}()
				reportStatus(svc.GetGlobalStats())
			}()
		}
	}
}

func reportStatus(stats map[string]any) {
	total, _ := stats["total_destinations"].(int)
	if total == 0 {
		logger.Warn("msg", "No active destinations in status report",
			"component", "status_reporter")
		return
	}

	logger.Debug("msg", "Status report",
		"component", "status_reporter",
		"destinations", total,
		"pending", stats["total_pending"],
		"delivered", stats["total_delivered"],
		"failed_batches", stats["total_failed"])

	dests, _ := stats["destinations"].(map[string]any)
	for name, destStats := range dests {
		if m, ok := destStats.(map[string]any); ok {
			logDestinationStatus(name, m)
		}
	}
}

// Logs the status of an individual destination
func logDestinationStatus(name string, stats map[string]any) {
	statusFields := []any{
		"msg", "Destination status",
		"component", "status_reporter",
		"destination", name,
	}

	for _, key := range []string{"written", "filtered", "delivered", "requeued", "failed_batches", "pending", "coalesced", "paced"} {
		if v, ok := stats[key]; ok {
			statusFields = append(statusFields, key, v)
		}
	}

	if lastErr, ok := stats["last_error"].(string); ok && lastErr != "" {
		statusFields = append(statusFields, "last_error", lastErr)
		logger.Warn(statusFields...)
		return
	}

	logger.Debug(statusFields...)
}
