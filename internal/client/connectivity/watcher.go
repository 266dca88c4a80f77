package connectivity

import (
	"context"
	"log/slog"
	"time"
)

// Pinger is the reachability probe, normally the API client's health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher periodically probes the server and feeds the result into the
// monitor. It replaces the browser-style connectivity events a desktop
// client does not have.
type Watcher struct {
	monitor  *Monitor
	pinger   Pinger
	logger   *slog.Logger
	interval time.Duration
}

// NewWatcher creates a watcher; interval must be positive.
func NewWatcher(monitor *Monitor, pinger Pinger, interval time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{
		monitor:  monitor,
		pinger:   pinger,
		logger:   logger,
		interval: interval,
	}
}

// Run probes immediately and then on every tick until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	w.probe(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.probe(ctx)
		}
	}
}

func (w *Watcher) probe(ctx context.Context) {
	err := w.pinger.Ping(ctx)
	online := err == nil

	if !online {
		w.logger.Debug("connectivity probe failed", "error", err)
	}

	w.monitor.SetOnline(online)
}
