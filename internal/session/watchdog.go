package session

import (
	"context"
	"sync"
	"time"

	"github.com/warelog/warelog/internal/common"
)

// Watchdog defaults.
const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultWarnAfter       = 10 * time.Minute
	DefaultIdleTimeout     = 15 * time.Minute
)

// WatchdogConfig tunes the idle watchdog. Zero values take the
// defaults above.
type WatchdogConfig struct {
	// RefreshInterval is how often the refresh callback runs.
	RefreshInterval time.Duration
	// WarnAfter is the idle span after which the warning fires.
	WarnAfter time.Duration
	// IdleTimeout is the idle span that expires the session.
	IdleTimeout time.Duration
}

// Watchdog periodically refreshes the local cache and expires the
// session when the user has been idle past the timeout. Touch resets
// the idle clock.
type Watchdog struct {
	cfg WatchdogConfig

	// Refresh pulls the latest remote snapshot.
	Refresh func(ctx context.Context) error
	// OnWarn is called once per tick while inside the warning window,
	// with the time remaining until expiry.
	OnWarn func(remaining time.Duration)
	// OnExpire clears the session when the idle timeout is reached.
	OnExpire func(ctx context.Context) error

	mu       sync.Mutex
	lastSeen time.Time
}

// NewWatchdog creates a watchdog with the idle clock starting now.
func NewWatchdog(cfg WatchdogConfig) *Watchdog {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.WarnAfter <= 0 {
		cfg.WarnAfter = DefaultWarnAfter
	}
	if cfg.IdleTimeout <= cfg.WarnAfter {
		cfg.IdleTimeout = DefaultIdleTimeout
		if cfg.IdleTimeout <= cfg.WarnAfter {
			cfg.IdleTimeout = cfg.WarnAfter * 2
		}
	}
	return &Watchdog{cfg: cfg, lastSeen: time.Now()}
}

// Touch marks user activity, resetting the idle clock.
func (w *Watchdog) Touch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSeen = time.Now()
}

// Idle reports how long the session has been idle.
func (w *Watchdog) Idle() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Since(w.lastSeen)
}

// Run drives the watchdog until the context is cancelled or the
// session expires. Returns nil on expiry or cancellation.
func (w *Watchdog) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if w.Refresh != nil {
			if err := w.Refresh(ctx); err != nil {
				common.LogError(err, "background refresh failed", nil)
			}
		}

		idle := w.Idle()
		if idle >= w.cfg.IdleTimeout {
			common.LogInfo("Session expired from inactivity", common.Fields{
				"idle": idle.Round(time.Second).String(),
			})
			if w.OnExpire != nil {
				if err := w.OnExpire(ctx); err != nil {
					return err
				}
			}
			return nil
		}
		if idle >= w.cfg.WarnAfter && w.OnWarn != nil {
			w.OnWarn(w.cfg.IdleTimeout - idle)
		}
	}
}
