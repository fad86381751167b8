package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchdogRefreshesEachTick(t *testing.T) {
	var refreshes atomic.Int32
	w := NewWatchdog(WatchdogConfig{
		RefreshInterval: 10 * time.Millisecond,
		WarnAfter:       time.Hour,
		IdleTimeout:     2 * time.Hour,
	})
	w.Refresh = func(context.Context) error {
		refreshes.Add(1)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, w.Run(ctx))

	assert.GreaterOrEqual(t, refreshes.Load(), int32(3))
}

func TestWatchdogExpiresIdleSession(t *testing.T) {
	var expired atomic.Bool
	var warned atomic.Bool

	w := NewWatchdog(WatchdogConfig{
		RefreshInterval: 5 * time.Millisecond,
		WarnAfter:       10 * time.Millisecond,
		IdleTimeout:     40 * time.Millisecond,
	})
	w.OnWarn = func(remaining time.Duration) {
		warned.Store(true)
		assert.Greater(t, remaining, time.Duration(0))
	}
	w.OnExpire = func(context.Context) error {
		expired.Store(true)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Run(ctx))

	assert.True(t, warned.Load(), "warning precedes expiry")
	assert.True(t, expired.Load())
}

func TestWatchdogTouchDefersExpiry(t *testing.T) {
	var expired atomic.Bool
	w := NewWatchdog(WatchdogConfig{
		RefreshInterval: 5 * time.Millisecond,
		WarnAfter:       20 * time.Millisecond,
		IdleTimeout:     50 * time.Millisecond,
	})
	w.OnExpire = func(context.Context) error {
		expired.Store(true)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	// Keep touching past the original deadline.
	for i := 0; i < 8; i++ {
		time.Sleep(10 * time.Millisecond)
		w.Touch()
	}
	assert.False(t, expired.Load(), "activity resets the idle clock")

	cancel()
	<-done
}
