package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	got, err := s.GetSetting(ctx, "session.user")
	require.NoError(t, err)
	assert.Equal(t, "", got, "unset keys read as empty, not as an error")

	require.NoError(t, s.SetSetting(ctx, "session.user", "chen"))
	require.NoError(t, s.SetSetting(ctx, "ui.active_view", "repairs"))

	got, err = s.GetSetting(ctx, "session.user")
	require.NoError(t, err)
	assert.Equal(t, "chen", got)

	// Overwrite.
	require.NoError(t, s.SetSetting(ctx, "session.user", "lin"))
	got, err = s.GetSetting(ctx, "session.user")
	require.NoError(t, err)
	assert.Equal(t, "lin", got)
}

func TestClearSettings(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetSetting(ctx, "session.user", "chen"))
	require.NoError(t, s.SetSetting(ctx, "sync.last", "2024-01-01T00:00:00Z"))

	require.NoError(t, s.ClearSettings(ctx))

	for _, key := range []string{"session.user", "sync.last"} {
		got, err := s.GetSetting(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}
