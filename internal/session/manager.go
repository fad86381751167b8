// Package session keeps the signed-in user and sticky UI selections in
// the settings table, and runs the idle watchdog that expires stale
// sessions.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/warelog/warelog/internal/common"
	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/service"
)

// Settings keys owned by this package.
const (
	keyUser      = "session.user"
	keyLastSync  = "sync.last"
	keyView      = "ui.active_view"
	keyViewScope = "ui.view_scope"
)

// Manager persists session state through the storage settings space.
type Manager struct {
	storage service.Storage
}

// NewManager creates a session manager backed by the given storage.
func NewManager(storage service.Storage) *Manager {
	return &Manager{storage: storage}
}

// Login verifies credentials against the remote store and, when
// authorized, records the user. An unauthorized verdict is returned as
// data so callers can show the endpoint's message.
func (m *Manager) Login(ctx context.Context, remote service.RemoteStore, username, password string) (service.LoginResult, error) {
	result, err := remote.Login(ctx, username, password)
	if err != nil {
		return service.LoginResult{}, fmt.Errorf("login request failed: %w", err)
	}
	if !result.Authorized {
		return result, nil
	}

	if err := m.storage.SetSetting(ctx, keyUser, username); err != nil {
		return result, fmt.Errorf("failed to persist session: %w", err)
	}
	common.LogInfo("User logged in", common.Fields{"user": username})
	return result, nil
}

// Logout clears the whole settings space, dropping the user, the last
// sync marker, and the saved UI selections together.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.storage.ClearSettings(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in username, empty when nobody is.
func (m *Manager) CurrentUser(ctx context.Context) (string, error) {
	return m.storage.GetSetting(ctx, keyUser)
}

// RequireUser returns the signed-in username or ErrNoSession.
func (m *Manager) RequireUser(ctx context.Context) (string, error) {
	user, err := m.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == "" {
		return "", common.ErrNoSession
	}
	return user, nil
}

// LastSync returns the time of the last completed refresh, zero when
// none has happened yet.
func (m *Manager) LastSync(ctx context.Context) (time.Time, error) {
	raw, err := m.storage.GetSetting(ctx, keyLastSync)
	if err != nil || raw == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

// SetLastSync records a completed refresh.
func (m *Manager) SetLastSync(ctx context.Context, t time.Time) error {
	return m.storage.SetSetting(ctx, keyLastSync, t.UTC().Format(time.RFC3339))
}

// ActiveView returns the saved view selection, defaulting to records.
func (m *Manager) ActiveView(ctx context.Context) (model.View, error) {
	raw, err := m.storage.GetSetting(ctx, keyView)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return model.ViewRecords, nil
	}
	return model.View(raw), nil
}

// SetActiveView saves the view selection across runs.
func (m *Manager) SetActiveView(ctx context.Context, view model.View) error {
	return m.storage.SetSetting(ctx, keyView, string(view))
}

// ViewScope returns the saved list scope, defaulting to recent.
func (m *Manager) ViewScope(ctx context.Context) (model.Scope, error) {
	raw, err := m.storage.GetSetting(ctx, keyViewScope)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return model.ScopeRecent, nil
	}
	return model.Scope(raw), nil
}

// SetViewScope saves the list scope across runs.
func (m *Manager) SetViewScope(ctx context.Context, scope model.Scope) error {
	return m.storage.SetSetting(ctx, keyViewScope, string(scope))
}
