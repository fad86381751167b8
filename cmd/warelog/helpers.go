package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/warelog/warelog/internal/config"
	"github.com/warelog/warelog/internal/coordinator"
	"github.com/warelog/warelog/internal/remote"
	"github.com/warelog/warelog/internal/service"
	"github.com/warelog/warelog/internal/session"
	"github.com/warelog/warelog/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/warelog/warelog.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initRemote builds the remote store client from config.
func initRemote() (service.RemoteStore, error) {
	return remote.NewClient(config.LoadRemoteConfig())
}

// app bundles the wired services every command needs.
type app struct {
	storage  service.Storage
	remote   service.RemoteStore
	sessions *session.Manager
	coord    *coordinator.Coordinator
}

func initApp(ctx context.Context) (*app, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	client, err := initRemote()
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	sessions := session.NewManager(store)
	return &app{
		storage:  store,
		remote:   client,
		sessions: sessions,
		coord:    coordinator.New(store, client, sessions),
	}, nil
}

func (a *app) Close() {
	_ = a.storage.Close()
}
