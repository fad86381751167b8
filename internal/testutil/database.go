// Package testutil provides shared helpers for tests that need a real
// storage backend.
package testutil

import (
	"context"
	"testing"

	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/service"
	"github.com/warelog/warelog/internal/storage"
)

// TestDB is an in-memory database wired for one test.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database, seeds it with the
// given records, and registers cleanup.
func SetupTestDB(t *testing.T, records ...model.Transaction) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for _, tx := range records {
		if err := store.UpsertTransaction(ctx, tx); err != nil {
			t.Fatalf("failed to seed record %q: %v", tx.ID, err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// MustGet fetches a record by id, failing the test when it is missing.
func (db *TestDB) MustGet(ctx context.Context, id string) model.Transaction {
	db.t.Helper()

	tx, err := db.Storage.GetTransactionByID(ctx, id)
	if err != nil {
		db.t.Fatalf("failed to get record %q: %v", id, err)
	}
	return *tx
}
