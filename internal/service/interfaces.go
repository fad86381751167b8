// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/warelog/warelog/internal/model"
)

// Storage defines the contract for the local durable cache. It mirrors
// the in-memory record set so a restart (or an offline session) starts
// from the last known snapshot instead of an empty screen.
type Storage interface {
	// Record operations.
	ReplaceTransactions(ctx context.Context, transactions []model.Transaction) error
	UpsertTransaction(ctx context.Context, tx model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)

	// Settings are a small durable key-value space for session state
	// and UI selections.
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	ClearSettings(ctx context.Context) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// RemoteStore is the spreadsheet-backed persistence endpoint. It is a
// flat key-value store with eventual consistency; the only read is a
// full-set fetch.
type RemoteStore interface {
	FetchAll(ctx context.Context) ([]model.Transaction, error)
	Insert(ctx context.Context, tx model.Transaction) error
	Update(ctx context.Context, tx model.Transaction) error
	Delete(ctx context.Context, id string, kind model.Kind) error
	Login(ctx context.Context, username, password string) (LoginResult, error)
}

// LoginResult is the remote auth verdict. Authorized false with a
// message is an auth failure; transport trouble surfaces as an error
// instead.
type LoginResult struct {
	Message    string
	Authorized bool
}

// AckMode selects how write acknowledgments are treated. The macro
// endpoint historically ran in a no-cors mode where responses were
// unreadable, so fire-and-forget reports success as soon as the request
// is accepted by the transport.
type AckMode string

const (
	// AckChecked awaits and inspects the endpoint's response.
	AckChecked AckMode = "checked"
	// AckFireAndForget discards the response and assumes success.
	AckFireAndForget AckMode = "fire-and-forget"
)

// WriteOutcome reports what a coordinator mutation did. Failures are
// communicated here, not as errors: local state has already been
// updated optimistically either way.
type WriteOutcome struct {
	// ID of the affected record (assigned when the caller omitted one).
	ID string
	// Created is true for an insert, false for an update-in-place.
	Created bool
	// Synced is true once the remote store acknowledged the write
	// under the active AckMode.
	Synced bool
	// Reconciled is true when a post-write refetch completed.
	Reconciled bool
}

// BatchProgress is invoked after each row of a batch submit.
type BatchProgress func(done, total int)

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
