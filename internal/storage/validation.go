// Package storage provides the local durable cache for warelog.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/warelog/warelog/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction checks the fields every cached record must carry.
func validateTransaction(tx model.Transaction) error {
	if strings.TrimSpace(tx.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTransaction)
	}
	if !tx.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTransaction, tx.Kind)
	}
	if tx.Total < 0 {
		return fmt.Errorf("%w: negative total", ErrInvalidTransaction)
	}
	return nil
}
