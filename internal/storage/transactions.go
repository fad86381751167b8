package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/warelog/warelog/internal/common"
	"github.com/warelog/warelog/internal/model"
)

const transactionColumns = `id, date, kind, material_name, material_number,
	machine_category, machine_number, quantity, unit_price, total, note,
	operator, account_category, is_received, sn, fault_reason, is_scrapped,
	sent_date, repair_date, install_date, revision`

// ReplaceTransactions swaps the entire cached snapshot for the given
// record set in one transaction. This is the reconciliation path: the
// remote store is always fetched whole, so the cache is replaced whole.
func (s *SQLiteStorage) ReplaceTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for _, t := range transactions {
		if err := validateTransaction(t); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range transactions {
		if _, err := stmt.ExecContext(ctx, transactionArgs(t)...); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// UpsertTransaction writes one record by full replace-by-id.
func (s *SQLiteStorage) UpsertTransaction(ctx context.Context, t model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(t); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date=excluded.date, kind=excluded.kind,
			material_name=excluded.material_name,
			material_number=excluded.material_number,
			machine_category=excluded.machine_category,
			machine_number=excluded.machine_number,
			quantity=excluded.quantity, unit_price=excluded.unit_price,
			total=excluded.total, note=excluded.note,
			operator=excluded.operator,
			account_category=excluded.account_category,
			is_received=excluded.is_received, sn=excluded.sn,
			fault_reason=excluded.fault_reason,
			is_scrapped=excluded.is_scrapped,
			sent_date=excluded.sent_date, repair_date=excluded.repair_date,
			install_date=excluded.install_date, revision=excluded.revision
	`, transactionArgs(t)...)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTransaction removes one record. Deleting an unknown id is a
// no-op, matching the remote store's cascading-scan delete contract.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	return nil
}

// GetTransactions returns the full cached snapshot, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return out, nil
}

// GetTransactionByID fetches a single record, or common.ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions WHERE id = ?
	`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func transactionArgs(t model.Transaction) []any {
	return []any{
		t.ID, t.Date, string(t.Kind), t.MaterialName, t.MaterialNumber,
		t.MachineCategory, t.MachineNumber, t.Quantity, t.UnitPrice,
		t.Total, t.Note, t.Operator, t.AccountCategory,
		boolToInt(t.IsReceived), t.SN, t.FaultReason,
		boolToInt(t.IsScrapped), t.SentDate, t.RepairDate, t.InstallDate,
		t.Revision,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var kind string
	var received, scrapped int

	err := row.Scan(
		&t.ID, &t.Date, &kind, &t.MaterialName, &t.MaterialNumber,
		&t.MachineCategory, &t.MachineNumber, &t.Quantity, &t.UnitPrice,
		&t.Total, &t.Note, &t.Operator, &t.AccountCategory,
		&received, &t.SN, &t.FaultReason, &scrapped,
		&t.SentDate, &t.RepairDate, &t.InstallDate, &t.Revision,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("failed to scan transaction: %w", err)
	}

	t.Kind = model.Kind(kind)
	t.IsReceived = received != 0
	t.IsScrapped = scrapped != 0
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
