// Package coordinator owns every mutation of the record set. Writes
// apply to the local cache first, then dispatch to the remote store,
// then reconcile by refetching. Remote failure never rolls the local
// state back; the outcome carries the sync verdict instead.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/warelog/warelog/internal/common"
	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/service"
	"github.com/warelog/warelog/internal/session"
)

// keyPending counts optimistic writes the remote never acknowledged.
// Cleared by the next completed refresh.
const keyPending = "sync.pending"

// Coordinator serializes record mutations across the local cache and
// the remote store.
type Coordinator struct {
	storage  service.Storage
	remote   service.RemoteStore
	sessions *session.Manager
}

// New creates a mutation coordinator.
func New(storage service.Storage, remote service.RemoteStore, sessions *session.Manager) *Coordinator {
	return &Coordinator{
		storage:  storage,
		remote:   remote,
		sessions: sessions,
	}
}

// Upsert applies a record mutation: fill defaults, recompute the
// total, write locally, dispatch remotely, and reconcile on success.
func (c *Coordinator) Upsert(ctx context.Context, tx model.Transaction) (service.WriteOutcome, error) {
	return c.upsert(ctx, tx, true)
}

func (c *Coordinator) upsert(ctx context.Context, tx model.Transaction, reconcile bool) (service.WriteOutcome, error) {
	user, err := c.sessions.RequireUser(ctx)
	if err != nil {
		return service.WriteOutcome{}, err
	}

	created := false
	var existing *model.Transaction
	if tx.ID == "" {
		tx.ID = uuid.NewString()
		created = true
	} else {
		existing, err = c.storage.GetTransactionByID(ctx, tx.ID)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				return service.WriteOutcome{}, fmt.Errorf("failed to look up record: %w", err)
			}
			created = true
		}
	}

	if existing != nil {
		if tx.Kind != existing.Kind {
			return service.WriteOutcome{}, common.NewUserError("a record cannot change kind", nil)
		}
		// Operator is stamped at creation and stays.
		tx.Operator = existing.Operator
	}

	normalize(&tx, user)
	if existing != nil {
		tx.Revision = existing.Revision + 1
	} else {
		tx.Revision = 1
	}

	if err := c.storage.UpsertTransaction(ctx, tx); err != nil {
		return service.WriteOutcome{}, fmt.Errorf("failed to apply record locally: %w", err)
	}

	outcome := service.WriteOutcome{ID: tx.ID, Created: created}

	dispatch := c.remote.Update
	if created {
		dispatch = c.remote.Insert
	}
	if err := dispatch(ctx, tx); err != nil {
		// Local state stays: the record is visible now and the pending
		// counter remembers that the remote has not seen it.
		common.LogError(err, "remote write failed, keeping local state", common.Fields{
			"id":      tx.ID,
			"kind":    string(tx.Kind),
			"created": created,
		})
		c.markPending(ctx)
		return outcome, nil
	}
	outcome.Synced = true

	if reconcile {
		if err := c.Refresh(ctx); err != nil {
			common.LogError(err, "post-write reconcile failed", common.Fields{"id": tx.ID})
		} else {
			outcome.Reconciled = true
		}
	}
	return outcome, nil
}

// Delete removes a record locally and remotely. Deleting an id nobody
// has is a success no-op.
func (c *Coordinator) Delete(ctx context.Context, id string) (service.WriteOutcome, error) {
	if _, err := c.sessions.RequireUser(ctx); err != nil {
		return service.WriteOutcome{}, err
	}
	if id == "" {
		return service.WriteOutcome{}, common.NewUserError("record id is required", nil)
	}

	existing, err := c.storage.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return service.WriteOutcome{ID: id, Synced: true}, nil
		}
		return service.WriteOutcome{}, fmt.Errorf("failed to look up record: %w", err)
	}

	if err := c.storage.DeleteTransaction(ctx, id); err != nil {
		return service.WriteOutcome{}, fmt.Errorf("failed to delete record locally: %w", err)
	}

	outcome := service.WriteOutcome{ID: id}
	if err := c.remote.Delete(ctx, id, existing.Kind); err != nil {
		common.LogError(err, "remote delete failed, keeping local state", common.Fields{"id": id})
		c.markPending(ctx)
		return outcome, nil
	}
	outcome.Synced = true

	if err := c.Refresh(ctx); err != nil {
		common.LogError(err, "post-delete reconcile failed", common.Fields{"id": id})
	} else {
		outcome.Reconciled = true
	}
	return outcome, nil
}

// BatchUpsert submits records one at a time, reporting progress after
// each row. Reconciliation happens once at the end instead of per row.
func (c *Coordinator) BatchUpsert(ctx context.Context, records []model.Transaction, progress service.BatchProgress) ([]service.WriteOutcome, error) {
	outcomes := make([]service.WriteOutcome, 0, len(records))
	anySynced := false

	for i, tx := range records {
		outcome, err := c.upsert(ctx, tx, false)
		if err != nil {
			return outcomes, fmt.Errorf("batch row %d: %w", i+1, err)
		}
		outcomes = append(outcomes, outcome)
		anySynced = anySynced || outcome.Synced
		if progress != nil {
			progress(i+1, len(records))
		}
	}

	if anySynced {
		if err := c.Refresh(ctx); err != nil {
			common.LogError(err, "post-batch reconcile failed", nil)
		} else {
			for i := range outcomes {
				if outcomes[i].Synced {
					outcomes[i].Reconciled = true
				}
			}
		}
	}
	return outcomes, nil
}

// Refresh pulls the full remote snapshot and replaces the local cache
// with it. Records whose local revision advanced while the fetch was
// in flight keep their local version, so a slow refetch cannot clobber
// a newer edit.
func (c *Coordinator) Refresh(ctx context.Context) error {
	before, err := c.snapshotRevisions(ctx)
	if err != nil {
		return err
	}

	fetched, err := c.remote.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch remote records: %w", err)
	}

	current, err := c.storage.GetTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to read local records: %w", err)
	}
	byID := make(map[string]model.Transaction, len(current))
	for _, tx := range current {
		byID[tx.ID] = tx
	}

	merged := make([]model.Transaction, 0, len(fetched))
	seen := make(map[string]bool, len(fetched))
	for _, remote := range fetched {
		seen[remote.ID] = true
		local, ok := byID[remote.ID]
		if ok && local.Revision > before[remote.ID] {
			// Edited locally after the snapshot was taken.
			merged = append(merged, local)
			continue
		}
		if ok {
			remote.Revision = local.Revision
		}
		merged = append(merged, remote)
	}
	// Locally-created records the remote has not surfaced yet survive
	// the replace when they advanced past the snapshot.
	for _, local := range current {
		if !seen[local.ID] && local.Revision > before[local.ID] {
			merged = append(merged, local)
		}
	}

	if err := c.storage.ReplaceTransactions(ctx, merged); err != nil {
		return fmt.Errorf("failed to replace local records: %w", err)
	}

	if err := c.sessions.SetLastSync(ctx, time.Now()); err != nil {
		common.LogError(err, "failed to record sync time", nil)
	}
	c.clearPending(ctx)

	common.LogDebug("Refresh completed", common.Fields{"records": len(merged)})
	return nil
}

// PendingWrites reports how many optimistic writes still lack a remote
// acknowledgment.
func (c *Coordinator) PendingWrites(ctx context.Context) (int, error) {
	raw, err := c.storage.GetSetting(ctx, keyPending)
	if err != nil || raw == "" {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (c *Coordinator) snapshotRevisions(ctx context.Context) (map[string]int64, error) {
	records, err := c.storage.GetTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot local records: %w", err)
	}
	revisions := make(map[string]int64, len(records))
	for _, tx := range records {
		revisions[tx.ID] = tx.Revision
	}
	return revisions, nil
}

func (c *Coordinator) markPending(ctx context.Context) {
	n, _ := c.PendingWrites(ctx)
	if err := c.storage.SetSetting(ctx, keyPending, strconv.Itoa(n+1)); err != nil {
		common.LogError(err, "failed to record pending write", nil)
	}
}

func (c *Coordinator) clearPending(ctx context.Context) {
	if err := c.storage.SetSetting(ctx, keyPending, "0"); err != nil {
		common.LogError(err, "failed to clear pending counter", nil)
	}
}

// normalize fills the stamps and derived fields a submitted record may
// omit. Repairs carry a flat fee: the entered total stands, quantity
// pins to one. Everything else recomputes total from quantity times
// unit price, whatever the caller sent.
func normalize(tx *model.Transaction, user string) {
	if tx.Date == "" {
		tx.Date = model.Today()
	} else {
		tx.Date = model.CivilDate(tx.Date)
		if tx.Date == "" {
			tx.Date = model.Today()
		}
	}
	if tx.Operator == "" {
		tx.Operator = user
	}

	if tx.Kind.QuantityPriced() {
		tx.Total = float64(tx.Quantity) * tx.UnitPrice
		return
	}
	tx.Quantity = 1
	tx.UnitPrice = 0
}
