package turso

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/emiliopalmerini/worktime/internal/ports"
)

const maxRetries = 2

// SlotStore keeps each slot as one row of the slots table.
type SlotStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSlotStore creates a slot store on db. The slots table must exist.
func NewSlotStore(db *sql.DB) *SlotStore {
	return &SlotStore{db: db, now: time.Now}
}

const upsertSlot = `
	INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SlotStore) upsert(ctx context.Context, ex execer, slot ports.Slot, value []byte) error {
	_, err := ex.ExecContext(ctx, upsertSlot, string(slot), string(value), s.now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *SlotStore) Persist(ctx context.Context, slot ports.Slot, value []byte) error {
	_, err := WithRetry(ctx, maxRetries, func() (struct{}, error) {
		return struct{}{}, s.upsert(ctx, s.db, slot, value)
	})
	if err != nil {
		return fmt.Errorf("failed to persist slot %s: %w", slot, err)
	}
	return nil
}

// PersistBatch writes every value inside one transaction.
func (s *SlotStore) PersistBatch(ctx context.Context, values map[ports.Slot][]byte) error {
	slots := make([]ports.Slot, 0, len(values))
	for slot := range values {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, slot := range slots {
		if err := s.upsert(ctx, tx, slot, values[slot]); err != nil {
			return fmt.Errorf("failed to persist slot %s: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SlotStore) Retrieve(ctx context.Context, slot ports.Slot) ([]byte, bool, error) {
	value, err := WithRetry(ctx, maxRetries, func() (sql.NullString, error) {
		var v sql.NullString
		err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, string(slot)).Scan(&v)
		return v, err
	})
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to retrieve slot %s: %w", slot, err)
	}
	return []byte(value.String), true, nil
}

func (s *SlotStore) Remove(ctx context.Context, slot ports.Slot) error {
	_, err := WithRetry(ctx, maxRetries, func() (sql.Result, error) {
		return s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, string(slot))
	})
	if err != nil {
		return fmt.Errorf("failed to remove slot %s: %w", slot, err)
	}
	return nil
}
