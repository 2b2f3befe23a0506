// Package store keeps the tracker's persisted state in named slots:
// the history log, the current session, settings and categories.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/ports"
)

// HistoryStore is the newest-first log of completed sessions.
type HistoryStore struct {
	slots  ports.SlotStore
	logger ports.Logger
}

func NewHistoryStore(slots ports.SlotStore, logger ports.Logger) *HistoryStore {
	return &HistoryStore{slots: slots, logger: logger}
}

// Get returns the full history. Unparseable data yields an empty history;
// only storage failures are returned as errors.
func (s *HistoryStore) Get(ctx context.Context) ([]domain.HistoryEntry, error) {
	data, ok, err := s.slots.Retrieve(ctx, ports.SlotHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if !ok || len(data) == 0 {
		return []domain.HistoryEntry{}, nil
	}

	entries, skipped, err := domain.DecodeHistory(data)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("history is unreadable, starting empty: %v", err))
		return []domain.HistoryEntry{}, nil
	}
	if skipped > 0 {
		s.logger.Warn(fmt.Sprintf("skipped %d malformed history records", skipped))
	}
	return entries, nil
}

// EncodeHistory serializes entries for the history slot, keeping at most
// HistoryCapacity of them.
func EncodeHistory(entries []domain.HistoryEntry) ([]byte, error) {
	if len(entries) > domain.HistoryCapacity {
		entries = entries[:domain.HistoryCapacity]
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}

// Save replaces the whole history.
func (s *HistoryStore) Save(ctx context.Context, entries []domain.HistoryEntry) error {
	data, err := EncodeHistory(entries)
	if err != nil {
		return err
	}
	if err := s.slots.Persist(ctx, ports.SlotHistory, data); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Append inserts e at position 0. When the log grows beyond
// HistoryCapacity the oldest entry is dropped.
func (s *HistoryStore) Append(ctx context.Context, e domain.HistoryEntry) error {
	entries, err := s.Get(ctx)
	if err != nil {
		return err
	}

	entries = append([]domain.HistoryEntry{e}, entries...)
	if len(entries) > domain.HistoryCapacity {
		dropped := entries[domain.HistoryCapacity:]
		entries = entries[:domain.HistoryCapacity]
		s.logger.Debug(fmt.Sprintf("history full, dropped %d oldest entries", len(dropped)))
	}
	return s.Save(ctx, entries)
}

// UpdateAt replaces the entry at index. An index outside the history
// returns ErrIndexOutOfRange and changes nothing.
func (s *HistoryStore) UpdateAt(ctx context.Context, index int, e domain.HistoryEntry) error {
	entries, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("update entry %d of %d: %w", index, len(entries), domain.ErrIndexOutOfRange)
	}

	entries[index] = e
	return s.Save(ctx, entries)
}

// DeleteAt removes and returns the entry at index; later entries shift down
// by one. An index outside the history returns ErrIndexOutOfRange and
// changes nothing.
func (s *HistoryStore) DeleteAt(ctx context.Context, index int) (domain.HistoryEntry, error) {
	entries, err := s.Get(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if index < 0 || index >= len(entries) {
		return domain.HistoryEntry{}, fmt.Errorf("delete entry %d of %d: %w", index, len(entries), domain.ErrIndexOutOfRange)
	}

	removed := entries[index]
	entries = append(entries[:index], entries[index+1:]...)
	if err := s.Save(ctx, entries); err != nil {
		return domain.HistoryEntry{}, err
	}
	return removed, nil
}

// IndexOf returns the position of the entry with id, or -1.
func IndexOf(entries []domain.HistoryEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
