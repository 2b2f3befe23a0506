// Package memory provides an in-process SlotStore for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/emiliopalmerini/worktime/internal/ports"
)

// SlotStore keeps slots in a map. Values are copied on the way in and out.
type SlotStore struct {
	mu    sync.Mutex
	slots map[ports.Slot][]byte
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[ports.Slot][]byte)}
}

func (s *SlotStore) Persist(ctx context.Context, slot ports.Slot, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = append([]byte(nil), value...)
	return nil
}

func (s *SlotStore) PersistBatch(ctx context.Context, values map[ports.Slot][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for slot, value := range values {
		s.slots[slot] = append([]byte(nil), value...)
	}
	return nil
}

func (s *SlotStore) Retrieve(ctx context.Context, slot ports.Slot) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *SlotStore) Remove(ctx context.Context, slot ports.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
