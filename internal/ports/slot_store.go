package ports

import "context"

// Slot names one of the persisted key-value slots.
type Slot string

const (
	SlotSession    Slot = "session"
	SlotHistory    Slot = "history"
	SlotSettings   Slot = "settings"
	SlotCategories Slot = "categories"
)

// Slots lists every slot the tracker persists.
var Slots = []Slot{SlotSession, SlotHistory, SlotSettings, SlotCategories}

// SlotStore is the durable key-value substrate holding one JSON document per slot.
type SlotStore interface {
	Persist(ctx context.Context, slot Slot, value []byte) error
	// PersistBatch writes all values atomically: either every slot is
	// updated or none is.
	PersistBatch(ctx context.Context, values map[Slot][]byte) error
	// Retrieve reports ok=false when the slot has never been written or was removed.
	Retrieve(ctx context.Context, slot Slot) (value []byte, ok bool, err error)
	Remove(ctx context.Context, slot Slot) error
}
