package store

import "github.com/emiliopalmerini/worktime/internal/ports"

// Stores groups the four slot-backed stores over one SlotStore.
type Stores struct {
	Session    *SessionStore
	History    *HistoryStore
	Settings   *SettingsStore
	Categories *CategoryStore
}

func NewStores(slots ports.SlotStore, logger ports.Logger) Stores {
	return Stores{
		Session:    NewSessionStore(slots, logger),
		History:    NewHistoryStore(slots, logger),
		Settings:   NewSettingsStore(slots, logger),
		Categories: NewCategoryStore(slots, logger),
	}
}
