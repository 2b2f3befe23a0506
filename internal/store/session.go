package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/ports"
)

// SessionStore persists the in-progress session snapshot.
type SessionStore struct {
	slots  ports.SlotStore
	logger ports.Logger
}

func NewSessionStore(slots ports.SlotStore, logger ports.Logger) *SessionStore {
	return &SessionStore{slots: slots, logger: logger}
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.slots.Persist(ctx, ports.SlotSession, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the saved session, ok=false when none is saved or the saved
// snapshot cannot be parsed.
func (s *SessionStore) Load(ctx context.Context) (domain.Session, bool, error) {
	data, ok, err := s.slots.Retrieve(ctx, ports.SlotSession)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || len(data) == 0 || string(data) == "null" {
		return domain.Session{}, false, nil
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn(fmt.Sprintf("saved session is unreadable, ignoring it: %v", err))
		return domain.Session{}, false, nil
	}
	return session, true, nil
}

// Raw returns the saved session document as stored, or nil.
func (s *SessionStore) Raw(ctx context.Context) (json.RawMessage, error) {
	data, ok, err := s.slots.Retrieve(ctx, ports.SlotSession)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || !json.Valid(data) {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.slots.Remove(ctx, ports.SlotSession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
