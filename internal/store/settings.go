package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/ports"
)

// SettingsStore persists the tracker settings.
type SettingsStore struct {
	slots  ports.SlotStore
	logger ports.Logger
}

func NewSettingsStore(slots ports.SlotStore, logger ports.Logger) *SettingsStore {
	return &SettingsStore{slots: slots, logger: logger}
}

// MergeSettings decodes data over the defaults, so fields missing from data
// keep their default values.
func MergeSettings(data []byte) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.DefaultSettings(), err
	}
	if err := settings.Validate(); err != nil {
		return domain.DefaultSettings(), err
	}
	return settings, nil
}

// Load returns the saved settings merged over the defaults. Unreadable or
// invalid data yields the defaults.
func (s *SettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	data, ok, err := s.slots.Retrieve(ctx, ports.SlotSettings)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok || len(data) == 0 {
		return domain.DefaultSettings(), nil
	}

	settings, err := MergeSettings(data)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("saved settings are unusable, using defaults: %v", err))
	}
	return settings, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.slots.Persist(ctx, ports.SlotSettings, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
