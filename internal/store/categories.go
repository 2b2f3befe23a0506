package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/ports"
)

// CategoryStore persists the category registry.
type CategoryStore struct {
	slots  ports.SlotStore
	logger ports.Logger
}

func NewCategoryStore(slots ports.SlotStore, logger ports.Logger) *CategoryStore {
	return &CategoryStore{slots: slots, logger: logger}
}

// Load returns the saved categories, or the built-in ones when nothing
// usable is saved.
func (s *CategoryStore) Load(ctx context.Context) (domain.Categories, error) {
	data, ok, err := s.slots.Retrieve(ctx, ports.SlotCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if !ok || len(data) == 0 {
		return domain.DefaultCategories(), nil
	}

	var categories domain.Categories
	if err := json.Unmarshal(data, &categories); err != nil {
		s.logger.Warn(fmt.Sprintf("saved categories are unreadable, using defaults: %v", err))
		return domain.DefaultCategories(), nil
	}
	if len(categories) == 0 {
		return domain.DefaultCategories(), nil
	}
	return categories, nil
}

// EncodeCategories serializes categories for the categories slot.
func EncodeCategories(categories domain.Categories) ([]byte, error) {
	data, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}
	return data, nil
}

func (s *CategoryStore) Save(ctx context.Context, categories domain.Categories) error {
	data, err := EncodeCategories(categories)
	if err != nil {
		return err
	}
	if err := s.slots.Persist(ctx, ports.SlotCategories, data); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// Add creates a category with a generated id and saves it.
func (s *CategoryStore) Add(ctx context.Context, name, color string) (domain.Category, error) {
	category, err := domain.NewCategory(name, color)
	if err != nil {
		return domain.Category{}, err
	}

	categories, err := s.Load(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	if err := s.Save(ctx, append(categories, category)); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

// Delete removes the category with id. The default category is protected.
// History entries keep their category snapshot.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	categories, err := s.Load(ctx)
	if err != nil {
		return err
	}
	remaining, err := categories.Without(id)
	if err != nil {
		return err
	}
	return s.Save(ctx, remaining)
}

// Lookup returns the category with id, falling back to the first one.
func (s *CategoryStore) Lookup(ctx context.Context, id string) (domain.Category, error) {
	categories, err := s.Load(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	return categories.Lookup(id), nil
}
