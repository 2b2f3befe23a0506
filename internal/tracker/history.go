package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/store"
)

// HistoryService edits and deletes recorded entries.
type HistoryService struct {
	stores store.Stores
	now    func() time.Time
}

func NewHistoryService(stores store.Stores, now func() time.Time) *HistoryService {
	if now == nil {
		now = time.Now
	}
	return &HistoryService{stores: stores, now: now}
}

// Entries returns the history, newest first.
func (h *HistoryService) Entries(ctx context.Context) ([]domain.HistoryEntry, error) {
	return h.stores.History.Get(ctx)
}

// Edit rewrites the entry at index from req and stores it in place.
func (h *HistoryService) Edit(ctx context.Context, index int, req domain.EditRequest) (domain.HistoryEntry, error) {
	entries, err := h.stores.History.Get(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if index < 0 || index >= len(entries) {
		return domain.HistoryEntry{}, fmt.Errorf("edit entry %d of %d: %w", index, len(entries), domain.ErrIndexOutOfRange)
	}

	categories, err := h.stores.Categories.Load(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	current := entries[index]
	categoryID := req.CategoryID
	if categoryID == "" {
		categoryID = current.CategoryID
	}

	// An entry whose category was deleted keeps its snapshot until moved.
	category := domain.Category{ID: categoryID, Name: current.CategoryName, Color: current.CategoryColor}
	switch {
	case categories.Has(categoryID):
		category = categories.Lookup(categoryID)
	case categoryID != current.CategoryID:
		return domain.HistoryEntry{}, fmt.Errorf("category %q: %w", categoryID, domain.ErrNotFound)
	}

	updated, err := domain.ApplyEdit(current, req, category, h.now())
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if err := h.stores.History.UpdateAt(ctx, index, updated); err != nil {
		return domain.HistoryEntry{}, err
	}
	return updated, nil
}

// DeleteAt removes the entry at index and drops it from sel, when given.
// The positions of the remaining selected entries shift with the history.
func (h *HistoryService) DeleteAt(ctx context.Context, index int, sel *domain.Selection) (domain.HistoryEntry, error) {
	removed, err := h.stores.History.DeleteAt(ctx, index)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if sel != nil {
		sel.Remove(removed.ID)
	}
	return removed, nil
}
