package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/ports"
	"github.com/emiliopalmerini/worktime/internal/store"
)

// ErrInvalidDocument is returned for backups that cannot be imported.
// Nothing is written when it is returned.
var ErrInvalidDocument = errors.New("invalid backup document")

type document struct {
	History    json.RawMessage `json:"history"`
	Settings   json.RawMessage `json:"settings"`
	Categories json.RawMessage `json:"categories"`
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// ImportResult summarizes what an import changed.
type ImportResult struct {
	// Imported is the number of history records read from the document.
	Imported int
	// Skipped counts history records that could not be read.
	Skipped int
	// Added is the number of imported records not already in the history.
	Added int
	// History is the length of the merged history.
	History         int
	SettingsUpdated bool
	CategoriesAdded int
}

// Importer merges backup documents into the store.
type Importer struct {
	slots  ports.SlotStore
	stores store.Stores
	logger ports.Logger
}

func NewImporter(slots ports.SlotStore, stores store.Stores, logger ports.Logger) *Importer {
	return &Importer{slots: slots, stores: stores, logger: logger}
}

// Import reads a backup from r and merges it: history records are added
// unless an entry with the same start and end already exists, the result is
// sorted newest first and capped; settings are applied over the defaults;
// categories are added by id, keeping existing ones. All slots are written
// in one batch.
func (im *Importer) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !present(doc.History) && !present(doc.Settings) && !present(doc.Categories) {
		return ImportResult{}, fmt.Errorf("%w: no history, settings or categories", ErrInvalidDocument)
	}

	var result ImportResult
	batch := make(map[ports.Slot][]byte)

	if present(doc.History) {
		imported, skipped, err := domain.DecodeHistory(doc.History)
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		existing, err := im.stores.History.Get(ctx)
		if err != nil {
			return ImportResult{}, err
		}

		merged, added := MergeHistory(imported, existing)
		encoded, err := store.EncodeHistory(merged)
		if err != nil {
			return ImportResult{}, err
		}
		batch[ports.SlotHistory] = encoded

		result.Imported = len(imported)
		result.Skipped = skipped
		result.Added = added
		result.History = min(len(merged), domain.HistoryCapacity)
		if skipped > 0 {
			im.logger.Warn(fmt.Sprintf("import skipped %d malformed history records", skipped))
		}
	}

	if present(doc.Settings) {
		settings, err := store.MergeSettings(doc.Settings)
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: settings: %v", ErrInvalidDocument, err)
		}
		encoded, err := json.Marshal(settings)
		if err != nil {
			return ImportResult{}, fmt.Errorf("failed to encode settings: %w", err)
		}
		batch[ports.SlotSettings] = encoded
		result.SettingsUpdated = true
	}

	if present(doc.Categories) {
		var incoming []domain.Category
		if err := json.Unmarshal(doc.Categories, &incoming); err != nil {
			return ImportResult{}, fmt.Errorf("%w: categories: %v", ErrInvalidDocument, err)
		}
		existing, err := im.stores.Categories.Load(ctx)
		if err != nil {
			return ImportResult{}, err
		}

		valid := incoming[:0]
		for _, c := range incoming {
			if c.Name == "" || !domain.ValidColor(c.Color) {
				im.logger.Warn(fmt.Sprintf("import skipped category %q with invalid name or color", c.ID))
				continue
			}
			valid = append(valid, c)
		}
		merged := existing.Merge(valid)
		encoded, err := store.EncodeCategories(merged)
		if err != nil {
			return ImportResult{}, err
		}
		batch[ports.SlotCategories] = encoded
		result.CategoriesAdded = len(merged) - len(existing)
	}

	if err := im.slots.PersistBatch(ctx, batch); err != nil {
		return ImportResult{}, fmt.Errorf("failed to save import: %w", err)
	}
	im.logger.Debug(fmt.Sprintf("imported %d history records (%d new), %d categories",
		result.Imported, result.Added, result.CategoriesAdded))
	return result, nil
}

// MergeHistory puts imported entries ahead of existing ones, drops existing
// entries with the same start and end as an imported one, and sorts the
// result newest first. Imported entries whose id is already taken get a new
// one. The result is not capped. added counts imported entries that did not
// replace an existing one.
func MergeHistory(imported, existing []domain.HistoryEntry) (merged []domain.HistoryEntry, added int) {
	type span struct{ start, end int64 }
	key := func(e domain.HistoryEntry) span {
		return span{e.WorkStart.UnixMilli(), e.WorkEnd.UnixMilli()}
	}

	merged = make([]domain.HistoryEntry, 0, len(imported)+len(existing))
	spans := make(map[span]string, len(existing))
	ids := make(map[string]struct{}, len(imported)+len(existing))
	for _, e := range existing {
		spans[key(e)] = e.ID
		ids[e.ID] = struct{}{}
	}

	seen := make(map[span]struct{}, len(imported)+len(existing))
	for _, e := range imported {
		k := key(e)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		sameID, replaces := spans[k]
		if !replaces {
			added++
		}
		if _, taken := ids[e.ID]; taken && (!replaces || sameID != e.ID) {
			e.ID = uuid.NewString()
		}
		ids[e.ID] = struct{}{}
		merged = append(merged, e)
	}
	for _, e := range existing {
		if _, dup := seen[key(e)]; dup {
			continue
		}
		seen[key(e)] = struct{}{}
		merged = append(merged, e)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].WorkStart.After(merged[j].WorkStart)
	})
	return merged, added
}
