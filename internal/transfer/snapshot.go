package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/store"
	"github.com/emiliopalmerini/worktime/internal/util"
)

// SnapshotVersion is the backup document format version.
const SnapshotVersion = "2.0"

// Snapshot is the full JSON backup of the tracker.
type Snapshot struct {
	Version        string                `json:"version"`
	ExportDate     time.Time             `json:"exportDate"`
	History        []domain.HistoryEntry `json:"history"`
	Settings       domain.Settings       `json:"settings"`
	Categories     domain.Categories     `json:"categories"`
	CurrentSession json.RawMessage       `json:"currentSession"`
}

// JSONFileName is the default backup file name for now.
func JSONFileName(now time.Time) string {
	return "worktime_backup_" + util.FormatDateISO(now) + ".json"
}

// BuildSnapshot collects every slot into a backup document.
func BuildSnapshot(ctx context.Context, stores store.Stores, now time.Time) (Snapshot, error) {
	history, err := stores.History.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := stores.Settings.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	categories, err := stores.Categories.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	session, err := stores.Session.Raw(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Version:        SnapshotVersion,
		ExportDate:     now.UTC(),
		History:        history,
		Settings:       settings,
		Categories:     categories,
		CurrentSession: session,
	}, nil
}

// WriteJSON writes snap as indented JSON.
func WriteJSON(w io.Writer, snap Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
