package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/emiliopalmerini/worktime/internal/adapters/memory"
	"github.com/emiliopalmerini/worktime/internal/domain"
	"github.com/emiliopalmerini/worktime/internal/ports"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(memory.NewSlotStore(), &recordingLogger{})

	if _, ok, err := s.Load(ctx); err != nil || ok {
		t.Fatalf("Load() on empty = ok %v, err %v", ok, err)
	}

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	var session domain.Session
	_ = session.Start(start, "meeting")
	_ = session.BeginBreak(start.Add(time.Hour))
	session.Note = "standup"

	if err := s.Save(ctx, session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load() = ok %v, err %v", ok, err)
	}
	if got.State() != domain.StateOnBreak || got.CategoryID != "meeting" || got.Note != "standup" {
		t.Errorf("Load() = %+v", got)
	}
	if !got.CurrentBreakStart.Equal(start.Add(time.Hour)) {
		t.Errorf("CurrentBreakStart = %v", got.CurrentBreakStart)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Load(ctx); ok {
		t.Error("Load() after Clear reported a session")
	}
}

func TestSessionStore_LoadUnreadable(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStore()
	log := &recordingLogger{}
	_ = slots.Persist(ctx, ports.SlotSession, []byte(`[1,2`))

	_, ok, err := NewSessionStore(slots, log).Load(ctx)
	if err != nil || ok {
		t.Errorf("Load() = ok %v, err %v; want no session", ok, err)
	}
	if len(log.warnings) != 1 {
		t.Errorf("warnings = %v", log.warnings)
	}
}

func TestSettingsStore_Load(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		want     domain.Settings
		warnings int
	}{
		{
			name: "missing",
			want: domain.DefaultSettings(),
		},
		{
			name:   "partial merges over defaults",
			stored: `{"dailyNorm":7.5}`,
			want:   domain.Settings{DailyNorm: 7.5, BreakReminderInterval: 120, BreakReminderEnabled: true},
		},
		{
			name:     "invalid falls back",
			stored:   `{"dailyNorm":-1}`,
			want:     domain.DefaultSettings(),
			warnings: 1,
		},
		{
			name:     "garbage falls back",
			stored:   `nope`,
			want:     domain.DefaultSettings(),
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			slots := memory.NewSlotStore()
			log := &recordingLogger{}
			if tt.stored != "" {
				_ = slots.Persist(ctx, ports.SlotSettings, []byte(tt.stored))
			}

			got, err := NewSettingsStore(slots, log).Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("settings mismatch (-want +got):\n%s", diff)
			}
			if len(log.warnings) != tt.warnings {
				t.Errorf("warnings = %v, want %d", log.warnings, tt.warnings)
			}
		})
	}
}

func TestSettingsStore_SaveRejectsInvalid(t *testing.T) {
	s := NewSettingsStore(memory.NewSlotStore(), &recordingLogger{})
	err := s.Save(context.Background(), domain.Settings{DailyNorm: 30, BreakReminderInterval: 60})
	if !errors.Is(err, domain.ErrInvalidSettings) {
		t.Errorf("Save() error = %v, want ErrInvalidSettings", err)
	}
}

func TestCategoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewCategoryStore(memory.NewSlotStore(), &recordingLogger{})

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(domain.Categories(domain.DefaultCategories()), got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	added, err := s.Add(ctx, "Research", "#123456")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if c, _ := s.Lookup(ctx, added.ID); c != added {
		t.Errorf("Lookup() = %+v, want %+v", c, added)
	}

	if _, err := s.Add(ctx, "Bad", "url(x)"); !errors.Is(err, domain.ErrInvalidColor) {
		t.Errorf("Add() bad color error = %v", err)
	}
	if err := s.Delete(ctx, domain.DefaultCategoryID); !errors.Is(err, domain.ErrProtectedCategory) {
		t.Errorf("Delete(default) error = %v", err)
	}
	if err := s.Delete(ctx, added.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, _ = s.Load(ctx)
	if got.Has(added.ID) {
		t.Error("deleted category still present")
	}
	if c, _ := s.Lookup(ctx, added.ID); c.ID != domain.DefaultCategoryID {
		t.Errorf("Lookup(deleted) = %s, want fallback to default", c.ID)
	}
}

func TestCategoryStore_EmptyFallsBack(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStore()
	_ = slots.Persist(ctx, ports.SlotCategories, []byte(`[]`))

	got, err := NewCategoryStore(slots, &recordingLogger{}).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(domain.DefaultCategories()) {
		t.Errorf("Load() = %d categories, want defaults", len(got))
	}
}
