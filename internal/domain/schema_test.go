package domain

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHistoryEntry_UpgradesLegacyRecord(t *testing.T) {
	start, end := at(9, 0), at(17, 0)
	legacy := fmt.Sprintf(`{
		"workStartTime": %d,
		"workEndTime": %d,
		"startTime": "09:00",
		"endTime": "17:00",
		"totalWorkTime": "7h 30m",
		"breaks": [{"start": %d, "end": %d}],
		"totalBreakTime": "30m",
		"totalBreakTimeMs": 1800000
	}`, start.UnixMilli(), end.UnixMilli(), at(12, 0).UnixMilli(), at(12, 30).UnixMilli())

	var e HistoryEntry
	if err := json.Unmarshal([]byte(legacy), &e); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if e.ID == "" {
		t.Error("legacy record should receive an id")
	}
	if e.CategoryID != DefaultCategoryID || e.CategoryName != "General" || e.CategoryColor != "#0d9488" {
		t.Errorf("category = %s/%s/%s, want default", e.CategoryID, e.CategoryName, e.CategoryColor)
	}
	if e.Note != "" {
		t.Errorf("Note = %q, want empty", e.Note)
	}
	if e.BreaksCount != 1 {
		t.Errorf("BreaksCount = %d, want 1", e.BreaksCount)
	}
	if e.TotalWork != 7*time.Hour+30*time.Minute {
		t.Errorf("TotalWork = %v, want 7h30m recomputed from times", e.TotalWork)
	}
	if !e.WorkStart.Equal(start) {
		t.Errorf("WorkStart = %v, want %v", e.WorkStart, start)
	}
}

func TestHistoryEntry_LegacyIDIsStable(t *testing.T) {
	decode := func(start, end time.Time) string {
		t.Helper()
		doc := fmt.Sprintf(`{"workStartTime": %d, "workEndTime": %d}`, start.UnixMilli(), end.UnixMilli())
		var e HistoryEntry
		if err := json.Unmarshal([]byte(doc), &e); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		return e.ID
	}

	first, second := decode(at(9, 0), at(17, 0)), decode(at(9, 0), at(17, 0))
	if first != second {
		t.Errorf("same record decoded to ids %q and %q", first, second)
	}
	if other := decode(at(9, 0), at(16, 0)); other == first {
		t.Errorf("different spans share id %q", other)
	}
	if want := LegacyEntryID(at(9, 0).UnixMilli(), at(17, 0).UnixMilli()); first != want {
		t.Errorf("id = %q, want %q", first, want)
	}
}

func TestHistoryEntry_KnownCategoryKeepsSnapshotDefaults(t *testing.T) {
	doc := fmt.Sprintf(`{"workStartTime": %d, "workEndTime": %d, "categoryId": "project"}`,
		at(9, 0).UnixMilli(), at(10, 0).UnixMilli())

	var e HistoryEntry
	if err := json.Unmarshal([]byte(doc), &e); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if e.CategoryName != "Project" || e.CategoryColor != "#f59e0b" {
		t.Errorf("category snapshot = %s/%s, want Project/#f59e0b", e.CategoryName, e.CategoryColor)
	}
}

func TestHistoryEntry_JSONRoundTrip(t *testing.T) {
	e, err := NewHistoryEntry("id-1", finishedSession(t), Category{ID: "meeting", Name: "Meetings", Color: "#10b981"})
	if err != nil {
		t.Fatal(err)
	}
	e.ModifiedAt = at(18, 0)

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"workStartTime", "totalWorkTimeMs", "breaksCount", "categoryColor", "modifiedAt", "schemaVersion"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("encoded entry is missing %q", key)
		}
	}

	var back HistoryEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(e, back, cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeHistory(t *testing.T) {
	doc := fmt.Sprintf(`[
		{"id": "a", "workStartTime": %d, "workEndTime": %d},
		{"id": "broken"},
		{"id": "b", "workStartTime": %d, "workEndTime": %d}
	]`, at(9, 0).UnixMilli(), at(10, 0).UnixMilli(), at(11, 0).UnixMilli(), at(12, 0).UnixMilli())

	entries, skipped, err := DecodeHistory([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeHistory: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(entries) != 2 || entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("entries = %+v", entries)
	}

	if _, _, err := DecodeHistory([]byte(`{"not": "a list"}`)); err == nil {
		t.Error("expected error for non-array document")
	}
}

func TestSession_JSON(t *testing.T) {
	s := Session{
		Working:           true,
		OnBreak:           true,
		WorkStart:         at(9, 0),
		CurrentBreakStart: at(11, 0),
		Breaks:            []Break{{Start: at(10, 0), End: at(10, 10)}},
		Note:              "n",
		CategoryID:        "project",
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Session
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(s, back, cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	var fields map[string]any
	_ = json.Unmarshal(data, &fields)
	if fields["workEndTime"] != nil {
		t.Errorf("unset workEndTime should encode as null, got %v", fields["workEndTime"])
	}
}

func TestSession_UnmarshalRepairsFlags(t *testing.T) {
	var s Session
	doc := fmt.Sprintf(`{"isWorking": true, "isOnBreak": true, "workStartTime": %d}`, at(9, 0).UnixMilli())
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatal(err)
	}
	if s.OnBreak {
		t.Error("on-break flag without a break start should be dropped")
	}
	if s.CategoryID != DefaultCategoryID {
		t.Errorf("CategoryID = %q, want default", s.CategoryID)
	}
}
