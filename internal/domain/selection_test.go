package domain

import (
	"reflect"
	"testing"
)

func sixEntries() []HistoryEntry {
	history := make([]HistoryEntry, 6)
	for i := range history {
		history[i] = HistoryEntry{ID: string(rune('a' + i))}
	}
	return history
}

func TestSelection_DeleteShiftsPositions(t *testing.T) {
	history := sixEntries()
	sel := &Selection{}
	for _, i := range []int{1, 3, 5} {
		if err := sel.SelectIndex(history, i); err != nil {
			t.Fatal(err)
		}
	}

	// delete position 3
	deleted := history[3]
	history = append(history[:3], history[4:]...)
	sel.Remove(deleted.ID)

	if got, want := sel.Indices(history), []int{1, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
}

func TestSelection_UnrelatedDeleteKeepsMembership(t *testing.T) {
	history := sixEntries()
	sel := NewSelection("b", "e")

	history = append(history[:0], history[1:]...)
	sel.Prune(history)

	if got, want := sel.Indices(history), []int{0, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
	if sel.Len() != 2 {
		t.Errorf("Len() = %d, want 2", sel.Len())
	}
}

func TestSelection_SelectAllToggles(t *testing.T) {
	history := sixEntries()
	var sel Selection

	sel.SelectAll(history)
	if sel.Len() != len(history) {
		t.Fatalf("Len() = %d, want %d", sel.Len(), len(history))
	}
	sel.SelectAll(history)
	if sel.Len() != 0 {
		t.Errorf("second SelectAll should clear, Len() = %d", sel.Len())
	}
}

func TestSelection_ToggleAndRange(t *testing.T) {
	history := sixEntries()
	var sel Selection

	if !sel.Toggle("a") || !sel.Has("a") {
		t.Error("Toggle should select an unselected id")
	}
	if sel.Toggle("a") || sel.Has("a") {
		t.Error("Toggle should deselect a selected id")
	}
	if err := sel.SelectIndex(history, 6); err == nil {
		t.Error("SelectIndex past the end should fail")
	}
	if err := sel.SelectIndex(history, -1); err == nil {
		t.Error("SelectIndex(-1) should fail")
	}
}

func TestSelection_Prune(t *testing.T) {
	sel := NewSelection("a", "gone")
	sel.Prune(sixEntries())
	if sel.Has("gone") || !sel.Has("a") {
		t.Errorf("Prune kept stale id or dropped live one")
	}
}
