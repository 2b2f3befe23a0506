package domain

import "fmt"

// Selection is the set of history entries chosen for bulk export. It is
// keyed by entry ID, so deleting an entry never renumbers the others; the
// positional view is derived from the current history with Indices.
// The zero value is an empty selection.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns a selection holding ids.
func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *Selection) Add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

func (s *Selection) Remove(id string) {
	delete(s.ids, id)
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.ids = nil
}

// SelectIndex adds the entry at position i of history.
func (s *Selection) SelectIndex(history []HistoryEntry, i int) error {
	if i < 0 || i >= len(history) {
		return fmt.Errorf("select %d of %d entries: %w", i, len(history), ErrIndexOutOfRange)
	}
	s.Add(history[i].ID)
	return nil
}

// SelectAll selects every entry of history, or clears the selection when
// every entry is already selected.
func (s *Selection) SelectAll(history []HistoryEntry) {
	if len(history) > 0 && len(s.Indices(history)) == len(history) {
		s.Clear()
		return
	}
	for _, e := range history {
		s.Add(e.ID)
	}
}

// Indices returns the ascending positions in history of the selected entries.
func (s *Selection) Indices(history []HistoryEntry) []int {
	out := []int{}
	for i, e := range history {
		if s.Has(e.ID) {
			out = append(out, i)
		}
	}
	return out
}

// Entries returns the selected entries in history order.
func (s *Selection) Entries(history []HistoryEntry) []HistoryEntry {
	var out []HistoryEntry
	for _, e := range history {
		if s.Has(e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// Prune drops ids that no longer appear in history.
func (s *Selection) Prune(history []HistoryEntry) {
	present := make(map[string]struct{}, len(history))
	for _, e := range history {
		present[e.ID] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := present[id]; !ok {
			delete(s.ids, id)
		}
	}
}
