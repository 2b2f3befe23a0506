package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the version stamped on every persisted history record.
// Version 1 records (no id, optional note and category) are upgraded on load.
const SchemaVersion = 2

// ErrMalformedRecord marks a persisted record that cannot be upgraded.
var ErrMalformedRecord = errors.New("malformed record")

// legacyEntryNamespace seeds the ids given to records saved without one.
var legacyEntryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://worktime/history-entry"))

// LegacyEntryID returns the id of a record saved without one. It depends only
// on the start and end milliseconds, so every load yields the same id.
func LegacyEntryID(startMs, endMs int64) string {
	return uuid.NewSHA1(legacyEntryNamespace, []byte(fmt.Sprintf("%d-%d", startMs, endMs))).String()
}

type breakRecord struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// entryRecord is the persisted shape of a HistoryEntry. Timestamps are
// milliseconds since the Unix epoch.
type entryRecord struct {
	SchemaVersion    int           `json:"schemaVersion,omitempty"`
	ID               string        `json:"id,omitempty"`
	WorkStartTime    int64         `json:"workStartTime"`
	WorkEndTime      int64         `json:"workEndTime"`
	StartTime        string        `json:"startTime"`
	EndTime          string        `json:"endTime"`
	TotalWorkTime    string        `json:"totalWorkTime"`
	TotalWorkTimeMs  *int64        `json:"totalWorkTimeMs,omitempty"`
	Breaks           []breakRecord `json:"breaks"`
	BreaksCount      int           `json:"breaksCount"`
	TotalBreakTime   string        `json:"totalBreakTime"`
	TotalBreakTimeMs int64         `json:"totalBreakTimeMs"`
	Note             *string       `json:"note,omitempty"`
	CategoryID       string        `json:"categoryId,omitempty"`
	CategoryName     string        `json:"categoryName,omitempty"`
	CategoryColor    string        `json:"categoryColor,omitempty"`
	ModifiedAt       *int64        `json:"modifiedAt,omitempty"`
}

// sessionRecord is the persisted shape of the current Session.
type sessionRecord struct {
	IsWorking         bool          `json:"isWorking"`
	IsOnBreak         bool          `json:"isOnBreak"`
	WorkStartTime     *int64        `json:"workStartTime"`
	WorkEndTime       *int64        `json:"workEndTime"`
	CurrentBreakStart *int64        `json:"currentBreakStart"`
	Breaks            []breakRecord `json:"breaks"`
	Note              string        `json:"note"`
	CategoryID        string        `json:"categoryId"`
	LastBreakReminder *int64        `json:"lastBreakReminder"`
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func optMillis(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromOptMillis(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return fromMillis(*ms)
}

func encodeBreaks(breaks []Break) []breakRecord {
	out := make([]breakRecord, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, breakRecord{Start: toMillis(b.Start), End: toMillis(b.End)})
	}
	return out
}

func decodeBreaks(records []breakRecord) []Break {
	if len(records) == 0 {
		return nil
	}
	out := make([]Break, 0, len(records))
	for _, r := range records {
		out = append(out, Break{Start: fromMillis(r.Start), End: fromMillis(r.End)})
	}
	return out
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	work := e.TotalWork.Milliseconds()
	note := e.Note
	return json.Marshal(entryRecord{
		SchemaVersion:    SchemaVersion,
		ID:               e.ID,
		WorkStartTime:    toMillis(e.WorkStart),
		WorkEndTime:      toMillis(e.WorkEnd),
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		TotalWorkTime:    e.TotalWorkText,
		TotalWorkTimeMs:  &work,
		Breaks:           encodeBreaks(e.Breaks),
		BreaksCount:      len(e.Breaks),
		TotalBreakTime:   e.TotalBreakText,
		TotalBreakTimeMs: e.TotalBreak.Milliseconds(),
		Note:             &note,
		CategoryID:       e.CategoryID,
		CategoryName:     e.CategoryName,
		CategoryColor:    e.CategoryColor,
		ModifiedAt:       optMillis(e.ModifiedAt),
	})
}

func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var rec entryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	entry, err := upgradeEntry(rec)
	if err != nil {
		return err
	}
	*e = entry
	return nil
}

// upgradeEntry turns a record of any schema version into a fully populated
// entry: missing ids are derived from the timestamps, missing note and category fall back to
// their defaults and every derived field is recomputed from the timestamps.
func upgradeEntry(rec entryRecord) (HistoryEntry, error) {
	if rec.WorkStartTime <= 0 || rec.WorkEndTime <= 0 {
		return HistoryEntry{}, fmt.Errorf("entry without start or end time: %w", ErrMalformedRecord)
	}

	e := HistoryEntry{
		ID:            rec.ID,
		WorkStart:     fromMillis(rec.WorkStartTime),
		WorkEnd:       fromMillis(rec.WorkEndTime),
		Breaks:        decodeBreaks(rec.Breaks),
		CategoryID:    rec.CategoryID,
		CategoryName:  rec.CategoryName,
		CategoryColor: rec.CategoryColor,
		ModifiedAt:    fromOptMillis(rec.ModifiedAt),
	}
	if e.ID == "" {
		e.ID = LegacyEntryID(rec.WorkStartTime, rec.WorkEndTime)
	}
	if rec.Note != nil {
		e.Note = *rec.Note
	}
	if e.CategoryID == "" {
		e.CategoryID = DefaultCategoryID
	}
	if e.CategoryName == "" || e.CategoryColor == "" {
		fallback := Categories(DefaultCategories()).Lookup(e.CategoryID)
		if e.CategoryName == "" {
			e.CategoryName = fallback.Name
		}
		if e.CategoryColor == "" {
			e.CategoryColor = fallback.Color
		}
	}

	e.derive()
	return e, nil
}

// DecodeHistory parses a persisted history list. Records that cannot be
// upgraded are skipped and counted; a document that is not a JSON array is
// an error.
func DecodeHistory(data []byte) ([]HistoryEntry, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to parse history: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		var e HistoryEntry
		if err := json.Unmarshal(r, &e); err != nil {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionRecord{
		IsWorking:         s.Working,
		IsOnBreak:         s.OnBreak,
		WorkStartTime:     optMillis(s.WorkStart),
		WorkEndTime:       optMillis(s.WorkEnd),
		CurrentBreakStart: optMillis(s.CurrentBreakStart),
		Breaks:            encodeBreaks(s.Breaks),
		Note:              s.Note,
		CategoryID:        s.CategoryID,
		LastBreakReminder: optMillis(s.LastBreakReminder),
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	out := Session{
		Working:           rec.IsWorking,
		OnBreak:           rec.IsOnBreak && rec.IsWorking,
		WorkStart:         fromOptMillis(rec.WorkStartTime),
		WorkEnd:           fromOptMillis(rec.WorkEndTime),
		CurrentBreakStart: fromOptMillis(rec.CurrentBreakStart),
		Breaks:            decodeBreaks(rec.Breaks),
		Note:              rec.Note,
		CategoryID:        rec.CategoryID,
		LastBreakReminder: fromOptMillis(rec.LastBreakReminder),
	}
	if out.CategoryID == "" {
		out.CategoryID = DefaultCategoryID
	}
	if out.OnBreak && out.CurrentBreakStart.IsZero() {
		out.OnBreak = false
	}
	if !out.OnBreak {
		out.CurrentBreakStart = time.Time{}
	}
	*s = out
	return nil
}
