package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// HistoryEntry is one line of a booking's audit trail.
type HistoryEntry struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Time        time.Time `json:"time"`
}

// HistoryLog is the append-only audit trail of a booking, persisted as a
// single serialized JSON array column. Append is the only mutator; existing
// entries are never replaced or reordered.
type HistoryLog []HistoryEntry

// Append returns the log extended with one entry. The receiver's backing
// array is never grown in place, so logs sharing a prefix stay intact.
func (h HistoryLog) Append(entry HistoryEntry) HistoryLog {
	out := make(HistoryLog, len(h), len(h)+1)
	copy(out, h)
	return append(out, entry)
}

func (h HistoryLog) Value() (driver.Value, error) {
	if h == nil {
		h = HistoryLog{}
	}
	valueString, err := json.Marshal(h)
	return string(valueString), err
}

func (h *HistoryLog) Scan(value any) error {
	if value == nil {
		*h = HistoryLog{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported column type for history log")
	}
	if len(b) == 0 {
		*h = HistoryLog{}
		return nil
	}
	return json.Unmarshal(b, h)
}
