package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistoryAppendDoesNotMutateReceiver(t *testing.T) {
	base := HistoryLog{}.Append(HistoryEntry{Type: "first", Time: time.Now()})
	a := base.Append(HistoryEntry{Type: "second-a", Time: time.Now()})
	b := base.Append(HistoryEntry{Type: "second-b", Time: time.Now()})

	assert.Len(t, base, 1)
	assert.Len(t, a, 2)
	assert.Len(t, b, 2)
	assert.Equal(t, "second-a", a[1].Type)
	assert.Equal(t, "second-b", b[1].Type)
}

func TestHistoryValueEmptyLog(t *testing.T) {
	var log HistoryLog
	v, err := log.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", v.(string))
}

func TestHistoryRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	log := HistoryLog{}.Append(HistoryEntry{
		Type:        "Guest booked a room",
		Description: "waiting for confirmation",
		Time:        now,
	})
	v, err := log.Value()
	assert.NoError(t, err)

	var restored HistoryLog
	assert.NoError(t, restored.Scan(v))
	assert.Len(t, restored, 1)
	assert.Equal(t, "Guest booked a room", restored[0].Type)

	// drivers may also hand the column back as raw bytes
	var fromBytes HistoryLog
	assert.NoError(t, fromBytes.Scan([]byte(v.(string))))
	assert.Len(t, fromBytes, 1)
}

func TestHistoryEntryJSONKeys(t *testing.T) {
	raw, err := json.Marshal(HistoryEntry{Type: "t", Description: "d"})
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"type"`)
	assert.Contains(t, string(raw), `"description"`)
	assert.Contains(t, string(raw), `"time"`)
}
