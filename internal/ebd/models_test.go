package ebd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := date(t, "2024-03-15")
	b, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(b))

	var back Date
	assert.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &back))
}

func TestLogEntryMatchesAluno(t *testing.T) {
	// JSON decoding turns numbers into float64
	var entry LogEntry
	assert.NoError(t, json.Unmarshal([]byte(`{"aluno_id": 7, "presente": true}`), &entry))
	assert.True(t, entry.MatchesAluno(7))
	assert.False(t, entry.MatchesAluno(8))

	assert.False(t, LogEntry{}.MatchesAluno(7))
	assert.False(t, LogEntry{"aluno_id": "7"}.MatchesAluno(7))
}

func TestPresencaLogScan(t *testing.T) {
	var p PresencaLog
	assert.NoError(t, p.Scan([]byte(`[{"aluno_id": 1}, {"aluno_id": 2}]`)))
	assert.Len(t, p, 2)
	assert.True(t, p[0].MatchesAluno(1))

	var empty PresencaLog
	assert.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}
