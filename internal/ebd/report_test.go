package ebd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) failed: %v", s, err)
	}
	return d
}

func TestFilterByDateRange(t *testing.T) {
	records := []Frequencia{
		{ID: 1, Data: date(t, "2024-03-09")},
		{ID: 2, Data: date(t, "2024-03-10")},
		{ID: 3, Data: date(t, "2024-03-12")},
		{ID: 4, Data: date(t, "2024-03-15")},
		{ID: 5, Data: date(t, "2024-03-16")},
	}

	got := FilterByDateRange(records, date(t, "2024-03-10"), date(t, "2024-03-15"))

	// bounds are inclusive: records on start and end stay, one day outside goes
	assert.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, int64(4), got[2].ID)
}

func TestFilterByDateRangeEmpty(t *testing.T) {
	got := FilterByDateRange(nil, date(t, "2024-01-01"), date(t, "2024-12-31"))
	assert.Empty(t, got)
}

func TestFilterByMonthYear(t *testing.T) {
	records := []Frequencia{
		{ID: 1, Data: date(t, "2024-03-03")},
		{ID: 2, Data: date(t, "2024-04-03")},
		{ID: 3, Data: date(t, "2023-03-03")},
		{ID: 4, Data: date(t, "2024-03-31")},
	}

	got := FilterByMonthYear(records, time.March, 2024)

	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestTodaysBirthdays(t *testing.T) {
	students := []Aluno{
		{ID: 1, Nome: "Ana", DataNascimento: date(t, "1990-03-15")},
		{ID: 2, Nome: "Bia", DataNascimento: date(t, "2001-03-15")},
		{ID: 3, Nome: "Caio", DataNascimento: date(t, "1990-03-14")},
		{ID: 4, Nome: "Davi", DataNascimento: date(t, "1990-04-15")},
	}

	today := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	got := TodaysBirthdays(students, today)

	// year ignored, month and day must both match
	assert.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Nome)
	assert.Equal(t, "Bia", got[1].Nome)

	assert.Empty(t, TodaysBirthdays(students, time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)))
}

func TestHistoryForStudent(t *testing.T) {
	records := []Frequencia{
		{
			ID:   1,
			Data: date(t, "2024-03-03"),
			Presencas: PresencaLog{
				{"aluno_id": float64(7), "presente": true},
				{"aluno_id": float64(8), "presente": false},
			},
		},
		{
			ID:   2,
			Data: date(t, "2024-03-10"),
			Presencas: PresencaLog{
				{"aluno_id": float64(8), "presente": true},
			},
		},
		{
			ID:   3,
			Data: date(t, "2024-03-17"),
			Presencas: PresencaLog{
				{"aluno_id": float64(7), "presente": false, "ordem": float64(1)},
				{"aluno_id": float64(7), "presente": true, "ordem": float64(2)},
			},
		},
	}

	got := HistoryForStudent(records, 7)

	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, true, got[0].Presenca["presente"])

	// duplicate entries for the same student: only the first is returned
	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, float64(1), got[1].Presenca["ordem"])
}

func TestHistoryForStudentNoMatch(t *testing.T) {
	records := []Frequencia{
		{ID: 1, Presencas: PresencaLog{{"aluno_id": float64(3)}}},
		{ID: 2, Presencas: nil},
	}
	assert.Empty(t, HistoryForStudent(records, 7))
}
