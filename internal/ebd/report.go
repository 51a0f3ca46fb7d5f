package ebd

import "time"

// Report helpers are pure functions over already-fetched collections; they
// hold no state and touch no storage.

// FilterByDateRange returns records whose session date falls inside the
// inclusive [start, end] range.
func FilterByDateRange(records []Frequencia, start, end Date) []Frequencia {
	var out []Frequencia
	for _, f := range records {
		if f.Data.Before(start.Time) || f.Data.After(end.Time) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FilterByMonthYear returns records matching the month and year exactly,
// ignoring the day.
func FilterByMonthYear(records []Frequencia, month time.Month, year int) []Frequencia {
	var out []Frequencia
	for _, f := range records {
		if f.Data.Month() == month && f.Data.Year() == year {
			out = append(out, f)
		}
	}
	return out
}

// TodaysBirthdays returns students whose birth date matches today's month and
// day. The birth year is ignored, so the match recurs annually.
func TodaysBirthdays(students []Aluno, today time.Time) []Aluno {
	var out []Aluno
	for _, a := range students {
		if a.DataNascimento.Month() == today.Month() && a.DataNascimento.Day() == today.Day() {
			out = append(out, a)
		}
	}
	return out
}

// HistoryForStudent scans every record's attendance log and emits one history
// entry per record that mentions the student. When a log contains duplicate
// entries for the same student only the first one is returned.
func HistoryForStudent(records []Frequencia, alunoID int64) []HistoryEntry {
	var out []HistoryEntry
	for _, f := range records {
		for _, entry := range f.Presencas {
			if entry.MatchesAluno(alunoID) {
				out = append(out, HistoryEntry{Frequencia: f, Presenca: entry})
				break
			}
		}
	}
	return out
}
