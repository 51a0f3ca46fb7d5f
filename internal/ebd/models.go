package ebd

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Enrollment status values stored in the status_aluno enum.
const (
	StatusMatriculado    = "MATRICULADO"
	StatusDesmatriculado = "DESMATRICULADO"
)

// ValidStatus reports whether s is one of the two enrollment states.
func ValidStatus(s string) bool {
	return s == StatusMatriculado || s == StatusDesmatriculado
}

// DateLayout is the only calendar-date format accepted on the wire.
const DateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD, backed by a DATE column.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string. The underlying parse error is
// preserved so it can be surfaced to the caller.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string { return d.Format(DateLayout) }

// MarshalJSON renders the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON accepts only the YYYY-MM-DD format.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// LogEntry is one attendance-log item. The log is deliberately schemaless;
// aluno_id is the only key this system interprets.
type LogEntry map[string]any

// MatchesAluno reports whether the entry's aluno_id equals id. JSON decoding
// yields float64 for numbers, so comparison is numeric.
func (e LogEntry) MatchesAluno(id int64) bool {
	switch v := e["aluno_id"].(type) {
	case float64:
		return v == float64(id)
	case int64:
		return v == id
	case int:
		return int64(v) == id
	case json.Number:
		n, err := v.Int64()
		return err == nil && n == id
	default:
		return false
	}
}

// PresencaLog is the ordered attendance log stored as a JSONB column.
type PresencaLog []LogEntry

// Value implements driver.Valuer, storing the log as JSON.
func (p PresencaLog) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for the JSONB column.
func (p *PresencaLog) Scan(src any) error {
	if src == nil {
		*p = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PresencaLog", src)
	}
}

// Classe is a roster unit with one teacher.
type Classe struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Professor string    `json:"professor"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Aluno is an enrollment record belonging to exactly one Classe.
type Aluno struct {
	ID             int64     `json:"id"`
	Nome           string    `json:"nome"`
	DataNascimento Date      `json:"data_nascimento"`
	Status         string    `json:"status"`
	ClasseID       int64     `json:"classe_id"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// Frequencia is one session's tallies and attendance log for a Classe.
type Frequencia struct {
	ID            int64       `json:"id"`
	ClasseID      int64       `json:"classe_id"`
	Data          Date        `json:"data"`
	TotalBiblia   int         `json:"total_biblia"`
	TotalPresent  int         `json:"total_present"`
	TotalAbsent   int         `json:"total_absent"`
	TotalVisitors int         `json:"total_visitors"`
	TotalGeneral  int         `json:"total_general"`
	Presencas     PresencaLog `json:"presencas"`
	CreatedAt     time.Time   `json:"-"`
	UpdatedAt     time.Time   `json:"-"`
}

// HistoryEntry pairs an attendance record with the log entry that matched a
// student.
type HistoryEntry struct {
	Frequencia
	Presenca LogEntry `json:"presenca"`
}
