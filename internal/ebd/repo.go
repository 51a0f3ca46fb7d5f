package ebd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when an id does not resolve to a row.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrNomeTaken is returned when a class name collides with an existing one.
	ErrNomeTaken = errors.New("classe com este nome já existe")
	// ErrClasseRef is returned on foreign-key violations: creating a record
	// against a missing class, or deleting a class that still has dependent
	// rows (deletes are restricted, never cascaded).
	ErrClasseRef = errors.New("referência de classe inválida ou em uso")
)

// Repository persists the EBD domain entities in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// mapPgError translates constraint violations into domain errors, keeping the
// database detail available to the caller.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrNomeTaken, pgErr.Detail)
		case "23503":
			return fmt.Errorf("%w: %s", ErrClasseRef, pgErr.Detail)
		}
	}
	return err
}

// -------- Classes --------

const classeCols = `id, nome, professor, created_at, updated_at`

func scanClasse(row interface{ Scan(...any) error }) (Classe, error) {
	var c Classe
	err := row.Scan(&c.ID, &c.Nome, &c.Professor, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListClasses returns all classes.
func (r *Repository) ListClasses(ctx context.Context) ([]Classe, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+classeCols+` FROM classes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Classe
	for rows.Next() {
		c, err := scanClasse(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// CreateClasse inserts a new class.
func (r *Repository) CreateClasse(ctx context.Context, nome, professor string) (Classe, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO classes (nome, professor)
		VALUES ($1, $2)
		RETURNING `+classeCols, nome, professor)
	c, err := scanClasse(row)
	if err != nil {
		return Classe{}, mapPgError(err)
	}
	return c, nil
}

// ClasseUpdate carries the fields of a partial class update; nil fields keep
// their prior values.
type ClasseUpdate struct {
	Nome      *string
	Professor *string
}

// UpdateClasse applies only the provided fields and returns the updated row.
func (r *Repository) UpdateClasse(ctx context.Context, id int64, up ClasseUpdate) (Classe, error) {
	sets := []string{}
	args := []any{}
	if up.Nome != nil {
		sets = append(sets, "nome = $"+itoa(len(args)+1))
		args = append(args, *up.Nome)
	}
	if up.Professor != nil {
		sets = append(sets, "professor = $"+itoa(len(args)+1))
		args = append(args, *up.Professor)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := `UPDATE classes SET ` + joinClauses(sets, ", ") +
		` WHERE id = $` + itoa(len(args)) + ` RETURNING ` + classeCols

	c, err := scanClasse(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Classe{}, ErrNotFound
		}
		return Classe{}, mapPgError(err)
	}
	return c, nil
}

// DeleteClasse removes a class. Classes with dependent alunos or frequencias
// fail with ErrClasseRef.
func (r *Repository) DeleteClasse(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	return checkAffected(res)
}

// -------- Alunos --------

const alunoCols = `id, nome, data_nascimento, status, classe_id, created_at, updated_at`

func scanAluno(row interface{ Scan(...any) error }) (Aluno, error) {
	var a Aluno
	err := row.Scan(&a.ID, &a.Nome, &a.DataNascimento, &a.Status, &a.ClasseID, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// ListAlunos returns all students.
func (r *Repository) ListAlunos(ctx context.Context) ([]Aluno, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+alunoCols+` FROM alunos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Aluno
	for rows.Next() {
		a, err := scanAluno(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// CreateAluno inserts a new student with the default MATRICULADO status.
func (r *Repository) CreateAluno(ctx context.Context, nome string, nascimento Date, classeID int64) (Aluno, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO alunos (nome, data_nascimento, classe_id)
		VALUES ($1, $2, $3)
		RETURNING `+alunoCols, nome, nascimento, classeID)
	a, err := scanAluno(row)
	if err != nil {
		return Aluno{}, mapPgError(err)
	}
	return a, nil
}

// AlunoUpdate carries the fields of a partial student update.
type AlunoUpdate struct {
	Nome           *string
	DataNascimento *Date
	Status         *string
	ClasseID       *int64
}

// UpdateAluno applies only the provided fields and returns the updated row.
func (r *Repository) UpdateAluno(ctx context.Context, id int64, up AlunoUpdate) (Aluno, error) {
	sets := []string{}
	args := []any{}
	if up.Nome != nil {
		sets = append(sets, "nome = $"+itoa(len(args)+1))
		args = append(args, *up.Nome)
	}
	if up.DataNascimento != nil {
		sets = append(sets, "data_nascimento = $"+itoa(len(args)+1))
		args = append(args, *up.DataNascimento)
	}
	if up.Status != nil {
		sets = append(sets, "status = $"+itoa(len(args)+1))
		args = append(args, *up.Status)
	}
	if up.ClasseID != nil {
		sets = append(sets, "classe_id = $"+itoa(len(args)+1))
		args = append(args, *up.ClasseID)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := `UPDATE alunos SET ` + joinClauses(sets, ", ") +
		` WHERE id = $` + itoa(len(args)) + ` RETURNING ` + alunoCols

	a, err := scanAluno(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Aluno{}, ErrNotFound
		}
		return Aluno{}, mapPgError(err)
	}
	return a, nil
}

// DeleteAluno removes a student.
func (r *Repository) DeleteAluno(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alunos WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	return checkAffected(res)
}

// Aniversariantes returns students whose birth date matches the given month
// and day, regardless of birth year.
func (r *Repository) Aniversariantes(ctx context.Context, month, day int) ([]Aluno, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+alunoCols+` FROM alunos
		WHERE EXTRACT(MONTH FROM data_nascimento) = $1
		  AND EXTRACT(DAY FROM data_nascimento) = $2
		ORDER BY id
	`, month, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Aluno
	for rows.Next() {
		a, err := scanAluno(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// -------- Frequencias --------

const freqCols = `id, classe_id, data, total_biblia, total_present, total_absent, total_visitors, total_general, presencas, created_at, updated_at`

func scanFrequencia(row interface{ Scan(...any) error }) (Frequencia, error) {
	var f Frequencia
	err := row.Scan(&f.ID, &f.ClasseID, &f.Data, &f.TotalBiblia, &f.TotalPresent,
		&f.TotalAbsent, &f.TotalVisitors, &f.TotalGeneral, &f.Presencas, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (r *Repository) queryFrequencias(ctx context.Context, query string, args ...any) ([]Frequencia, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Frequencia
	for rows.Next() {
		f, err := scanFrequencia(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, rows.Err()
}

// ListFrequencias returns all attendance records.
func (r *Repository) ListFrequencias(ctx context.Context) ([]Frequencia, error) {
	return r.queryFrequencias(ctx, `SELECT `+freqCols+` FROM frequencias ORDER BY id`)
}

// FrequenciasBetween returns records whose session date falls inside the
// inclusive [start, end] range.
func (r *Repository) FrequenciasBetween(ctx context.Context, start, end Date) ([]Frequencia, error) {
	return r.queryFrequencias(ctx, `
		SELECT `+freqCols+` FROM frequencias
		WHERE data BETWEEN $1 AND $2
		ORDER BY data
	`, start, end)
}

// FrequenciasByMonth returns records matching the month and year exactly,
// ignoring the day.
func (r *Repository) FrequenciasByMonth(ctx context.Context, month, year int) ([]Frequencia, error) {
	return r.queryFrequencias(ctx, `
		SELECT `+freqCols+` FROM frequencias
		WHERE EXTRACT(MONTH FROM data) = $1 AND EXTRACT(YEAR FROM data) = $2
		ORDER BY data
	`, month, year)
}

// CreateFrequencia inserts a new attendance record. Counts default to zero
// and the log defaults to an empty list.
func (r *Repository) CreateFrequencia(ctx context.Context, f Frequencia) (Frequencia, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO frequencias (classe_id, data, total_biblia, total_present, total_absent, total_visitors, total_general, presencas)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+freqCols,
		f.ClasseID, f.Data, f.TotalBiblia, f.TotalPresent, f.TotalAbsent,
		f.TotalVisitors, f.TotalGeneral, f.Presencas)
	created, err := scanFrequencia(row)
	if err != nil {
		return Frequencia{}, mapPgError(err)
	}
	return created, nil
}

// FrequenciaUpdate carries the fields of a partial attendance-record update.
type FrequenciaUpdate struct {
	ClasseID      *int64
	Data          *Date
	TotalBiblia   *int
	TotalPresent  *int
	TotalAbsent   *int
	TotalVisitors *int
	TotalGeneral  *int
	Presencas     *PresencaLog
}

// UpdateFrequencia applies only the provided fields and returns the updated row.
func (r *Repository) UpdateFrequencia(ctx context.Context, id int64, up FrequenciaUpdate) (Frequencia, error) {
	sets := []string{}
	args := []any{}
	set := func(col string, val any) {
		sets = append(sets, col+" = $"+itoa(len(args)+1))
		args = append(args, val)
	}
	if up.ClasseID != nil {
		set("classe_id", *up.ClasseID)
	}
	if up.Data != nil {
		set("data", *up.Data)
	}
	if up.TotalBiblia != nil {
		set("total_biblia", *up.TotalBiblia)
	}
	if up.TotalPresent != nil {
		set("total_present", *up.TotalPresent)
	}
	if up.TotalAbsent != nil {
		set("total_absent", *up.TotalAbsent)
	}
	if up.TotalVisitors != nil {
		set("total_visitors", *up.TotalVisitors)
	}
	if up.TotalGeneral != nil {
		set("total_general", *up.TotalGeneral)
	}
	if up.Presencas != nil {
		set("presencas", *up.Presencas)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := `UPDATE frequencias SET ` + joinClauses(sets, ", ") +
		` WHERE id = $` + itoa(len(args)) + ` RETURNING ` + freqCols

	f, err := scanFrequencia(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Frequencia{}, ErrNotFound
		}
		return Frequencia{}, mapPgError(err)
	}
	return f, nil
}

// DeleteFrequencia removes an attendance record.
func (r *Repository) DeleteFrequencia(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM frequencias WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	return checkAffected(res)
}

// -------- helpers --------

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func itoa(i int) string { return fmt.Sprintf("%d", i) }

func joinClauses(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for i := 1; i < len(parts); i++ {
		out += sep + parts[i]
	}
	return out
}
