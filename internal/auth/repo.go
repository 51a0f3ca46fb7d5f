package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username já existe")
	// ErrInvalidCredentials covers both unknown user and wrong password, so
	// login failures never reveal whether a username exists.
	ErrInvalidCredentials = errors.New("credenciais inválidas")
)

// User is a stored credential.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Repository persists credentials in Postgres.
type Repository struct {
	db         *sql.DB
	bcryptCost int
}

// NewRepository creates a credential repo.
func NewRepository(db *sql.DB, bcryptCost int) *Repository {
	return &Repository{db: db, bcryptCost: bcryptCost}
}

// Register stores a new user with a hashed password. Duplicate usernames fail
// with ErrUsernameTaken whether detected up front or by the unique constraint.
func (r *Repository) Register(ctx context.Context, username, password string) (User, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists); err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrUsernameTaken
	}

	hash, err := HashPassword(password, r.bcryptCost)
	if err != nil {
		return User{}, err
	}

	var usr User
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`, username, hash).Scan(&usr.ID, &usr.Username, &usr.PasswordHash, &usr.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrUsernameTaken
		}
		return User{}, err
	}
	return usr, nil
}

// Verify looks a user up by username and checks the password against the
// stored hash. Both failure modes return ErrInvalidCredentials.
func (r *Repository) Verify(ctx context.Context, username, password string) (User, error) {
	var usr User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at FROM users WHERE username = $1
	`, username).Scan(&usr.ID, &usr.Username, &usr.PasswordHash, &usr.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !CheckPassword(usr.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}
