package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ebd/internal/auth"
	"ebd/internal/ebd"
)

// CredentialStore is the credential surface the handlers depend on.
type CredentialStore interface {
	Register(ctx context.Context, username, password string) (auth.User, error)
	Verify(ctx context.Context, username, password string) (auth.User, error)
}

// Repository is the domain persistence surface the handlers depend on.
type Repository interface {
	ListClasses(ctx context.Context) ([]ebd.Classe, error)
	CreateClasse(ctx context.Context, nome, professor string) (ebd.Classe, error)
	UpdateClasse(ctx context.Context, id int64, up ebd.ClasseUpdate) (ebd.Classe, error)
	DeleteClasse(ctx context.Context, id int64) error

	ListAlunos(ctx context.Context) ([]ebd.Aluno, error)
	CreateAluno(ctx context.Context, nome string, nascimento ebd.Date, classeID int64) (ebd.Aluno, error)
	UpdateAluno(ctx context.Context, id int64, up ebd.AlunoUpdate) (ebd.Aluno, error)
	DeleteAluno(ctx context.Context, id int64) error
	Aniversariantes(ctx context.Context, month, day int) ([]ebd.Aluno, error)

	ListFrequencias(ctx context.Context) ([]ebd.Frequencia, error)
	FrequenciasBetween(ctx context.Context, start, end ebd.Date) ([]ebd.Frequencia, error)
	FrequenciasByMonth(ctx context.Context, month, year int) ([]ebd.Frequencia, error)
	CreateFrequencia(ctx context.Context, f ebd.Frequencia) (ebd.Frequencia, error)
	UpdateFrequencia(ctx context.Context, id int64, up ebd.FrequenciaUpdate) (ebd.Frequencia, error)
	DeleteFrequencia(ctx context.Context, id int64) error
}

// Handler exposes the HTTP surface of the EBD API.
type Handler struct {
	users CredentialStore
	repo  Repository

	jwtIssuer string
	jwtKey    string
	tokenTTL  time.Duration

	now func() time.Time
}

// New creates a handler.
func New(users CredentialStore, repo Repository, jwtIssuer, jwtKey string, tokenTTL time.Duration) *Handler {
	return &Handler{
		users:     users,
		repo:      repo,
		jwtIssuer: jwtIssuer,
		jwtKey:    jwtKey,
		tokenTTL:  tokenTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Root serves the service banner.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Sistema de Gestão da EBD - API com melhorias (Autenticação, CRUD, Validações e Documentação)")
}

// idParam parses the numeric id path segment; routes only exist for integer
// ids, so anything else is a 404.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "registro não encontrado"})
		return 0, false
	}
	return id, true
}

// writeRepoError maps domain errors to status codes. Unexpected failures log
// and return 500 without leaking internals.
func writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ebd.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "registro não encontrado"})
	case errors.Is(err, ebd.ErrNomeTaken), errors.Is(err, ebd.ErrClasseRef):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		log.Printf("repository error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "erro interno"})
	}
}

// writeDateError reports a date parse failure with the underlying detail, as
// the callers rely on it to correct their input.
func writeDateError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": "Formato de data inválido", "error": err.Error()})
}
