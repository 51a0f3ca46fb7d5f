package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ebd/internal/ebd"
)

// ListAlunos returns all students. GET /alunos
func (h *Handler) ListAlunos(c *gin.Context) {
	alunos, err := h.repo.ListAlunos(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if alunos == nil {
		alunos = []ebd.Aluno{}
	}
	c.JSON(http.StatusOK, alunos)
}

type alunoRequest struct {
	Nome           *string `json:"nome"`
	DataNascimento *string `json:"data_nascimento"`
	Status         *string `json:"status"`
	ClasseID       *int64  `json:"classe_id"`
}

// CreateAluno creates a student. POST /alunos
func (h *Handler) CreateAluno(c *gin.Context) {
	var req alunoRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Nome == nil || req.DataNascimento == nil || req.ClasseID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Campos obrigatórios ausentes"})
		return
	}

	nascimento, err := ebd.ParseDate(*req.DataNascimento)
	if err != nil {
		writeDateError(c, err)
		return
	}

	aluno, err := h.repo.CreateAluno(c.Request.Context(), *req.Nome, nascimento, *req.ClasseID)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, aluno)
}

// UpdateAluno applies a partial update. PUT /alunos/:id
func (h *Handler) UpdateAluno(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req alunoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "corpo da requisição inválido", "error": err.Error()})
		return
	}

	up := ebd.AlunoUpdate{Nome: req.Nome, ClasseID: req.ClasseID}
	if req.DataNascimento != nil {
		nascimento, err := ebd.ParseDate(*req.DataNascimento)
		if err != nil {
			writeDateError(c, err)
			return
		}
		up.DataNascimento = &nascimento
	}
	if req.Status != nil {
		if !ebd.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "status inválido"})
			return
		}
		up.Status = req.Status
	}

	aluno, err := h.repo.UpdateAluno(c.Request.Context(), id, up)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, aluno)
}

// DeleteAluno removes a student. DELETE /alunos/:id
func (h *Handler) DeleteAluno(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteAluno(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Aluno deletado"})
}
