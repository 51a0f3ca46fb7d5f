package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ebd/internal/ebd"
)

// ListClasses returns all classes. GET /classes
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.repo.ListClasses(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if classes == nil {
		classes = []ebd.Classe{}
	}
	c.JSON(http.StatusOK, classes)
}

type classeRequest struct {
	Nome      *string `json:"nome"`
	Professor *string `json:"professor"`
}

// CreateClasse creates a class. POST /classes
func (h *Handler) CreateClasse(c *gin.Context) {
	var req classeRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Nome == nil || *req.Nome == "" || req.Professor == nil || *req.Professor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": `Campos "nome" e "professor" são obrigatórios`})
		return
	}

	classe, err := h.repo.CreateClasse(c.Request.Context(), *req.Nome, *req.Professor)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, classe)
}

// UpdateClasse applies a partial update. PUT /classes/:id
func (h *Handler) UpdateClasse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req classeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "corpo da requisição inválido", "error": err.Error()})
		return
	}

	classe, err := h.repo.UpdateClasse(c.Request.Context(), id, ebd.ClasseUpdate{
		Nome:      req.Nome,
		Professor: req.Professor,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, classe)
}

// DeleteClasse removes a class. DELETE /classes/:id
func (h *Handler) DeleteClasse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteClasse(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Classe deletada"})
}
