package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ebd/internal/ebd"
)

// ListFrequencias returns all attendance records. GET /frequencias
func (h *Handler) ListFrequencias(c *gin.Context) {
	frequencias, err := h.repo.ListFrequencias(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if frequencias == nil {
		frequencias = []ebd.Frequencia{}
	}
	c.JSON(http.StatusOK, frequencias)
}

type frequenciaRequest struct {
	ClasseID      *int64           `json:"classe_id"`
	Data          *string          `json:"data"`
	TotalBiblia   *int             `json:"total_biblia"`
	TotalPresent  *int             `json:"total_present"`
	TotalAbsent   *int             `json:"total_absent"`
	TotalVisitors *int             `json:"total_visitors"`
	TotalGeneral  *int             `json:"total_general"`
	Presencas     *ebd.PresencaLog `json:"presencas"`
}

// CreateFrequencia records a session's attendance. POST /frequencias
func (h *Handler) CreateFrequencia(c *gin.Context) {
	var req frequenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ClasseID == nil || req.Data == nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": `Campos "classe_id" e "data" são obrigatórios`})
		return
	}

	data, err := ebd.ParseDate(*req.Data)
	if err != nil {
		writeDateError(c, err)
		return
	}

	f := ebd.Frequencia{ClasseID: *req.ClasseID, Data: data, Presencas: ebd.PresencaLog{}}
	if req.TotalBiblia != nil {
		f.TotalBiblia = *req.TotalBiblia
	}
	if req.TotalPresent != nil {
		f.TotalPresent = *req.TotalPresent
	}
	if req.TotalAbsent != nil {
		f.TotalAbsent = *req.TotalAbsent
	}
	if req.TotalVisitors != nil {
		f.TotalVisitors = *req.TotalVisitors
	}
	if req.TotalGeneral != nil {
		f.TotalGeneral = *req.TotalGeneral
	}
	if req.Presencas != nil {
		f.Presencas = *req.Presencas
	}

	created, err := h.repo.CreateFrequencia(c.Request.Context(), f)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateFrequencia applies a partial update. PUT /frequencias/:id
func (h *Handler) UpdateFrequencia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req frequenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "corpo da requisição inválido", "error": err.Error()})
		return
	}

	up := ebd.FrequenciaUpdate{
		ClasseID:      req.ClasseID,
		TotalBiblia:   req.TotalBiblia,
		TotalPresent:  req.TotalPresent,
		TotalAbsent:   req.TotalAbsent,
		TotalVisitors: req.TotalVisitors,
		TotalGeneral:  req.TotalGeneral,
		Presencas:     req.Presencas,
	}
	if req.Data != nil {
		data, err := ebd.ParseDate(*req.Data)
		if err != nil {
			writeDateError(c, err)
			return
		}
		up.Data = &data
	}

	f, err := h.repo.UpdateFrequencia(c.Request.Context(), id, up)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteFrequencia removes an attendance record. DELETE /frequencias/:id
func (h *Handler) DeleteFrequencia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteFrequencia(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Frequência deletada"})
}
