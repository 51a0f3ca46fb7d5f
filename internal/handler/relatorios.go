package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ebd/internal/ebd"
)

// RelatorioSemanal lists records inside an inclusive date range.
// GET /relatorios/semanal?data_inicio=YYYY-MM-DD&data_fim=YYYY-MM-DD
func (h *Handler) RelatorioSemanal(c *gin.Context) {
	start, err := ebd.ParseDate(c.Query("data_inicio"))
	if err != nil {
		writeDateError(c, err)
		return
	}
	end, err := ebd.ParseDate(c.Query("data_fim"))
	if err != nil {
		writeDateError(c, err)
		return
	}

	frequencias, err := h.repo.FrequenciasBetween(c.Request.Context(), start, end)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if frequencias == nil {
		frequencias = []ebd.Frequencia{}
	}
	c.JSON(http.StatusOK, frequencias)
}

// RelatorioMensal lists records for a calendar month.
// GET /relatorios/mensal?mes=M&ano=YYYY
func (h *Handler) RelatorioMensal(c *gin.Context) {
	mes := c.Query("mes")
	ano := c.Query("ano")
	if mes == "" || ano == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": `Parâmetros "mes" e "ano" são obrigatórios`})
		return
	}
	month, err := strconv.Atoi(mes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": `Parâmetro "mes" inválido`, "error": err.Error()})
		return
	}
	year, err := strconv.Atoi(ano)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": `Parâmetro "ano" inválido`, "error": err.Error()})
		return
	}

	frequencias, err := h.repo.FrequenciasByMonth(c.Request.Context(), month, year)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if frequencias == nil {
		frequencias = []ebd.Frequencia{}
	}
	c.JSON(http.StatusOK, frequencias)
}

// Aniversariantes lists students whose birthday is today. GET /aniversariantes
func (h *Handler) Aniversariantes(c *gin.Context) {
	today := h.now()
	alunos, err := h.repo.Aniversariantes(c.Request.Context(), int(today.Month()), today.Day())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if alunos == nil {
		alunos = []ebd.Aluno{}
	}
	c.JSON(http.StatusOK, alunos)
}

// HistoricoAluno extracts a student's attendance history from the logs of
// every record. GET /alunos/:id/historico
func (h *Handler) HistoricoAluno(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	frequencias, err := h.repo.ListFrequencias(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}

	historico := ebd.HistoryForStudent(frequencias, id)
	if historico == nil {
		historico = []ebd.HistoryEntry{}
	}
	c.JSON(http.StatusOK, historico)
}
