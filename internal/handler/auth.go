package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ebd/internal/auth"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new credential. POST /register
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Username e password são obrigatórios"})
		return
	}

	usr, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Username já existe"})
			return
		}
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usr)
}

// Login verifies a credential and issues a session token. POST /login
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Username e password são obrigatórios"})
		return
	}

	usr, err := h.users.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Credenciais inválidas"})
			return
		}
		writeRepoError(c, err)
		return
	}

	token, _, err := auth.Issue(usr.ID, h.jwtIssuer, h.jwtKey, h.tokenTTL)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// Protected echoes the authenticated identity. GET /protected
func (h *Handler) Protected(c *gin.Context) {
	claimsAny, _ := c.Get(auth.ClaimsKey)
	claims, _ := claimsAny.(auth.Claims)
	userID, _ := claims.UserID()
	c.JSON(http.StatusOK, gin.H{"msg": fmt.Sprintf("Usuário logado: %d", userID)})
}
