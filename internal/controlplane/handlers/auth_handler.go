package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/accounts"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler manages operator sessions against the local user table.
type AuthHandler struct {
	accounts *accounts.Service
}

func NewAuthHandler(acct *accounts.Service) *AuthHandler {
	return &AuthHandler{accounts: acct}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	session, err := h.accounts.Login(req.Username, req.Password)
	if errors.Is(err, accounts.ErrInvalidCredentials) {
		AbortWithError(c, http.StatusUnauthorized, ErrCodeUnauthorized, err)
		return
	}
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	c.PureJSON(http.StatusOK, session)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	err := h.accounts.Register(req.Name, req.Username, req.Password)
	if errors.Is(err, accounts.ErrUserExists) {
		AbortWithError(c, http.StatusConflict, ErrCodeBadRequest, err)
		return
	}
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	c.PureJSON(http.StatusCreated, &ControlPlaneResponse{Code: CodeOk})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	h.accounts.Logout(token)
	c.PureJSON(http.StatusOK, &ControlPlaneResponse{Code: CodeOk})
}
