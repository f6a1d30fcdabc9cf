package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/discuss/backend/internal/forum"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

type AuthHandler struct {
	accounts *forum.Accounts
}

func NewAuthHandler(accounts *forum.Accounts) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.accounts.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if !bindJSON(c, &input) {
		return
	}

	resp, err := h.accounts.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMe returns the authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.accounts.Me(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
