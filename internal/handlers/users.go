package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/discuss/backend/internal/forum"
)

type UserHandler struct {
	content *forum.Content
}

func NewUserHandler(content *forum.Content) *UserHandler {
	return &UserHandler{content: content}
}

// GetUserPosts returns a user's posts for their profile page
func (h *UserHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.content.ListUserPosts(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
