package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/discuss/backend/internal/forum"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

type SubredditHandler struct {
	communities *forum.Communities
	content     *forum.Content
}

func NewSubredditHandler(communities *forum.Communities, content *forum.Content) *SubredditHandler {
	return &SubredditHandler{communities: communities, content: content}
}

func (h *SubredditHandler) GetSubreddits(c *gin.Context) {
	list, err := h.communities.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateSubreddit creates a community (PROTECTED - requires authentication)
func (h *SubredditHandler) CreateSubreddit(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var input models.CreateCommunityRequest
	if !bindJSON(c, &input) {
		return
	}

	community, err := h.communities.Create(c.Request.Context(), id, input.Name, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

// GetSubredditPosts lists one community's posts in feed order
func (h *SubredditHandler) GetSubredditPosts(c *gin.Context) {
	communityID, ok := parseID(c, "id")
	if !ok {
		return
	}

	posts, err := h.content.ListCommunityPosts(c.Request.Context(), communityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
