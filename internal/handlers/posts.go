package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/discuss/backend/internal/forum"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

type PostHandler struct {
	content *forum.Content
	ledger  *forum.Ledger
}

func NewPostHandler(content *forum.Content, ledger *forum.Ledger) *PostHandler {
	return &PostHandler{content: content, ledger: ledger}
}

// GetPosts returns every post, highest score first
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.content.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post with its comments
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := h.content.GetPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var input models.CreatePostRequest
	if !bindJSON(c, &input) {
		return
	}

	post, err := h.content.CreatePost(c.Request.Context(), id, forum.NewPost{
		Title:       input.Title,
		Content:     input.Content,
		ImageURL:    input.ImageURL,
		CommunityID: input.CommunityID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// VotePost records the caller's vote on a post
func (h *PostHandler) VotePost(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.VoteRequest
	if !bindJSON(c, &input) {
		return
	}

	if err := h.ledger.CastVote(c.Request.Context(), id, models.PostTarget(postID), input.VoteType); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SearchPosts matches ?q= against titles and content, newest first
func (h *PostHandler) SearchPosts(c *gin.Context) {
	posts, err := h.content.SearchPosts(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
