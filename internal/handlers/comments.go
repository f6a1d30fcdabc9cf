package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/discuss/backend/internal/forum"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

type CommentHandler struct {
	content *forum.Content
	ledger  *forum.Ledger
}

func NewCommentHandler(content *forum.Content, ledger *forum.Ledger) *CommentHandler {
	return &CommentHandler{content: content, ledger: ledger}
}

// GetComments returns all comments for a post as a flat list
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.content.ListComments(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.CreateCommentRequest
	if !bindJSON(c, &input) {
		return
	}

	comment, err := h.content.CreateComment(c.Request.Context(), id, postID, input.Content, input.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) VoteComment(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.VoteRequest
	if !bindJSON(c, &input) {
		return
	}

	if err := h.ledger.CastVote(c.Request.Context(), id, models.CommentTarget(commentID), input.VoteType); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
