package handlers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/forum"
	"github.com/emilythestrangee/discuss/backend/internal/middleware"
)

// Services are the forum operations the handlers expose.
type Services struct {
	Accounts    *forum.Accounts
	Communities *forum.Communities
	Content     *forum.Content
	Ledger      *forum.Ledger
}

// Handler combines all handler types
type Handler struct {
	Auth      *AuthHandler
	Subreddit *SubredditHandler
	Post      *PostHandler
	Comment   *CommentHandler
	User      *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(s Services) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(s.Accounts),
		Subreddit: NewSubredditHandler(s.Communities, s.Content),
		Post:      NewPostHandler(s.Content, s.Ledger),
		Comment:   NewCommentHandler(s.Content, s.Ledger),
		User:      NewUserHandler(s.Content),
	}
}

// respondError writes err as {"error","code"} with its status. Store
// failures are logged with the request id and never shown to the client.
func respondError(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindStoreFailure {
		log.Printf("request %s: %s %s: %v", c.GetString(middleware.RequestIDKey), c.Request.Method, c.FullPath(), err)
	}
	_ = c.Error(err)
	c.JSON(e.Status, gin.H{"error": e.Message, "code": e.Code})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondError(c, apperr.Validation("invalid_id", "Invalid "+name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperr.Validation("invalid_body", "Invalid request body"))
		return false
	}
	return true
}

func currentUser(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.Identity(c)
	if !ok {
		respondError(c, apperr.Unauthorized("User not authenticated"))
		return auth.Identity{}, false
	}
	return id, true
}
