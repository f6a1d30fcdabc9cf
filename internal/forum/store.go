// Package forum implements accounts, communities, posts, comments and the
// vote ledger on top of a pluggable store.
package forum

import (
	"context"

	"github.com/emilythestrangee/discuss/backend/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByUsername(ctx context.Context, username string) (models.User, error)
	UserByID(ctx context.Context, id int) (models.User, error)
	UserTaken(ctx context.Context, username, email string) (nameTaken, emailTaken bool, err error)
}

type CommunityStore interface {
	CreateCommunity(ctx context.Context, c *models.Community) error
	CommunityByID(ctx context.Context, id int) (models.Community, error)
	ListCommunities(ctx context.Context) ([]models.Community, error)
}

type ContentStore interface {
	UserByUsername(ctx context.Context, username string) (models.User, error)
	CreatePost(ctx context.Context, p *models.Post) error
	PostByID(ctx context.Context, id int) (models.PostView, error)
	ListPosts(ctx context.Context, f models.PostFilter) ([]models.PostView, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	CommentByID(ctx context.Context, id int) (models.Comment, error)
	CommentsByPost(ctx context.Context, postID int) ([]models.CommentView, error)
}

// VoteStore applies a vote atomically: the ledger row and the target's
// counters change together or not at all.
type VoteStore interface {
	CastVote(ctx context.Context, userID int, target models.VoteTarget, voteType models.VoteType) error
}

// Store is everything the API needs from persistence.
type Store interface {
	UserStore
	CommunityStore
	ContentStore
	VoteStore
	Health() map[string]string
}
