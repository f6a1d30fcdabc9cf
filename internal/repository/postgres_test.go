package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/database"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

func newPostgres(t *testing.T) *Postgres {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("discuss"),
		tcpostgres.WithUsername("discuss"),
		tcpostgres.WithPassword("discuss"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	svc, err := database.New(dsn, "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return NewPostgres(svc)
}

func TestPostgresStore(t *testing.T) {
	r := newPostgres(t)
	ctx := context.Background()

	avery := models.User{Username: "avery", Email: "avery@example.com", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(ctx, &avery))
	community := models.Community{Name: "technology"}
	require.NoError(t, r.CreateCommunity(ctx, &community))

	t.Run("unique violations become conflicts", func(t *testing.T) {
		err := r.CreateUser(ctx, &models.User{Username: "avery", Email: "new@example.com", PasswordHash: "x"})
		require.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, "username_taken", apperr.From(err).Code)

		err = r.CreateUser(ctx, &models.User{Username: "new", Email: "avery@example.com", PasswordHash: "x"})
		require.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, "email_taken", apperr.From(err).Code)

		err = r.CreateCommunity(ctx, &models.Community{Name: "technology"})
		require.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("missing references become not found", func(t *testing.T) {
		err := r.CreatePost(ctx, &models.Post{Title: "x", UserID: avery.ID, CommunityID: 999})
		require.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, "community_not_found", apperr.From(err).Code)

		_, err = r.PostByID(ctx, 999)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	post := models.Post{Title: "100% Go", Content: "snake_case vs camelCase", UserID: avery.ID, CommunityID: community.ID}
	require.NoError(t, r.CreatePost(ctx, &post))
	stored, err := r.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, post.CreatedAt.Equal(stored.CreatedAt), "created %v, read back %v", post.CreatedAt, stored.CreatedAt)
	other := models.Post{Title: "Learning React", Content: "hooks", UserID: avery.ID, CommunityID: community.ID}
	require.NoError(t, r.CreatePost(ctx, &other))

	t.Run("search escapes wildcards", func(t *testing.T) {
		hits, err := r.ListPosts(ctx, models.PostFilter{Term: "%"})
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, post.ID, hits[0].ID)

		hits, err = r.ListPosts(ctx, models.PostFilter{Term: "react"})
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "technology", hits[0].SubredditName)
		assert.Equal(t, "avery", hits[0].Username)
	})

	t.Run("comments", func(t *testing.T) {
		root := models.Comment{Content: "root", UserID: avery.ID, PostID: post.ID}
		require.NoError(t, r.CreateComment(ctx, &root))
		reply := models.Comment{Content: "reply", UserID: avery.ID, PostID: post.ID, ParentID: &root.ID}
		require.NoError(t, r.CreateComment(ctx, &reply))

		missing := 999
		err := r.CreateComment(ctx, &models.Comment{Content: "x", UserID: avery.ID, PostID: post.ID, ParentID: &missing})
		require.ErrorIs(t, err, apperr.ErrNotFound)

		comments, err := r.CommentsByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.True(t, reply.CreatedAt.Equal(comments[0].CreatedAt))
		assert.Equal(t, reply.ID, comments[0].ID)
		require.NotNil(t, comments[0].ParentID)
		assert.Equal(t, root.ID, *comments[0].ParentID)
	})

	t.Run("votes", func(t *testing.T) {
		target := models.PostTarget(post.ID)
		require.NoError(t, r.CastVote(ctx, avery.ID, target, models.Upvote))
		require.NoError(t, r.CastVote(ctx, avery.ID, target, models.Upvote))
		view, err := r.PostByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, view.Score)

		require.NoError(t, r.CastVote(ctx, avery.ID, target, models.Downvote))
		view, err = r.PostByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, view.Upvotes)
		assert.Equal(t, 1, view.Downvotes)

		err = r.CastVote(ctx, avery.ID, models.PostTarget(999), models.Upvote)
		require.ErrorIs(t, err, apperr.ErrNotFound)
		err = r.CastVote(ctx, 999, target, models.Upvote)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("comment votes", func(t *testing.T) {
		c := models.Comment{Content: "vote on me", UserID: avery.ID, PostID: other.ID}
		require.NoError(t, r.CreateComment(ctx, &c))
		target := models.CommentTarget(c.ID)

		require.NoError(t, r.CastVote(ctx, avery.ID, target, models.Upvote))
		require.NoError(t, r.CastVote(ctx, avery.ID, target, models.Upvote))
		comment, err := r.CommentByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, comment.Upvotes)
		assert.Equal(t, 0, comment.Downvotes)

		require.NoError(t, r.CastVote(ctx, avery.ID, target, models.Downvote))
		comment, err = r.CommentByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, comment.Upvotes)
		assert.Equal(t, 1, comment.Downvotes)
		assert.Equal(t, -1, comment.Score())

		postView, err := r.PostByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Zero(t, postView.Upvotes+postView.Downvotes, "comment votes leave the post alone")

		err = r.CastVote(ctx, avery.ID, models.CommentTarget(999), models.Upvote)
		require.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, "comment_not_found", apperr.From(err).Code)
	})

	t.Run("concurrent votes keep counters consistent", func(t *testing.T) {
		voters := make([]models.User, 10)
		for i := range voters {
			voters[i] = models.User{Username: fmt.Sprintf("voter%d", i), Email: fmt.Sprintf("voter%d@example.com", i), PasswordHash: "x"}
			require.NoError(t, r.CreateUser(ctx, &voters[i]))
		}

		target := models.PostTarget(other.ID)
		var wg sync.WaitGroup
		for _, v := range voters {
			wg.Add(1)
			go func(userID int) {
				defer wg.Done()
				for n := 0; n < 5; n++ {
					vt := models.Upvote
					if n%2 == 1 {
						vt = models.Downvote
					}
					assert.NoError(t, r.CastVote(ctx, userID, target, vt))
				}
			}(v.ID)
		}
		wg.Wait()

		// n=4 is the last vote of every voter.
		view, err := r.PostByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, len(voters), view.Upvotes)
		assert.Equal(t, 0, view.Downvotes)
	})
}
