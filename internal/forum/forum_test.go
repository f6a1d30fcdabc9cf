package forum

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/models"
	"github.com/emilythestrangee/discuss/backend/internal/repository"
)

type testForum struct {
	store       *repository.Memory
	tokens      *auth.Tokens
	accounts    *Accounts
	communities *Communities
	content     *Content
	ledger      *Ledger
}

// tickingClock advances one second per call so created_at values are distinct.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestForum(t *testing.T) *testForum {
	t.Helper()
	store := repository.NewMemory(repository.WithClock(tickingClock()))
	tokens := auth.NewTokens("test-secret", nil, "discuss", time.Hour)
	communities, err := NewCommunities(store, 16)
	require.NoError(t, err)
	return &testForum{
		store:       store,
		tokens:      tokens,
		accounts:    NewAccounts(store, tokens),
		communities: communities,
		content:     NewContent(store, communities),
		ledger:      NewLedger(store),
	}
}

func (f *testForum) user(t *testing.T, username string) auth.Identity {
	t.Helper()
	resp, err := f.accounts.Register(context.Background(), username, username+"@example.com", "password123")
	require.NoError(t, err)
	return auth.Identity{UserID: resp.User.ID, Username: resp.User.Username}
}

func (f *testForum) community(t *testing.T, owner auth.Identity, name string) models.Community {
	t.Helper()
	c, err := f.communities.Create(context.Background(), owner, name, "about "+name)
	require.NoError(t, err)
	return c
}

func (f *testForum) post(t *testing.T, author auth.Identity, communityID int, title, content string) models.PostView {
	t.Helper()
	p, err := f.content.CreatePost(context.Background(), author, NewPost{Title: title, Content: content, CommunityID: communityID})
	require.NoError(t, err)
	return p
}

func (f *testForum) comment(t *testing.T, author auth.Identity, postID int, content string, parentID *int) models.CommentView {
	t.Helper()
	c, err := f.content.CreateComment(context.Background(), author, postID, content, parentID)
	require.NoError(t, err)
	return c
}

func intPtr(v int) *int { return &v }

func postTarget(id int) models.VoteTarget    { return models.PostTarget(id) }
func commentTarget(id int) models.VoteTarget { return models.CommentTarget(id) }

func postIDs(posts []models.PostView) []int {
	ids := make([]int, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
