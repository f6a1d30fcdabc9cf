package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

func TestCreateCommunity(t *testing.T) {
	f := newTestForum(t)
	ctx := context.Background()
	owner := f.user(t, "avery")

	c, err := f.communities.Create(ctx, owner, "golang", "<b>Gophers</b> & friends")
	require.NoError(t, err)
	assert.Equal(t, "golang", c.Name)
	assert.Equal(t, "<b>Gophers</b> & friends", c.Description)

	_, err = f.communities.Create(ctx, owner, "golang", "again")
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.communities.Create(ctx, auth.Identity{}, "rust", "")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = f.communities.Create(ctx, owner, "no spaces", "")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListCommunitiesNewestFirst(t *testing.T) {
	f := newTestForum(t)
	owner := f.user(t, "avery")
	f.community(t, owner, "technology")
	f.community(t, owner, "programming")
	f.community(t, owner, "funny")

	list, err := f.communities.List(context.Background())
	require.NoError(t, err)
	var names []string
	for _, c := range list {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"funny", "programming", "technology"}, names)
}

type countingCommunityStore struct {
	CommunityStore
	lookups int
}

func (s *countingCommunityStore) CommunityByID(ctx context.Context, id int) (models.Community, error) {
	s.lookups++
	return s.CommunityStore.CommunityByID(ctx, id)
}

func TestGetCommunityCachesHits(t *testing.T) {
	f := newTestForum(t)
	ctx := context.Background()
	owner := f.user(t, "avery")
	created := f.community(t, owner, "golang")

	counting := &countingCommunityStore{CommunityStore: f.store}
	registry, err := NewCommunities(counting, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		c, err := registry.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "golang", c.Name)
	}
	assert.Equal(t, 1, counting.lookups)

	_, err = registry.Get(ctx, 999)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = registry.Get(ctx, 999)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 3, counting.lookups, "misses are not cached")
}
