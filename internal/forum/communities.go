package forum

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

// Communities is the registry of named forums. Communities are never
// renamed or deleted, so found rows are cached without expiry.
type Communities struct {
	store CommunityStore
	cache *lru.Cache[int, models.Community]
}

func NewCommunities(store CommunityStore, cacheSize int) (*Communities, error) {
	cache, err := lru.New[int, models.Community](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create community cache: %w", err)
	}
	return &Communities{store: store, cache: cache}, nil
}

type newCommunity struct {
	Name        string `validate:"required,min=3,max=50,communityname"`
	Description string `validate:"max=500"`
}

func (c *Communities) Create(ctx context.Context, id auth.Identity, name, description string) (models.Community, error) {
	if err := requireIdentity(id); err != nil {
		return models.Community{}, err
	}
	in := newCommunity{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if err := check(in); err != nil {
		return models.Community{}, err
	}

	community := models.Community{Name: in.Name, Description: in.Description}
	if err := c.store.CreateCommunity(ctx, &community); err != nil {
		return models.Community{}, err
	}
	c.cache.Add(community.ID, community)
	return community, nil
}

// List returns every community, newest first.
func (c *Communities) List(ctx context.Context) ([]models.Community, error) {
	return c.store.ListCommunities(ctx)
}

func (c *Communities) Get(ctx context.Context, id int) (models.Community, error) {
	if community, ok := c.cache.Get(id); ok {
		return community, nil
	}
	community, err := c.store.CommunityByID(ctx, id)
	if err != nil {
		return models.Community{}, err
	}
	c.cache.Add(id, community)
	return community, nil
}
