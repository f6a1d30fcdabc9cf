package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/emilythestrangee/discuss/backend/internal/models"
)

type voteKey struct {
	userID int
	target models.VoteTarget
}

// Memory is a process-local store for development and tests. Every method
// holds one mutex, which makes each vote atomic.
type Memory struct {
	mu          sync.Mutex
	now         func() time.Time
	users       []models.User
	communities []models.Community
	posts       []models.Post
	comments    []models.Comment
	votes       map[voteKey]*models.Vote
	nextVoteID  int
}

type MemoryOption func(*Memory)

// WithClock overrides the time source used for created_at stamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		now:   func() time.Time { return time.Now().UTC() },
		votes: make(map[voteKey]*models.Vote),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Health() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]string{
		"status":     "up",
		"message":    "in-memory store",
		"users":      fmt.Sprintf("%d", len(m.users)),
		"subreddits": fmt.Sprintf("%d", len(m.communities)),
		"posts":      fmt.Sprintf("%d", len(m.posts)),
		"comments":   fmt.Sprintf("%d", len(m.comments)),
		"votes":      fmt.Sprintf("%d", len(m.votes)),
	}
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return errUsernameTaken
		}
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return errEmailTaken
		}
	}
	u.ID = len(m.users) + 1
	u.CreatedAt = m.now()
	m.users = append(m.users, *u)
	return nil
}

func (m *Memory) UserByUsername(_ context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, errUserNotFound
}

func (m *Memory) UserByID(_ context.Context, id int) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.user(id)
	if !ok {
		return models.User{}, errUserNotFound
	}
	return u, nil
}

func (m *Memory) UserTaken(_ context.Context, username, email string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var nameTaken, emailTaken bool
	for _, u := range m.users {
		nameTaken = nameTaken || u.Username == username
		emailTaken = emailTaken || u.Email == email
	}
	return nameTaken, emailTaken, nil
}

func (m *Memory) CreateCommunity(_ context.Context, c *models.Community) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.communities {
		if existing.Name == c.Name {
			return errCommunityExists
		}
	}
	c.ID = len(m.communities) + 1
	c.CreatedAt = m.now()
	m.communities = append(m.communities, *c)
	return nil
}

func (m *Memory) CommunityByID(_ context.Context, id int) (models.Community, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.community(id)
	if !ok {
		return models.Community{}, errCommunityNotFound
	}
	return c, nil
}

func (m *Memory) ListCommunities(_ context.Context) ([]models.Community, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Community, 0, len(m.communities))
	for i := len(m.communities) - 1; i >= 0; i-- {
		out = append(out, m.communities[i])
	}
	return out, nil
}

func (m *Memory) CreatePost(_ context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.user(p.UserID); !ok {
		return errUserNotFound
	}
	if _, ok := m.community(p.CommunityID); !ok {
		return errCommunityNotFound
	}
	p.ID = len(m.posts) + 1
	p.CreatedAt = m.now()
	p.Upvotes, p.Downvotes = 0, 0
	m.posts = append(m.posts, *p)
	return nil
}

func (m *Memory) PostByID(_ context.Context, id int) (models.PostView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 || id > len(m.posts) {
		return models.PostView{}, errPostNotFound
	}
	return m.postView(m.posts[id-1]), nil
}

// ListPosts returns matches newest first, like the Postgres store.
func (m *Memory) ListPosts(_ context.Context, f models.PostFilter) ([]models.PostView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	term := strings.ToLower(f.Term)
	out := []models.PostView{}
	for i := len(m.posts) - 1; i >= 0; i-- {
		p := m.posts[i]
		if f.CommunityID != 0 && p.CommunityID != f.CommunityID {
			continue
		}
		if f.UserID != 0 && p.UserID != f.UserID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Title), term) && !strings.Contains(strings.ToLower(p.Content), term) {
			continue
		}
		out = append(out, m.postView(p))
	}
	return out, nil
}

func (m *Memory) CreateComment(_ context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.user(c.UserID); !ok {
		return errUserNotFound
	}
	if c.PostID < 1 || c.PostID > len(m.posts) {
		return errPostNotFound
	}
	if c.ParentID != nil && (*c.ParentID < 1 || *c.ParentID > len(m.comments)) {
		return errParentNotFound
	}
	c.ID = len(m.comments) + 1
	c.CreatedAt = m.now()
	c.Upvotes, c.Downvotes = 0, 0
	m.comments = append(m.comments, *c)
	return nil
}

func (m *Memory) CommentByID(_ context.Context, id int) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 || id > len(m.comments) {
		return models.Comment{}, errCommentNotFound
	}
	return m.comments[id-1], nil
}

func (m *Memory) CommentsByPost(_ context.Context, postID int) ([]models.CommentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CommentView{}
	for i := len(m.comments) - 1; i >= 0; i-- {
		c := m.comments[i]
		if c.PostID != postID {
			continue
		}
		u, _ := m.user(c.UserID)
		out = append(out, models.NewCommentView(c, u.Username))
	}
	return out, nil
}

func (m *Memory) CastVote(_ context.Context, userID int, target models.VoteTarget, voteType models.VoteType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.user(userID); !ok {
		return errUserNotFound
	}
	up, down, err := m.counters(target)
	if err != nil {
		return err
	}

	key := voteKey{userID: userID, target: target}
	existing := m.votes[key]
	var prev *models.VoteType
	if existing != nil {
		old := existing.VoteType
		prev = &old
	}
	delta := models.VoteDelta(prev, voteType)

	now := m.now()
	if existing == nil {
		m.nextVoteID++
		id := target.ID
		vote := &models.Vote{ID: m.nextVoteID, UserID: userID, VoteType: voteType, CreatedAt: now, UpdatedAt: now}
		if target.Kind == models.TargetPost {
			vote.PostID = &id
		} else {
			vote.CommentID = &id
		}
		m.votes[key] = vote
	} else if existing.VoteType != voteType {
		existing.VoteType = voteType
		existing.UpdatedAt = now
	}

	*up += delta.Up
	*down += delta.Down
	return nil
}

// VotesFor returns the ledger rows for a target.
func (m *Memory) VotesFor(target models.VoteTarget) []models.Vote {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Vote
	for key, v := range m.votes {
		if key.target == target {
			out = append(out, *v)
		}
	}
	return out
}

func (m *Memory) counters(t models.VoteTarget) (*int, *int, error) {
	switch t.Kind {
	case models.TargetPost:
		if t.ID < 1 || t.ID > len(m.posts) {
			return nil, nil, errPostNotFound
		}
		p := &m.posts[t.ID-1]
		return &p.Upvotes, &p.Downvotes, nil
	case models.TargetComment:
		if t.ID < 1 || t.ID > len(m.comments) {
			return nil, nil, errCommentNotFound
		}
		c := &m.comments[t.ID-1]
		return &c.Upvotes, &c.Downvotes, nil
	}
	return nil, nil, fmt.Errorf("unknown vote target %q", t.Kind)
}

func (m *Memory) user(id int) (models.User, bool) {
	if id < 1 || id > len(m.users) {
		return models.User{}, false
	}
	return m.users[id-1], true
}

func (m *Memory) community(id int) (models.Community, bool) {
	if id < 1 || id > len(m.communities) {
		return models.Community{}, false
	}
	return m.communities[id-1], true
}

func (m *Memory) postView(p models.Post) models.PostView {
	u, _ := m.user(p.UserID)
	c, _ := m.community(p.CommunityID)
	return models.NewPostView(p, u.Username, c.Name)
}
