package forum

import (
	"context"
	"strings"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

// Content stores posts and comments and shapes them for reading.
type Content struct {
	store       ContentStore
	communities *Communities
}

func NewContent(store ContentStore, communities *Communities) *Content {
	return &Content{store: store, communities: communities}
}

type NewPost struct {
	Title       string `validate:"required,max=300"`
	Content     string `validate:"max=40000"`
	ImageURL    string `validate:"omitempty,max=2048,url" label:"image_url"`
	CommunityID int    `validate:"required,gt=0" label:"subreddit_id"`
}

func (c *Content) CreatePost(ctx context.Context, id auth.Identity, in NewPost) (models.PostView, error) {
	if err := requireIdentity(id); err != nil {
		return models.PostView{}, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := check(in); err != nil {
		return models.PostView{}, err
	}

	community, err := c.communities.Get(ctx, in.CommunityID)
	if err != nil {
		return models.PostView{}, err
	}

	post := models.Post{
		Title:       in.Title,
		Content:     in.Content,
		ImageURL:    in.ImageURL,
		UserID:      id.UserID,
		CommunityID: community.ID,
	}
	if err := c.store.CreatePost(ctx, &post); err != nil {
		return models.PostView{}, err
	}
	return models.NewPostView(post, id.Username, community.Name), nil
}

type newComment struct {
	Content string `validate:"required,max=10000"`
}

// CreateComment adds a comment to postID. A parent must be an existing
// comment on the same post, so a parent is always older than its replies.
func (c *Content) CreateComment(ctx context.Context, id auth.Identity, postID int, content string, parentID *int) (models.CommentView, error) {
	if err := requireIdentity(id); err != nil {
		return models.CommentView{}, err
	}
	in := newComment{Content: strings.TrimSpace(content)}
	if err := check(in); err != nil {
		return models.CommentView{}, err
	}

	if _, err := c.store.PostByID(ctx, postID); err != nil {
		return models.CommentView{}, err
	}
	if parentID != nil {
		parent, err := c.store.CommentByID(ctx, *parentID)
		if apperr.IsKind(err, apperr.KindNotFound) {
			return models.CommentView{}, apperr.NotFound("parent_not_found", "Parent comment not found")
		}
		if err != nil {
			return models.CommentView{}, err
		}
		if parent.PostID != postID {
			return models.CommentView{}, apperr.NotFound("parent_not_found", "Parent comment belongs to a different post")
		}
	}

	comment := models.Comment{
		Content:  in.Content,
		UserID:   id.UserID,
		PostID:   postID,
		ParentID: parentID,
	}
	if err := c.store.CreateComment(ctx, &comment); err != nil {
		return models.CommentView{}, err
	}
	return models.NewCommentView(comment, id.Username), nil
}

// GetPost returns the post with its comments, both flat in feed order and
// threaded.
func (c *Content) GetPost(ctx context.Context, id int) (models.PostDetail, error) {
	post, err := c.store.PostByID(ctx, id)
	if err != nil {
		return models.PostDetail{}, err
	}
	comments, err := c.store.CommentsByPost(ctx, id)
	if err != nil {
		return models.PostDetail{}, err
	}
	SortComments(comments)

	return models.PostDetail{
		PostView:    post,
		ContentHTML: RenderMarkdown(post.Content),
		Comments:    comments,
		Thread:      BuildThread(comments).Nested(),
	}, nil
}

func (c *Content) ListPosts(ctx context.Context) ([]models.PostView, error) {
	return c.feed(ctx, models.PostFilter{})
}

func (c *Content) ListCommunityPosts(ctx context.Context, communityID int) ([]models.PostView, error) {
	if _, err := c.communities.Get(ctx, communityID); err != nil {
		return nil, err
	}
	return c.feed(ctx, models.PostFilter{CommunityID: communityID})
}

func (c *Content) ListUserPosts(ctx context.Context, username string) ([]models.PostView, error) {
	user, err := c.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return c.feed(ctx, models.PostFilter{UserID: user.ID})
}

func (c *Content) ListComments(ctx context.Context, postID int) ([]models.CommentView, error) {
	if _, err := c.store.PostByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := c.store.CommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	SortComments(comments)
	return comments, nil
}

// SearchPosts matches term case-insensitively against title or content,
// newest first. A blank term matches every post.
func (c *Content) SearchPosts(ctx context.Context, term string) ([]models.PostView, error) {
	posts, err := c.store.ListPosts(ctx, models.PostFilter{Term: strings.TrimSpace(term)})
	if err != nil {
		return nil, err
	}
	SortNewest(posts)
	return posts, nil
}

func (c *Content) feed(ctx context.Context, f models.PostFilter) ([]models.PostView, error) {
	posts, err := c.store.ListPosts(ctx, f)
	if err != nil {
		return nil, err
	}
	SortFeed(posts)
	return posts, nil
}
