package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/database"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

// Postgres is the gorm-backed store.
type Postgres struct {
	db  *gorm.DB
	svc database.Service
}

func NewPostgres(svc database.Service) *Postgres {
	return &Postgres{db: svc.GetDB(), svc: svc}
}

func (r *Postgres) Health() map[string]string {
	return r.svc.Health()
}

func (r *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	return translate("create user", r.db.WithContext(ctx).Create(u).Error, nil)
}

func (r *Postgres) UserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error
	return u, translate("load user", err, errUserNotFound)
}

func (r *Postgres) UserByID(ctx context.Context, id int) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Take(&u, id).Error
	return u, translate("load user", err, errUserNotFound)
}

// UserTaken reports which of username and email already belong to a user.
func (r *Postgres) UserTaken(ctx context.Context, username, email string) (bool, bool, error) {
	var existing []models.User
	err := r.db.WithContext(ctx).
		Select("username", "email").
		Where("username = ? OR email = ?", username, email).
		Find(&existing).Error
	if err != nil {
		return false, false, translate("check user", err, nil)
	}
	var nameTaken, emailTaken bool
	for _, u := range existing {
		nameTaken = nameTaken || u.Username == username
		emailTaken = emailTaken || u.Email == email
	}
	return nameTaken, emailTaken, nil
}

func (r *Postgres) CreateCommunity(ctx context.Context, c *models.Community) error {
	return translate("create subreddit", r.db.WithContext(ctx).Create(c).Error, nil)
}

func (r *Postgres) CommunityByID(ctx context.Context, id int) (models.Community, error) {
	var c models.Community
	err := r.db.WithContext(ctx).Take(&c, id).Error
	return c, translate("load subreddit", err, errCommunityNotFound)
}

func (r *Postgres) ListCommunities(ctx context.Context) ([]models.Community, error) {
	communities := []models.Community{}
	err := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&communities).Error
	return communities, translate("list subreddits", err, nil)
}

func (r *Postgres) CreatePost(ctx context.Context, p *models.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
	return translate("create post", err, nil)
}

type postRow struct {
	ID            int
	Title         string
	Content       string
	ImageURL      string
	UserID        int
	CommunityID   int
	Upvotes       int
	Downvotes     int
	CreatedAt     time.Time
	Username      string
	SubredditName string
}

func (row postRow) view() models.PostView {
	return models.NewPostView(models.Post{
		ID:          row.ID,
		Title:       row.Title,
		Content:     row.Content,
		ImageURL:    row.ImageURL,
		UserID:      row.UserID,
		CommunityID: row.CommunityID,
		Upvotes:     row.Upvotes,
		Downvotes:   row.Downvotes,
		CreatedAt:   row.CreatedAt,
	}, row.Username, row.SubredditName)
}

func (r *Postgres) posts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.title, posts.content, posts.image_url, posts.user_id, posts.community_id, " +
			"posts.upvotes, posts.downvotes, posts.created_at, users.username, communities.name AS subreddit_name").
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("JOIN communities ON communities.id = posts.community_id")
}

func (r *Postgres) PostByID(ctx context.Context, id int) (models.PostView, error) {
	var row postRow
	err := r.posts(ctx).Where("posts.id = ?", id).Take(&row).Error
	if err != nil {
		return models.PostView{}, translate("load post", err, errPostNotFound)
	}
	return row.view(), nil
}

func (r *Postgres) ListPosts(ctx context.Context, f models.PostFilter) ([]models.PostView, error) {
	q := r.posts(ctx)
	if f.CommunityID != 0 {
		q = q.Where("posts.community_id = ?", f.CommunityID)
	}
	if f.UserID != 0 {
		q = q.Where("posts.user_id = ?", f.UserID)
	}
	if f.Term != "" {
		pattern := likePattern(f.Term)
		q = q.Where("posts.title ILIKE ? OR posts.content ILIKE ?", pattern, pattern)
	}

	var rows []postRow
	if err := q.Order("posts.created_at desc, posts.id desc").Find(&rows).Error; err != nil {
		return nil, translate("list posts", err, nil)
	}
	views := make([]models.PostView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.view())
	}
	return views, nil
}

// likePattern escapes LIKE metacharacters so term matches literally.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

func (r *Postgres) CreateComment(ctx context.Context, c *models.Comment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
	return translate("create comment", err, nil)
}

func (r *Postgres) CommentByID(ctx context.Context, id int) (models.Comment, error) {
	var c models.Comment
	err := r.db.WithContext(ctx).Take(&c, id).Error
	return c, translate("load comment", err, errCommentNotFound)
}

type commentRow struct {
	ID        int
	Content   string
	UserID    int
	PostID    int
	ParentID  *int
	Upvotes   int
	Downvotes int
	CreatedAt time.Time
	Username  string
}

func (r *Postgres) CommentsByPost(ctx context.Context, postID int) ([]models.CommentView, error) {
	var rows []commentRow
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.content, comments.user_id, comments.post_id, comments.parent_id, " +
			"comments.upvotes, comments.downvotes, comments.created_at, users.username").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at desc, comments.id desc").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list comments", err, nil)
	}
	views := make([]models.CommentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.NewCommentView(models.Comment{
			ID:        row.ID,
			Content:   row.Content,
			UserID:    row.UserID,
			PostID:    row.PostID,
			ParentID:  row.ParentID,
			Upvotes:   row.Upvotes,
			Downvotes: row.Downvotes,
			CreatedAt: row.CreatedAt,
		}, row.Username))
	}
	return views, nil
}

type tally struct {
	Upvotes   int
	Downvotes int
}

// CastVote records the user's vote and moves the target's counters by the
// delta in one transaction. The target row is locked first, so concurrent
// votes on the same target apply one after another.
func (r *Postgres) CastVote(ctx context.Context, userID int, target models.VoteTarget, voteType models.VoteType) error {
	table, column, notFound := targetTable(target)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current tally
		err := tx.Table(table).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("upvotes, downvotes").
			Where("id = ?", target.ID).
			Take(&current).Error
		if err != nil {
			return translate("lock vote target", err, notFound)
		}

		var existing models.Vote
		var prev *models.VoteType
		err = tx.Where("user_id = ?", userID).Where(column+" = ?", target.ID).Take(&existing).Error
		switch {
		case err == nil:
			old := existing.VoteType
			prev = &old
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return translate("load vote", err, nil)
		}

		delta := models.VoteDelta(prev, voteType)

		switch {
		case prev == nil:
			vote := models.Vote{UserID: userID, VoteType: voteType}
			id := target.ID
			if target.Kind == models.TargetPost {
				vote.PostID = &id
			} else {
				vote.CommentID = &id
			}
			if err := tx.Omit(clause.Associations).Create(&vote).Error; err != nil {
				return translate("insert vote", err, nil)
			}
		case *prev != voteType:
			if err := tx.Model(&existing).Update("vote_type", voteType).Error; err != nil {
				return translate("update vote", err, nil)
			}
		}

		if delta.IsZero() {
			return nil
		}
		err = tx.Table(table).Where("id = ?", target.ID).UpdateColumns(map[string]interface{}{
			"upvotes":   gorm.Expr("upvotes + ?", delta.Up),
			"downvotes": gorm.Expr("downvotes + ?", delta.Down),
		}).Error
		return translate("apply vote", err, nil)
	})
}

func targetTable(t models.VoteTarget) (table, column string, notFound *apperr.Error) {
	if t.Kind == models.TargetComment {
		return "comments", "comment_id", errCommentNotFound
	}
	return "posts", "post_id", errPostNotFound
}
