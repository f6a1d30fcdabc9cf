package models

import "time"

type Post struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:300;not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url,omitempty"`
	UserID      int       `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	CommunityID int       `gorm:"not null;index" json:"subreddit_id"`
	Community   Community `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Upvotes     int       `gorm:"not null;default:0" json:"upvotes"`
	Downvotes   int       `gorm:"not null;default:0" json:"downvotes"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (p Post) Score() int {
	return p.Upvotes - p.Downvotes
}

// PostView is a post joined with its author and community names.
type PostView struct {
	Post
	Username      string `json:"username"`
	SubredditName string `json:"subreddit_name"`
	Score         int    `json:"score"`
}

func NewPostView(p Post, username, community string) PostView {
	return PostView{Post: p, Username: username, SubredditName: community, Score: p.Score()}
}

// PostDetail is the single-post payload: the flat comment list plus the
// threaded forest built from it.
type PostDetail struct {
	PostView
	ContentHTML string          `json:"content_html"`
	Comments    []CommentView   `json:"comments"`
	Thread      []ThreadComment `json:"thread"`
}

type CreatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	CommunityID int    `json:"subreddit_id"`
}

// PostFilter narrows a post listing. Zero fields do not filter; Term is a
// case-insensitive substring matched against title or content.
type PostFilter struct {
	CommunityID int
	UserID      int
	Term        string
}
