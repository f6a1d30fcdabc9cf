package models

import "time"

type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	PostID    int       `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID  *int      `gorm:"index" json:"parent_id"` // nil for root comments
	Parent    *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Upvotes   int       `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int       `gorm:"not null;default:0" json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Comment) Score() int {
	return c.Upvotes - c.Downvotes
}

type CommentView struct {
	Comment
	Username string `json:"username"`
	Score    int    `json:"score"`
}

func NewCommentView(c Comment, username string) CommentView {
	return CommentView{Comment: c, Username: username, Score: c.Score()}
}

// ThreadComment is the nested rendering of one node of a comment forest.
type ThreadComment struct {
	CommentView
	Replies []ThreadComment `json:"replies"`
}

type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int   `json:"parent_id,omitempty"`
}
