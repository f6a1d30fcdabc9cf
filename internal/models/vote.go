package models

import "time"

type VoteType int

const (
	Upvote   VoteType = 1
	Downvote VoteType = -1
)

func (v VoteType) Valid() bool {
	return v == Upvote || v == Downvote
}

// Vote is the ledger row: one per (user, target). Exactly one of PostID and
// CommentID is set.
type Vote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_votes_user_post;uniqueIndex:idx_votes_user_comment" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PostID    *int      `gorm:"uniqueIndex:idx_votes_user_post" json:"post_id,omitempty"`
	Post      *Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CommentID *int      `gorm:"uniqueIndex:idx_votes_user_comment" json:"comment_id,omitempty"`
	Comment   *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	VoteType  VoteType  `gorm:"not null;check:chk_votes_vote_type,vote_type = 1 OR vote_type = -1" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// VoteTarget names the post or comment a vote applies to.
type VoteTarget struct {
	Kind TargetKind
	ID   int
}

func PostTarget(id int) VoteTarget    { return VoteTarget{Kind: TargetPost, ID: id} }
func CommentTarget(id int) VoteTarget { return VoteTarget{Kind: TargetComment, ID: id} }

// Counters is the change applied to a target's upvote/downvote columns.
type Counters struct {
	Up   int
	Down int
}

func (c Counters) IsZero() bool {
	return c.Up == 0 && c.Down == 0
}

func contribution(v VoteType) Counters {
	if v == Upvote {
		return Counters{Up: 1}
	}
	return Counters{Down: 1}
}

// VoteDelta is the counter change for replacing prev (nil when the user has
// not voted yet) with next: the old contribution is removed and the new one
// added, so repeating the same vote yields a zero delta.
func VoteDelta(prev *VoteType, next VoteType) Counters {
	add := contribution(next)
	if prev == nil {
		return add
	}
	sub := contribution(*prev)
	return Counters{Up: add.Up - sub.Up, Down: add.Down - sub.Down}
}

type VoteRequest struct {
	VoteType VoteType `json:"vote_type"`
}
