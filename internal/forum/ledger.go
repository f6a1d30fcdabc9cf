package forum

import (
	"context"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/models"
)

// Ledger records one current vote per user and target. Callers re-read the
// target to see its score.
type Ledger struct {
	store VoteStore
}

func NewLedger(store VoteStore) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) CastVote(ctx context.Context, id auth.Identity, target models.VoteTarget, voteType models.VoteType) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if !voteType.Valid() {
		return apperr.Validation("invalid_vote_type", "Vote type must be 1 or -1")
	}
	if target.ID <= 0 {
		if target.Kind == models.TargetComment {
			return apperr.NotFound("comment_not_found", "Comment not found")
		}
		return apperr.NotFound("post_not_found", "Post not found")
	}
	return l.store.CastVote(ctx, id.UserID, target, voteType)
}
