package forum

import (
	"cmp"
	"slices"
	"time"

	"github.com/emilythestrangee/discuss/backend/internal/models"
)

// compareRanked orders by score, then creation time, then id, all descending.
func compareRanked(scoreA, scoreB int, createdA, createdB time.Time, idA, idB int) int {
	if c := cmp.Compare(scoreB, scoreA); c != 0 {
		return c
	}
	if c := createdB.Compare(createdA); c != 0 {
		return c
	}
	return cmp.Compare(idB, idA)
}

// SortFeed orders posts for the hot/top feed.
func SortFeed(posts []models.PostView) {
	slices.SortFunc(posts, func(a, b models.PostView) int {
		return compareRanked(a.Score, b.Score, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

// SortComments applies the feed order to the comments of one post.
func SortComments(comments []models.CommentView) {
	slices.SortFunc(comments, func(a, b models.CommentView) int {
		return compareRanked(a.Score, b.Score, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

// SortNewest orders search results by creation time alone.
func SortNewest(posts []models.PostView) {
	slices.SortFunc(posts, func(a, b models.PostView) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
