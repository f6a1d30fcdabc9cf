package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/discuss/backend/internal/models"
)

func flat(pairs ...[2]int) []models.CommentView {
	out := make([]models.CommentView, 0, len(pairs))
	for _, p := range pairs {
		c := models.Comment{ID: p[0]}
		if p[1] != 0 {
			parent := p[1]
			c.ParentID = &parent
		}
		out = append(out, models.NewCommentView(c, ""))
	}
	return out
}

func commentIDs(comments []models.CommentView) []int {
	ids := make([]int, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestBuildThread(t *testing.T) {
	thread := BuildThread(flat([2]int{1, 0}, [2]int{2, 1}, [2]int{3, 1}, [2]int{4, 2}))

	assert.Equal(t, []int{1}, commentIDs(thread.Roots()))
	assert.Equal(t, []int{2, 3}, commentIDs(thread.Children(1)))
	assert.Equal(t, []int{4}, commentIDs(thread.Children(2)))
	assert.Empty(t, thread.Children(3))
	assert.Nil(t, thread.Children(99))
	assert.Equal(t, 4, thread.Len())

	nested := thread.Nested()
	require.Len(t, nested, 1)
	require.Len(t, nested[0].Replies, 2)
	assert.Equal(t, 4, nested[0].Replies[0].Replies[0].ID)
	assert.NotNil(t, nested[0].Replies[1].Replies)
	assert.Empty(t, nested[0].Replies[1].Replies)
}

func TestBuildThreadKeepsInputOrderForSiblings(t *testing.T) {
	thread := BuildThread(flat([2]int{3, 0}, [2]int{1, 0}, [2]int{5, 3}, [2]int{4, 3}))
	assert.Equal(t, []int{3, 1}, commentIDs(thread.Roots()))
	assert.Equal(t, []int{5, 4}, commentIDs(thread.Children(3)))
}

func TestBuildThreadDropsUnreachable(t *testing.T) {
	tests := []struct {
		name     string
		comments []models.CommentView
		roots    []int
		size     int
	}{
		{"orphan and its replies", flat([2]int{1, 0}, [2]int{2, 9}, [2]int{3, 2}), []int{1}, 1},
		{"two-node cycle", flat([2]int{1, 0}, [2]int{2, 3}, [2]int{3, 2}), []int{1}, 1},
		{"self parent", flat([2]int{1, 1}, [2]int{2, 0}), []int{2}, 1},
		{"empty", nil, []int{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thread := BuildThread(tt.comments)
			assert.Equal(t, tt.roots, commentIDs(thread.Roots()))
			assert.Equal(t, tt.size, thread.Len())
			assert.Len(t, thread.Nested(), len(tt.roots))
		})
	}
}
