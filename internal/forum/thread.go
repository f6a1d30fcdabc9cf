package forum

import "github.com/emilythestrangee/discuss/backend/internal/models"

// Thread is a comment forest kept as an arena: nodes refer to their children
// by index instead of by pointer.
type Thread struct {
	nodes []threadNode
	index map[int]int
	roots []int
}

type threadNode struct {
	comment  models.CommentView
	children []int
}

// BuildThread links a flat comment list into a forest. Sibling order is the
// order of comments. A comment whose parent is not in the list is dropped
// together with its replies; so is anything caught in a parent cycle, since
// neither can be reached from a root.
func BuildThread(comments []models.CommentView) Thread {
	t := Thread{
		nodes: make([]threadNode, len(comments)),
		index: make(map[int]int, len(comments)),
	}
	for i, c := range comments {
		t.nodes[i].comment = c
		t.index[c.ID] = i
	}
	for i, c := range comments {
		if c.ParentID == nil {
			t.roots = append(t.roots, i)
			continue
		}
		if p, ok := t.index[*c.ParentID]; ok && p != i {
			t.nodes[p].children = append(t.nodes[p].children, i)
		}
	}
	return t
}

func (t Thread) Roots() []models.CommentView {
	return t.collect(t.roots)
}

// Children returns the direct replies of the comment with the given id.
func (t Thread) Children(id int) []models.CommentView {
	i, ok := t.index[id]
	if !ok {
		return nil
	}
	return t.collect(t.nodes[i].children)
}

// Len counts the comments reachable from a root.
func (t Thread) Len() int {
	n := 0
	var walk func(i int)
	walk = func(i int) {
		n++
		for _, c := range t.nodes[i].children {
			walk(c)
		}
	}
	for _, r := range t.roots {
		walk(r)
	}
	return n
}

// Nested renders the forest as nested replies for JSON output.
func (t Thread) Nested() []models.ThreadComment {
	return t.nest(t.roots)
}

func (t Thread) nest(idx []int) []models.ThreadComment {
	out := make([]models.ThreadComment, 0, len(idx))
	for _, i := range idx {
		n := t.nodes[i]
		out = append(out, models.ThreadComment{
			CommentView: n.comment,
			Replies:     t.nest(n.children),
		})
	}
	return out
}

func (t Thread) collect(idx []int) []models.CommentView {
	out := make([]models.CommentView, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.nodes[i].comment)
	}
	return out
}
