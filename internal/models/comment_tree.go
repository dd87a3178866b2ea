package models

import "time"

// CommentNode is one node of the reconstructed comment forest.
type CommentNode struct {
	ID        uint           `json:"id"`
	Author    AuthorRef      `json:"author"`
	Content   string         `json:"content"`
	Depth     int            `json:"depth"`
	LikeCount int            `json:"like_count"`
	CreatedAt time.Time      `json:"created_at"`
	ParentID  *uint          `json:"parent_id"`
	IsLiked   bool           `json:"is_liked"`
	Children  []*CommentNode `json:"children"`
}

// BuildCommentTree rebuilds the parent->children forest from a flat list of
// comments fetched ORDER BY path. Path order guarantees every parent appears
// before its children, so a single pass with an id-keyed map suffices: O(n)
// time and space, no further queries.
//
// likedIDs is the viewer's set of liked comment ids for this post, fetched in
// one bulk query by the caller; nil means anonymous viewer.
//
// A comment whose parent id is not in the fetched set should not exist
// (children are cascade-deleted with their parent) but is attached as a root
// rather than dropped.
func BuildCommentTree(comments []Comment, likedIDs map[uint]bool) []*CommentNode {
	byID := make(map[uint]*CommentNode, len(comments))
	roots := make([]*CommentNode, 0)

	for i := range comments {
		c := &comments[i]
		node := &CommentNode{
			ID:        c.ID,
			Author:    c.User.AuthorRef(),
			Content:   c.Content,
			Depth:     c.Depth,
			LikeCount: c.LikeCount,
			CreatedAt: c.CreatedAt,
			ParentID:  c.ParentID,
			IsLiked:   likedIDs[c.ID],
			Children:  []*CommentNode{},
		}
		byID[c.ID] = node

		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	return roots
}

// CountNodes returns the total number of nodes in the forest.
func CountNodes(forest []*CommentNode) int {
	total := 0
	for _, n := range forest {
		total += 1 + CountNodes(n.Children)
	}
	return total
}
