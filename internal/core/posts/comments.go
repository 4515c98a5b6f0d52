package posts

import (
	"slices"
	"time"
)

// NewComment builds a comment from an already validated payload
func NewComment(id, user string, in ContentInput, createdAt time.Time) Comment {
	return Comment{
		ID:        id,
		User:      user,
		Text:      in.Text,
		Name:      in.Name,
		Avatar:    in.Avatar,
		CreatedAt: createdAt,
	}
}

// AddComment puts comment at the front of the post's history (newest first)
func AddComment(post *Post, comment Comment) {
	post.Comments = slices.Insert(post.Comments, 0, comment)
}

// FindComment returns the comment with the given id
func FindComment(post *Post, commentID string) (Comment, bool) {
	i := slices.IndexFunc(post.Comments, func(c Comment) bool {
		return c.ID == commentID
	})
	if i < 0 {
		return Comment{}, false
	}
	return post.Comments[i], true
}

// RemoveComment deletes exactly the comment with commentID, keeping the order
// of the rest. The post is left untouched when no comment matches.
func RemoveComment(post *Post, commentID string) (Comment, error) {
	i := slices.IndexFunc(post.Comments, func(c Comment) bool {
		return c.ID == commentID
	})
	if i < 0 {
		return Comment{}, NewNotFoundError(ResourceComment, commentID)
	}

	removed := post.Comments[i]
	post.Comments = slices.Delete(post.Comments, i, i+1)
	return removed, nil
}
