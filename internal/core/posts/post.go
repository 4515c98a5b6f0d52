package posts

import (
	"time"
)

// Post is the aggregate root: a post together with the likes and comments it owns.
// Name and Avatar are snapshots of the author's profile taken at creation time.
type Post struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	CID       string    `json:"cid"`
	Owner     string    `json:"owner"`
	Text      string    `json:"text"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
}

// Like records that User likes the post. A user appears at most once per post.
type Like struct {
	User string `json:"user"`
}

// Comment is an entry in a post's comment history (newest first).
// User is a lookup key for the commenter, not an ownership relation.
type Comment struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
}

// ContentInput is the client payload for creating a post or a comment.
// The author identity is never part of it; it comes from the authenticated caller.
type ContentInput struct {
	Text   string `json:"text" validate:"required,gmin=10,gmax=300"`
	Name   string `json:"name,omitempty" validate:"gmax=100"`
	Avatar string `json:"avatar,omitempty" validate:"omitempty,http_url,max=2048"`
}

// LikeAction tells which direction a toggle went
type LikeAction string

const (
	LikeActionLiked   LikeAction = "liked"
	LikeActionUnliked LikeAction = "unliked"
)

// Clone returns a deep copy of the post so callers can mutate it without
// touching shared state.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Likes = append(make([]Like, 0, len(p.Likes)), p.Likes...)
	c.Comments = append(make([]Comment, 0, len(p.Comments)), p.Comments...)
	return &c
}

// LikeCount returns the number of distinct users that like the post
func (p *Post) LikeCount() int {
	return len(p.Likes)
}
