package posts

import "context"

// Service defines the business logic interface for posts
// Every operation that needs an identity takes the already authenticated caller as an opaque string
type Service interface {
	// CreatePost validates the payload and stores a new post owned by owner
	CreatePost(ctx context.Context, owner string, in ContentInput) (*Post, error)

	// ListPosts returns every post, newest first. No posts is an empty slice, not an error
	ListPosts(ctx context.Context) ([]*Post, error)

	// GetPost returns a single post or a NotFoundError
	GetPost(ctx context.Context, id string) (*Post, error)

	// DeletePost destroys a post. Only its owner may do so
	// Flow: Fetch -> Authorize -> Delete
	DeletePost(ctx context.Context, id string, caller string) error

	// ToggleLike likes the post for caller, or removes caller's like if present
	ToggleLike(ctx context.Context, id string, caller string) (*Post, error)

	// RemoveLike drops caller's like if present. A caller who has not liked the
	// post gets it back unchanged, never an error
	RemoveLike(ctx context.Context, id string, caller string) (*Post, error)

	// AddComment validates the payload and puts a new comment at the front of the history
	AddComment(ctx context.Context, id string, caller string, in ContentInput) (*Post, error)

	// RemoveComment deletes one comment by id. Allowed for the comment author and the post owner
	RemoveComment(ctx context.Context, id string, commentID string, caller string) (*Post, error)
}

// Repository defines the data access interface for posts
// Implementations hand out copies: mutating a returned post never changes stored state
type Repository interface {
	// Create inserts a new post and sets its CID
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by id
	// Returns a NotFoundError when the post does not exist
	GetByID(ctx context.Context, id string) (*Post, error)

	// List returns all posts ordered by createdAt descending; ties keep the
	// newest insertion first
	List(ctx context.Context) ([]*Post, error)

	// Delete removes a post permanently
	// Returns a NotFoundError when the post does not exist
	Delete(ctx context.Context, id string) error

	// SaveIfUnchanged writes the post's likes and comments only if the stored CID
	// still equals expectedCID, then sets post.CID to the new value.
	// Returns ErrConcurrentModification on a CID mismatch and a NotFoundError
	// when the post was deleted in the meantime.
	SaveIfUnchanged(ctx context.Context, post *Post, expectedCID string) error
}
