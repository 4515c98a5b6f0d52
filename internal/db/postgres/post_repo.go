package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Postboard/internal/core/posts"
)

// uniqueViolation is the PostgreSQL error code for a duplicate key
const uniqueViolation = "23505"

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

const selectPostColumns = `
	SELECT id, cid, owner, text, name, avatar, likes, comments, created_at
	FROM posts
`

// Create inserts a new post and computes its CID
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	cid, err := posts.ComputeCID(post)
	if err != nil {
		return err
	}

	likesJSON, commentsJSON, err := encodeCollections(post)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (id, cid, owner, text, name, avatar, likes, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.ExecContext(ctx, query,
		post.ID, cid, post.Owner, post.Text, post.Name, post.Avatar,
		string(likesJSON), string(commentsJSON), post.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("post already exists: %s", post.ID)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	post.CID = cid
	return nil
}

// GetByID retrieves a post by id
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	row := r.db.QueryRowContext(ctx, selectPostColumns+` WHERE id = $1`, id)

	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, posts.NewNotFoundError(posts.ResourcePost, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List returns every post, newest first. seq breaks createdAt ties by insertion order.
func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPostColumns+` ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// Delete removes a post with its likes and comments
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.NewNotFoundError(posts.ResourcePost, id)
	}
	return nil
}

// SaveIfUnchanged replaces likes and comments when the stored CID still matches.
// The CID check and the write happen in one UPDATE statement.
func (r *postgresPostRepo) SaveIfUnchanged(ctx context.Context, post *posts.Post, expectedCID string) error {
	cid, err := posts.ComputeCID(post)
	if err != nil {
		return err
	}

	likesJSON, commentsJSON, err := encodeCollections(post)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts
		SET likes = $3, comments = $4, cid = $5
		WHERE id = $1 AND cid = $2
	`

	result, err := r.db.ExecContext(ctx, query, post.ID, expectedCID, string(likesJSON), string(commentsJSON), cid)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, post.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check post existence: %w", err)
		}
		if !exists {
			return posts.NewNotFoundError(posts.ResourcePost, post.ID)
		}
		return posts.ErrConcurrentModification
	}

	post.CID = cid
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		post         posts.Post
		likesJSON    []byte
		commentsJSON []byte
	)

	err := row.Scan(
		&post.ID, &post.CID, &post.Owner, &post.Text, &post.Name, &post.Avatar,
		&likesJSON, &commentsJSON, &post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.CreatedAt = post.CreatedAt.UTC()
	post.Likes = []posts.Like{}
	post.Comments = []posts.Comment{}

	if len(likesJSON) > 0 {
		if err := json.Unmarshal(likesJSON, &post.Likes); err != nil {
			return nil, fmt.Errorf("failed to decode likes: %w", err)
		}
	}
	if len(commentsJSON) > 0 {
		if err := json.Unmarshal(commentsJSON, &post.Comments); err != nil {
			return nil, fmt.Errorf("failed to decode comments: %w", err)
		}
	}

	// a JSON null decodes to a nil slice
	if post.Likes == nil {
		post.Likes = []posts.Like{}
	}
	if post.Comments == nil {
		post.Comments = []posts.Comment{}
	}

	return &post, nil
}

func encodeCollections(post *posts.Post) ([]byte, []byte, error) {
	likes := post.Likes
	if likes == nil {
		likes = []posts.Like{}
	}
	comments := post.Comments
	if comments == nil {
		comments = []posts.Comment{}
	}

	likesJSON, err := json.Marshal(likes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode likes: %w", err)
	}
	commentsJSON, err := json.Marshal(comments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode comments: %w", err)
	}
	return likesJSON, commentsJSON, nil
}
