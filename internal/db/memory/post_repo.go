// Package memory provides an in-process implementation of the post repository.
// It backs local runs and service tests; state is lost on restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"Postboard/internal/core/posts"
)

type entry struct {
	post *posts.Post
	seq  uint64
}

type memoryPostRepo struct {
	data map[string]*entry
	mu   sync.RWMutex
	seq  uint64
}

// NewPostRepository creates an empty in-memory post repository
func NewPostRepository() posts.Repository {
	return &memoryPostRepo{
		data: make(map[string]*entry),
	}
}

func (r *memoryPostRepo) Create(ctx context.Context, post *posts.Post) error {
	if post == nil {
		return fmt.Errorf("post is required")
	}

	cid, err := posts.ComputeCID(post)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[post.ID]; exists {
		return fmt.Errorf("post already exists: %s", post.ID)
	}

	post.CID = cid
	r.seq++
	r.data[post.ID] = &entry{post: post.Clone(), seq: r.seq}
	return nil
}

func (r *memoryPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.data[id]
	if !ok {
		return nil, posts.NewNotFoundError(posts.ResourcePost, id)
	}
	return e.post.Clone(), nil
}

func (r *memoryPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.data))
	for _, e := range r.data {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b *entry) int {
		if c := b.post.CreatedAt.Compare(a.post.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		}
		return 0
	})

	result := make([]*posts.Post, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.post.Clone())
	}
	return result, nil
}

func (r *memoryPostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return posts.NewNotFoundError(posts.ResourcePost, id)
	}
	delete(r.data, id)
	return nil
}

func (r *memoryPostRepo) SaveIfUnchanged(ctx context.Context, post *posts.Post, expectedCID string) error {
	if post == nil {
		return fmt.Errorf("post is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.data[post.ID]
	if !ok {
		return posts.NewNotFoundError(posts.ResourcePost, post.ID)
	}
	if e.post.CID != expectedCID {
		return posts.ErrConcurrentModification
	}

	// Only the collections are mutable after creation
	updated := e.post.Clone()
	updated.Likes = slices.Clone(post.Likes)
	updated.Comments = slices.Clone(post.Comments)

	cid, err := posts.ComputeCID(updated)
	if err != nil {
		return err
	}
	updated.CID = cid
	e.post = updated

	post.CID = cid
	return nil
}
