package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/bluesky-social/indigo/atproto/syntax"

	"Postboard/internal/observability"
)

const (
	// DefaultMutationRetries is how many times a read-modify-write is attempted
	// before ErrConcurrentModification is returned
	DefaultMutationRetries = 5

	// DefaultWriteTimeout bounds a write once it has been dispatched
	DefaultWriteTimeout = 5 * time.Second

	retryBaseDelay = 5 * time.Millisecond
)

// ServiceConfig tunes the post service. Zero values fall back to defaults
type ServiceConfig struct {
	Now             func() time.Time
	NewID           func() string
	MutationRetries int
	WriteTimeout    time.Duration
}

type postService struct {
	repo         Repository
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
	retries      int
	writeTimeout time.Duration
}

// NewService creates a new post service
func NewService(repo Repository, cfg ServiceConfig, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}

	s := &postService{
		repo:         repo,
		logger:       logger,
		now:          cfg.Now,
		newID:        cfg.NewID,
		retries:      cfg.MutationRetries,
		writeTimeout: cfg.WriteTimeout,
	}

	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		clock := syntax.NewTIDClock(0)
		s.newID = func() string {
			return clock.Next().String()
		}
	}
	if s.retries <= 0 {
		s.retries = DefaultMutationRetries
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = DefaultWriteTimeout
	}

	return s
}

// timestamp returns the current time at the precision the stores keep
func (s *postService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *postService) log(ctx context.Context) *slog.Logger {
	return observability.WithTrace(ctx, s.logger)
}

// CreatePost validates the payload and stores a new post
// Flow: Validate -> Build post -> Insert
func (s *postService) CreatePost(ctx context.Context, owner string, in ContentInput) (*Post, error) {
	if owner == "" {
		return nil, ErrAuthRequired
	}

	normalized, fieldErrors := Validate(in)
	if len(fieldErrors) > 0 {
		return nil, NewValidationFailedError(fieldErrors)
	}

	post := &Post{
		ID:        s.newID(),
		Owner:     owner,
		Text:      normalized.Text,
		Name:      normalized.Name,
		Avatar:    normalized.Avatar,
		Likes:     []Like{},
		Comments:  []Comment{},
		CreatedAt: s.timestamp(),
	}

	writeCtx, cancel := s.writeContext(ctx)
	defer cancel()

	if err := s.repo.Create(writeCtx, post); err != nil {
		s.log(ctx).Error("failed to create post",
			"error", err,
			"owner", owner)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log(ctx).Info("post created",
		"post", post.ID,
		"owner", owner,
		"cid", post.CID)

	return post, nil
}

// ListPosts returns all posts, newest first
func (s *postService) ListPosts(ctx context.Context) ([]*Post, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if result == nil {
		result = []*Post{}
	}
	return result, nil
}

// GetPost returns a single post
func (s *postService) GetPost(ctx context.Context, id string) (*Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, NewNotFoundError(ResourcePost, id)
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post after checking the caller owns it.
// The only access before the ownership check is the read that learns the owner.
func (s *postService) DeletePost(ctx context.Context, id string, caller string) error {
	if caller == "" {
		return ErrAuthRequired
	}

	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}

	if !Authorize(post.Owner, caller) {
		s.log(ctx).Warn("post delete denied",
			"post", post.ID,
			"caller", caller)
		return ErrNotAuthorized
	}

	writeCtx, cancel := s.writeContext(ctx)
	defer cancel()

	if err := s.repo.Delete(writeCtx, post.ID); err != nil {
		if IsNotFound(err) {
			return err
		}
		s.log(ctx).Error("failed to delete post",
			"error", err,
			"post", post.ID)
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.log(ctx).Info("post deleted",
		"post", post.ID,
		"owner", caller)

	return nil
}

// ToggleLike likes or unlikes the post for caller, depending on current membership
func (s *postService) ToggleLike(ctx context.Context, id string, caller string) (*Post, error) {
	if caller == "" {
		return nil, ErrAuthRequired
	}

	var action LikeAction
	post, err := s.mutate(ctx, id, func(p *Post) error {
		action = ToggleLike(p, caller)
		return nil
	})
	if err != nil {
		return nil, err
	}

	likeToggles.WithLabelValues(string(action)).Inc()
	s.log(ctx).Info("like toggled",
		"post", post.ID,
		"user", caller,
		"action", action,
		"likes", post.LikeCount())

	return post, nil
}

// RemoveLike removes caller's like; an absent like is not an error
func (s *postService) RemoveLike(ctx context.Context, id string, caller string) (*Post, error) {
	if caller == "" {
		return nil, ErrAuthRequired
	}

	var removed bool
	post, err := s.mutate(ctx, id, func(p *Post) error {
		removed = RemoveLike(p, caller)
		if !removed {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if removed {
		likeToggles.WithLabelValues(string(LikeActionUnliked)).Inc()
	}
	s.log(ctx).Info("like removed",
		"post", post.ID,
		"user", caller,
		"removed", removed,
		"likes", post.LikeCount())

	return post, nil
}

// AddComment validates the payload and prepends a new comment
func (s *postService) AddComment(ctx context.Context, id string, caller string, in ContentInput) (*Post, error) {
	if caller == "" {
		return nil, ErrAuthRequired
	}

	normalized, fieldErrors := Validate(in)
	if len(fieldErrors) > 0 {
		return nil, NewValidationFailedError(fieldErrors)
	}

	// Built once so a retried save keeps the same comment id and timestamp
	comment := NewComment(s.newID(), caller, normalized, s.timestamp())

	post, err := s.mutate(ctx, id, func(p *Post) error {
		AddComment(p, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	commentOps.WithLabelValues("add").Inc()
	s.log(ctx).Info("comment added",
		"post", post.ID,
		"comment", comment.ID,
		"user", caller)

	return post, nil
}

// RemoveComment deletes one comment; the comment author or the post owner may do so
func (s *postService) RemoveComment(ctx context.Context, id string, commentID string, caller string) (*Post, error) {
	if caller == "" {
		return nil, ErrAuthRequired
	}

	post, err := s.mutate(ctx, id, func(p *Post) error {
		comment, ok := FindComment(p, commentID)
		if !ok {
			return NewNotFoundError(ResourceComment, commentID)
		}
		if !canRemoveComment(p, comment, caller) {
			return ErrNotAuthorized
		}
		_, err := RemoveComment(p, commentID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotAuthorized) {
			s.log(ctx).Warn("comment removal denied",
				"post", id,
				"comment", commentID,
				"caller", caller)
		}
		return nil, err
	}

	commentOps.WithLabelValues("remove").Inc()
	s.log(ctx).Info("comment removed",
		"post", post.ID,
		"comment", commentID,
		"user", caller)

	return post, nil
}

// errUnchanged lets a mutate callback report that the snapshot needs no write
var errUnchanged = errors.New("post unchanged")

// mutate runs a read-modify-write on one post with optimistic concurrency.
// Each attempt re-reads the post, applies fn to the fresh snapshot and saves
// it only if the stored CID is still the one that was read. fn errors are final,
// except errUnchanged which returns the snapshot as read.
func (s *postService) mutate(ctx context.Context, id string, fn func(*Post) error) (*Post, error) {
	for attempt := 1; ; attempt++ {
		post, err := s.GetPost(ctx, id)
		if err != nil {
			return nil, err
		}

		expectedCID := post.CID
		if err := fn(post); err != nil {
			if errors.Is(err, errUnchanged) {
				return post, nil
			}
			return nil, err
		}

		err = s.save(ctx, post, expectedCID)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, ErrConcurrentModification) {
			if IsNotFound(err) {
				return nil, err
			}
			s.log(ctx).Error("failed to save post",
				"error", err,
				"post", id)
			return nil, fmt.Errorf("failed to save post: %w", err)
		}

		mutationConflicts.Inc()
		if attempt >= s.retries {
			s.log(ctx).Warn("giving up after concurrent modifications",
				"post", id,
				"attempts", attempt)
			return nil, ErrConcurrentModification
		}

		s.log(ctx).Debug("post changed during update, retrying",
			"post", id,
			"attempt", attempt)

		if err := sleepContext(ctx, retryDelay(attempt)); err != nil {
			return nil, err
		}
	}
}

// save dispatches the conditional write detached from the caller's
// cancellation, so a committed write is never abandoned halfway
func (s *postService) save(ctx context.Context, post *Post, expectedCID string) error {
	writeCtx, cancel := s.writeContext(ctx)
	defer cancel()
	return s.repo.SaveIfUnchanged(writeCtx, post, expectedCID)
}

func (s *postService) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
}

// retryDelay grows linearly with the attempt and adds jitter so competing
// writers spread out
func retryDelay(attempt int) time.Duration {
	base := time.Duration(attempt) * retryBaseDelay
	return base + time.Duration(rand.Int63n(int64(retryBaseDelay)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
