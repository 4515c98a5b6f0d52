package like

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// mockPostService implements posts.Service for testing
type mockPostService struct {
	toggleFunc func(ctx context.Context, id, caller string) (*posts.Post, error)
	removeFunc func(ctx context.Context, id, caller string) (*posts.Post, error)
}

func (m *mockPostService) CreatePost(ctx context.Context, owner string, in posts.ContentInput) (*posts.Post, error) {
	return nil, errors.New("not implemented")
}

func (m *mockPostService) ListPosts(ctx context.Context) ([]*posts.Post, error) {
	return nil, errors.New("not implemented")
}

func (m *mockPostService) GetPost(ctx context.Context, id string) (*posts.Post, error) {
	return nil, errors.New("not implemented")
}

func (m *mockPostService) DeletePost(ctx context.Context, id, caller string) error {
	return errors.New("not implemented")
}

func (m *mockPostService) ToggleLike(ctx context.Context, id, caller string) (*posts.Post, error) {
	return m.toggleFunc(ctx, id, caller)
}

func (m *mockPostService) RemoveLike(ctx context.Context, id, caller string) (*posts.Post, error) {
	return m.removeFunc(ctx, id, caller)
}

func (m *mockPostService) AddComment(ctx context.Context, id, caller string, in posts.ContentInput) (*posts.Post, error) {
	return nil, errors.New("not implemented")
}

func (m *mockPostService) RemoveComment(ctx context.Context, id, commentID, caller string) (*posts.Post, error) {
	return nil, errors.New("not implemented")
}

func toggleRequest(id, userID string) *http.Request {
	return likeRequest("/api/posts/"+id+"/like", id, userID)
}

func likeRequest(path, id, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = middleware.SetTestUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

func TestToggleHandler_Success(t *testing.T) {
	var gotID, gotCaller string
	service := &mockPostService{
		toggleFunc: func(ctx context.Context, id, caller string) (*posts.Post, error) {
			gotID, gotCaller = id, caller
			return &posts.Post{
				ID:       id,
				CID:      "bafkreiliked",
				Likes:    []posts.Like{{User: caller}},
				Comments: []posts.Comment{},
			}, nil
		},
	}
	handler := NewToggleHandler(service)

	w := httptest.NewRecorder()
	handler.HandleToggle(w, toggleRequest("p1", "user-1"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", gotID)
	assert.Equal(t, "user-1", gotCaller)
	assert.Equal(t, `"bafkreiliked"`, w.Header().Get("ETag"))

	var post posts.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, []posts.Like{{User: "user-1"}}, post.Likes)
}

func TestToggleHandler_Errors(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		userID     string
		wantError  string
		wantStatus int
	}{
		{
			name:       "unauthenticated",
			wantStatus: http.StatusUnauthorized,
			wantError:  "AuthRequired",
		},
		{
			name:       "missing post",
			userID:     "user-1",
			err:        posts.NewNotFoundError(posts.ResourcePost, "p1"),
			wantStatus: http.StatusNotFound,
			wantError:  "PostNotFound",
		},
		{
			name:       "contention",
			userID:     "user-1",
			err:        posts.ErrConcurrentModification,
			wantStatus: http.StatusConflict,
			wantError:  "ConcurrentModification",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockPostService{
				toggleFunc: func(ctx context.Context, id, caller string) (*posts.Post, error) {
					return nil, tt.err
				},
			}
			handler := NewToggleHandler(service)

			w := httptest.NewRecorder()
			handler.HandleToggle(w, toggleRequest("p1", tt.userID))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestRemoveHandler(t *testing.T) {
	t.Run("returns the post without the caller's like", func(t *testing.T) {
		var gotCaller string
		service := &mockPostService{
			removeFunc: func(ctx context.Context, id, caller string) (*posts.Post, error) {
				gotCaller = caller
				return &posts.Post{ID: id, CID: "bafkreiunliked", Likes: []posts.Like{}, Comments: []posts.Comment{}}, nil
			},
		}
		handler := NewRemoveHandler(service)

		w := httptest.NewRecorder()
		handler.HandleRemove(w, likeRequest("/api/posts/p1/unlike", "p1", "user-1"))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", gotCaller)
		assert.Equal(t, `"bafkreiunliked"`, w.Header().Get("ETag"))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		handler := NewRemoveHandler(&mockPostService{})

		w := httptest.NewRecorder()
		handler.HandleRemove(w, likeRequest("/api/posts/p1/unlike", "p1", ""))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing post", func(t *testing.T) {
		service := &mockPostService{
			removeFunc: func(ctx context.Context, id, caller string) (*posts.Post, error) {
				return nil, posts.NewNotFoundError(posts.ResourcePost, id)
			},
		}
		handler := NewRemoveHandler(service)

		w := httptest.NewRecorder()
		handler.HandleRemove(w, likeRequest("/api/posts/p1/unlike", "p1", "user-1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
