package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers"
	"Postboard/internal/core/posts"
)

// GetHandler serves a single post
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /api/posts/{id}
// The response carries the post CID as ETag; an If-None-Match that matches it yields 304
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	etag := `"` + post.CID + `"`
	if handlers.NoneMatch(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	handlers.WritePost(w, http.StatusOK, post)
}
