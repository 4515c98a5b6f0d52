package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// CreateCommentHandler handles comment creation
type CreateCommentHandler struct {
	service posts.Service
}

// NewCreateCommentHandler creates a new create comment handler
func NewCreateCommentHandler(service posts.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// HandleCreateComment handles POST /api/posts/{id}/comments
// Request body: { "text": "...", "name": "...", "avatar": "https://..." }
// Responds 201 with the updated post; the new comment is first in its comments.
func (h *CreateCommentHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	in, ok := handlers.DecodeContent(w, r)
	if !ok {
		return
	}

	post, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), userID, in)
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WritePost(w, http.StatusCreated, post)
}
