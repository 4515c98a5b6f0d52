package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// DeleteCommentHandler handles comment removal
type DeleteCommentHandler struct {
	service posts.Service
}

// NewDeleteCommentHandler creates a new delete comment handler
func NewDeleteCommentHandler(service posts.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{service: service}
}

// HandleDeleteComment handles DELETE /api/posts/{id}/comments/{commentId}
func (h *DeleteCommentHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	post, err := h.service.RemoveComment(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "commentId"), userID)
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WritePost(w, http.StatusOK, post)
}
