package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /api/posts/{id}
// Only the post owner may delete; everyone else gets 403 and the post is untouched
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
