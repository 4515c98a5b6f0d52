package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// RemoveHandler handles explicit unlikes
type RemoveHandler struct {
	service posts.Service
}

// NewRemoveHandler creates a new unlike handler
func NewRemoveHandler(service posts.Service) *RemoveHandler {
	return &RemoveHandler{service: service}
}

// HandleRemove handles POST /api/posts/{id}/unlike
// Removes the caller's like if present and responds with the post either way.
func (h *RemoveHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	post, err := h.service.RemoveLike(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WritePost(w, http.StatusOK, post)
}
