package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// ToggleHandler handles like toggles
type ToggleHandler struct {
	service posts.Service
}

// NewToggleHandler creates a new like toggle handler
func NewToggleHandler(service posts.Service) *ToggleHandler {
	return &ToggleHandler{service: service}
}

// HandleToggle handles POST /api/posts/{id}/like
// Likes the post for the caller, or removes the caller's like if present.
// Responds with the updated post.
func (h *ToggleHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	post, err := h.service.ToggleLike(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WritePost(w, http.StatusOK, post)
}
