package post

import (
	"net/http"

	"Postboard/internal/api/handlers"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/posts
// Request body: { "text": "...", "name": "...", "avatar": "https://..." }
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	in, ok := handlers.DecodeContent(w, r)
	if !ok {
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, in)
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WritePost(w, http.StatusCreated, post)
}
