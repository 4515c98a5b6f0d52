package post

import (
	"net/http"

	"Postboard/internal/api/handlers"
	"Postboard/internal/core/posts"
)

// ListHandler serves the post feed
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /api/posts
// Returns every post, newest first; an empty feed is []
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPosts(r.Context())
	if err != nil {
		handlers.WriteServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandlePing handles GET /api/posts/test
func HandlePing(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]string{"msg": "posts works!"})
}
