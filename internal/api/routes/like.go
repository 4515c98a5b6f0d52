package routes

import (
	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers/like"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// RegisterLikeRoutes registers the like endpoints
// /like toggles; /unlike only ever removes and succeeds when there is nothing to remove
func RegisterLikeRoutes(r chi.Router, service posts.Service, authMiddleware middleware.AuthMiddleware) {
	toggleHandler := like.NewToggleHandler(service)
	removeHandler := like.NewRemoveHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/like", toggleHandler.HandleToggle)
	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/unlike", removeHandler.HandleRemove)
}
