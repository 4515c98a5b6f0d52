package routes

import (
	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers/post"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// RegisterPostRoutes registers the post feed endpoints on the router
// Reads are public; create and delete require authentication
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.Get("/api/posts/test", post.HandlePing)
	r.Get("/api/posts", listHandler.HandleList)
	r.Get("/api/posts/{id}", getHandler.HandleGet)

	r.With(authMiddleware.RequireAuth).Post("/api/posts", createHandler.HandleCreate)

	// Only the post owner may delete
	r.With(authMiddleware.RequireAuth).Delete("/api/posts/{id}", deleteHandler.HandleDelete)
}
