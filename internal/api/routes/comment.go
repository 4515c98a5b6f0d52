package routes

import (
	"github.com/go-chi/chi/v5"

	"Postboard/internal/api/handlers/comments"
	"Postboard/internal/api/middleware"
	"Postboard/internal/core/posts"
)

// RegisterCommentRoutes registers comment endpoints on the router
func RegisterCommentRoutes(r chi.Router, service posts.Service, authMiddleware middleware.AuthMiddleware) {
	createHandler := comments.NewCreateCommentHandler(service)
	deleteHandler := comments.NewDeleteCommentHandler(service)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/api/posts/{id}/comments", createHandler.HandleCreateComment)

		// Comment author or post owner
		r.Delete("/api/posts/{id}/comments/{commentId}", deleteHandler.HandleDeleteComment)
	})
}
