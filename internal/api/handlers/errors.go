package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Postboard/internal/core/posts"
)

// MaxContentBodyBytes caps post and comment request bodies
const MaxContentBodyBytes = 64 * 1024

type errorResponse struct {
	Fields  map[string]string `json:"fields,omitempty"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	writeErrorResponse(w, statusCode, errorResponse{Error: errorType, Message: message})
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WritePost writes a single post and exposes its CID as the ETag
func WritePost(w http.ResponseWriter, statusCode int, post *posts.Post) {
	if post.CID != "" {
		w.Header().Set("ETag", `"`+post.CID+`"`)
	}
	WriteJSON(w, statusCode, post)
}

// WriteServiceError maps post service errors to HTTP responses
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case posts.IsValidationError(err):
		writeErrorResponse(w, http.StatusBadRequest, errorResponse{
			Error:   "ValidationFailed",
			Message: err.Error(),
			Fields:  posts.ValidationFields(err),
		})

	case posts.NotFoundResource(err) == posts.ResourceComment:
		WriteError(w, http.StatusNotFound, "CommentNotFound", "Comment not found")

	case posts.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	case errors.Is(err, posts.ErrNotAuthorized):
		WriteError(w, http.StatusForbidden, "NotAuthorized", "You are not authorized to perform this action")

	case errors.Is(err, posts.ErrAuthRequired):
		WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")

	case errors.Is(err, posts.ErrConcurrentModification):
		WriteError(w, http.StatusConflict, "ConcurrentModification",
			"The post was modified concurrently. Please retry.")

	default:
		// Don't leak internal error details to clients
		slog.ErrorContext(r.Context(), "unexpected error in posts handler",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}

// DecodeContent reads a post or comment payload from the request body.
// It writes the error response itself and returns false when the body is unusable.
func DecodeContent(w http.ResponseWriter, r *http.Request) (posts.ContentInput, bool) {
	var in posts.ContentInput

	r.Body = http.MaxBytesReader(w, r.Body, MaxContentBodyBytes)

	dec := json.NewDecoder(r.Body)
	// Identity fields such as owner or user come from the token, never the body
	dec.DisallowUnknownFields()

	if err := dec.Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large")
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			WriteError(w, http.StatusBadRequest, "InvalidRequest", "Unknown field in request body: "+
				strings.TrimPrefix(err.Error(), "json: unknown field "))
		default:
			WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		}
		return in, false
	}

	return in, true
}
