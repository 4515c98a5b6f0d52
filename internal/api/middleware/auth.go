package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Context keys for storing user information
type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	JWTClaimsKey contextKey = "jwt_claims"
)

// clockSkew is tolerated on exp/nbf/iat checks
const clockSkew = 30 * time.Second

// AuthMiddleware is what route registration needs from an authenticator
type AuthMiddleware interface {
	RequireAuth(next http.Handler) http.Handler
}

// JWTAuthMiddleware enforces Bearer token authentication for protected routes.
// Tokens are HS256 JWTs issued by the external identity provider; the subject
// claim is the caller identity.
type JWTAuthMiddleware struct {
	logger *slog.Logger
	issuer string
	secret []byte
}

// NewJWTAuthMiddleware creates a new JWT auth middleware.
// issuer is optional; when set, tokens must carry a matching iss claim.
func NewJWTAuthMiddleware(secret []byte, issuer string, logger *slog.Logger) *JWTAuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &JWTAuthMiddleware{
		secret: secret,
		issuer: issuer,
		logger: logger,
	}
}

// RequireAuth middleware ensures the user is authenticated with a valid JWT
// If not authenticated, returns 401
// If authenticated, injects user id and JWT claims into context
func (m *JWTAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := m.verify(token)
		if err != nil {
			m.logger.Warn("authentication failed",
				"type", "verification_failed",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		userID := claims.Subject()
		if userID == "" {
			writeAuthError(w, "Missing user id in token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, JWTClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *JWTAuthMiddleware) verify(token string) (jwt.Token, error) {
	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256, m.secret),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(clockSkew),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	return jwt.Parse([]byte(token), opts...)
}

// GetUserID extracts the caller identity from the request context
// Returns empty string if not authenticated
func GetUserID(r *http.Request) string {
	id, _ := r.Context().Value(UserIDKey).(string)
	return id
}

// GetJWTClaims extracts the verified token from the request context
// Returns nil if not authenticated
func GetJWTClaims(r *http.Request) jwt.Token {
	claims, _ := r.Context().Value(JWTClaimsKey).(jwt.Token)
	return claims
}

// SetTestUserID sets the caller identity in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthRequired",
		"message": message,
	}); err != nil {
		slog.Error("failed to write auth error response", "error", err)
	}
}
