package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/fintrack/internal/apperr"
	"github.com/crucial707/fintrack/internal/auth"
	"github.com/crucial707/fintrack/internal/models"
	"github.com/crucial707/fintrack/internal/repo"
	"github.com/crucial707/fintrack/internal/response"
	"github.com/google/uuid"
)

type key string

const userKey key = "user"

// UserLookup loads a user without its password hash.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TokenVerifier verifies a bearer token and returns its claims.
type TokenVerifier interface {
	Parse(token string) (*auth.Claims, error)
}

// Guard authenticates requests from their bearer token. The user is reloaded
// on every request so deactivation or deletion applies immediately.
type Guard struct {
	Users  UserLookup
	Tokens TokenVerifier
}

// Require rejects the request with 401 unless it carries a valid token for an active user.
func (g *Guard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.authenticate(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional attaches the user when the request is authenticated and otherwise
// continues without identity.
func (g *Guard) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := g.authenticate(r); err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Guard) authenticate(r *http.Request) (*models.User, error) {
	token, ok := bearerToken(r)
	if !ok {
		return nil, apperr.New(apperr.Unauthenticated, "Access denied. No token provided.")
	}

	claims, err := g.Tokens.Parse(token)
	if errors.Is(err, auth.ErrNoSecret) {
		return nil, apperr.Wrap(apperr.Internal, "Server configuration error", err)
	}
	if err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid token.")
	}
	// ids are UUID columns; a foreign id shape must not reach the store.
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid token.")
	}

	user, err := g.Users.GetByID(r.Context(), claims.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.New(apperr.Unauthenticated, "Token is valid but user no longer exists.")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Unauthenticated, "User account is deactivated.")
	}
	return user, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return token, token != ""
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated user attached by Guard.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}
