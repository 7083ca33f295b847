package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/crucial707/fintrack/internal/apperr"
	"github.com/crucial707/fintrack/internal/middleware"
	"github.com/crucial707/fintrack/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// decodeJSON decodes the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Wrap(apperr.InvalidInput, "invalid JSON", err)
	}
	return nil
}

// currentUser returns the user attached by the auth guard. Routes using it
// are always mounted behind Guard.Require.
func currentUser(r *http.Request) (*models.User, error) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		return nil, apperr.New(apperr.Unauthenticated, "Access denied. No token provided.")
	}
	return user, nil
}

// pathID returns the {id} URL parameter when it is a well-formed UUID.
func pathID(r *http.Request, kind string) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return "", apperr.New(apperr.InvalidInput, "invalid "+kind+" id")
	}
	return id.String(), nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
