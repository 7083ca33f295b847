package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/fintrack/internal/middleware"
	"github.com/crucial707/fintrack/internal/models"
	"github.com/go-chi/chi/v5"
)

const (
	ownerID   = "0b9f6d1e-6a3c-4c55-9f41-3c2e8e7b1a10"
	otherID   = "7c1d2e3f-4a5b-4c6d-8e7f-9a0b1c2d3e4f"
	entryID   = "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c"
	malformed = "not-a-uuid"
)

var owner = &models.User{ID: ownerID, Username: "jane_doe", Email: "jane@example.com", FullName: "Jane Doe", IsActive: true}

// requestAs returns a request carrying user in its context, with chi URL params set.
func requestAs(user *models.User, method, path string, body any, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		r = httptest.NewRequest(method, path, bytes.NewReader(b))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if user != nil {
		ctx = middleware.WithUser(ctx, user)
	}
	return r.WithContext(ctx)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func expectFailure(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Errorf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if env.Success {
		t.Errorf("success: got true, want false")
	}
	if env.Message != message {
		t.Errorf("message: got %q, want %q", env.Message, message)
	}
}
