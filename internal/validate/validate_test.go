package validate

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/fintrack/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs []response.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestCheck_Registration(t *testing.T) {
	v := New()

	body := map[string]any{"fullName": "  Jane Doe ", "email": " Jane@X.com ", "password": "secret1"}
	errs := v.Check(Registration, body)
	assert.Empty(t, errs)
	assert.Equal(t, "Jane Doe", body["fullName"])
	assert.Equal(t, "jane@x.com", body["email"])
}

func TestCheck_CollectsAllFailuresInOrder(t *testing.T) {
	v := New()

	body := map[string]any{"fullName": " ab ", "email": "not-an-email", "password": "123"}
	errs := v.Check(Registration, body)
	require.Len(t, errs, 3)
	assert.Equal(t, []string{"fullName", "email", "password"}, fields(errs))
	assert.Equal(t, "ab", errs[0].Value)
	assert.Equal(t, "Please provide a valid email address", errs[1].Message)
	// emails are only normalized when every rule passes
	assert.Equal(t, "not-an-email", body["email"])
}

func TestCheck_Task(t *testing.T) {
	v := New()

	cases := []struct {
		name   string
		body   map[string]any
		failed []string
	}{
		{"minimal", map[string]any{"title": "Lunch", "amount": json.Number("12.5")}, nil},
		{"numeric string amount", map[string]any{"title": "Lunch", "amount": "3"}, nil},
		{"all optional", map[string]any{"title": "Lunch", "amount": 1.0, "category": "food", "date": "2024-01-01", "notes": "ok"}, nil},
		{"null optionals", map[string]any{"title": "Lunch", "amount": 1.0, "category": nil, "date": nil}, nil},
		{"blank title", map[string]any{"title": "   ", "amount": 1.0}, []string{"title"}},
		{"negative amount", map[string]any{"title": "Lunch", "amount": -1.0}, []string{"amount"}},
		{"non-numeric amount", map[string]any{"title": "Lunch", "amount": "abc"}, []string{"amount"}},
		{"missing amount", map[string]any{"title": "Lunch"}, []string{"amount"}},
		{"bad category", map[string]any{"title": "Lunch", "amount": 1.0, "category": "Food"}, []string{"category"}},
		{"bad date", map[string]any{"title": "Lunch", "amount": 1.0, "date": "01/02/2024"}, []string{"date"}},
		{"long notes", map[string]any{"title": "Lunch", "amount": 1.0, "notes": string(bytes.Repeat([]byte("x"), 501))}, []string{"notes"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := v.Check(Task, tc.body)
			if tc.failed == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tc.failed, fields(errs))
		})
	}
}

func TestCheck_ProfileUpdateUsername(t *testing.T) {
	v := New()

	errs := v.Check(ProfileUpdate, map[string]any{"username": "a!"})
	assert.Equal(t, []string{"username", "username"}, fields(errs))

	errs = v.Check(ProfileUpdate, map[string]any{"username": "jane_doe"})
	assert.Empty(t, errs)

	errs = v.Check(ProfileUpdate, map[string]any{"fullName": "Only the name"})
	assert.Empty(t, errs)
}

func TestMiddleware_ShortCircuits(t *testing.T) {
	called := false
	h := New().Middleware(Login)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader([]byte(`{"email":"bad"}`)))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var out response.Envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Equal(t, "Validation failed", out.Message)
	assert.Equal(t, []string{"email", "password"}, fields(out.Errors))
}

func TestMiddleware_PassesNormalizedBody(t *testing.T) {
	var got map[string]any
	h := New().Middleware(Login)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
	}))

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader([]byte(`{"email":"Jane@X.com","password":"secret1"}`)))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "jane@x.com", got["email"])
	assert.Equal(t, "secret1", got["password"])
}

func TestMiddleware_BadJSON(t *testing.T) {
	h := New().Middleware(Task)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/tasks", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNumber(t *testing.T) {
	for _, in := range []any{12.5, json.Number("12.5"), " 12.5 "} {
		n, ok := Number(in)
		assert.True(t, ok, "%#v", in)
		assert.Equal(t, 12.5, n)
	}
	for _, in := range []any{nil, true, "NaN", "Inf", "twelve", map[string]any{}} {
		_, ok := Number(in)
		assert.False(t, ok, "%#v", in)
	}
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-01-01", "2024-01-01T10:30:00Z", "2024-01-01T10:30:00.123+02:00", "2024-01-01T10:30"} {
		_, err := ParseDate(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseDate("yesterday")
	assert.Error(t, err)
}
