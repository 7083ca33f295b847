package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/fintrack/internal/auth"
	"github.com/crucial707/fintrack/internal/repo"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{"id", "username", "email", "full_name", "is_active", "mobile_number", "address", "profile_image", "created_at", "updated_at"}

func newAuthHandler(t *testing.T, secret string) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &AuthHandler{
		Users:  repo.NewUserRepo(db),
		Tokens: auth.NewTokens(secret, time.Hour),
		Hasher: auth.Hasher{Cost: bcrypt.MinCost},
	}, mock
}

func TestUsernameFromFullName(t *testing.T) {
	tests := map[string]string{
		"Jane Doe":         "jane_doe",
		"  Ada   Lovelace ": "ada_lovelace",
		"Tab\tSeparated":   "tab_separated",
		"single":           "single",
	}
	for in, want := range tests {
		if got := UsernameFromFullName(in); got != want {
			t.Errorf("UsernameFromFullName(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	h, mock := newAuthHandler(t, "test-secret")
	now := time.Now()

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE email = \$1\)`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE username = \$1\)`).
		WithArgs("jane_doe").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users \(username, email, password_hash, full_name\)`).
		WithArgs("jane_doe", "jane@example.com", sqlmock.AnyArg(), "Jane Doe").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(ownerID, "jane_doe", "jane@example.com", "Jane Doe", true, nil, nil, nil, now, now))

	body := map[string]string{"fullName": "Jane Doe", "email": "Jane@Example.com", "password": "secret1"}
	rr := httptest.NewRecorder()
	h.Signup(rr, requestAs(nil, "POST", "/api/auth/signup", body, nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("Signup status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if !env.Success || env.Message != "User registered successfully" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	var data struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.User["username"] != "jane_doe" || data.User["email"] != "jane@example.com" {
		t.Errorf("unexpected user: %+v", data.User)
	}
	if _, ok := data.User["passwordHash"]; ok {
		t.Error("password hash serialized")
	}
	claims, err := h.Tokens.Parse(data.Token)
	if err != nil {
		t.Fatalf("Parse token: %v", err)
	}
	if claims.UserID != ownerID || claims.Username != "jane_doe" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	h, mock := newAuthHandler(t, "test-secret")
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE email = \$1\)`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	body := map[string]string{"fullName": "Jane Doe", "email": "jane@example.com", "password": "secret1"}
	rr := httptest.NewRecorder()
	h.Signup(rr, requestAs(nil, "POST", "/api/auth/signup", body, nil))

	expectFailure(t, rr, http.StatusBadRequest, "User with this email already exists")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Signup_DuplicateUsername(t *testing.T) {
	h, mock := newAuthHandler(t, "test-secret")
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE email = \$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE username = \$1\)`).
		WithArgs("jane_doe").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	body := map[string]string{"fullName": "Jane  Doe", "email": "other@example.com", "password": "secret1"}
	rr := httptest.NewRecorder()
	h.Signup(rr, requestAs(nil, "POST", "/api/auth/signup", body, nil))

	expectFailure(t, rr, http.StatusBadRequest, "Username already taken, please try a different name")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Signup_RaceOnInsert(t *testing.T) {
	h, mock := newAuthHandler(t, "test-secret")
	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	body := map[string]string{"fullName": "Jane Doe", "email": "jane@example.com", "password": "secret1"}
	rr := httptest.NewRecorder()
	h.Signup(rr, requestAs(nil, "POST", "/api/auth/signup", body, nil))

	expectFailure(t, rr, http.StatusBadRequest, "User with this email already exists")
}

func TestAuthHandler_Signup_NoSecret(t *testing.T) {
	h, mock := newAuthHandler(t, "")

	body := map[string]string{"fullName": "Jane Doe", "email": "jane@example.com", "password": "secret1"}
	rr := httptest.NewRecorder()
	h.Signup(rr, requestAs(nil, "POST", "/api/auth/signup", body, nil))

	expectFailure(t, rr, http.StatusInternalServerError, "Server configuration error")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query expected: %v", err)
	}
}

func loginRows(t *testing.T, h *AuthHandler, password string, active bool) *sqlmock.Rows {
	t.Helper()
	hash, err := h.Hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	now := time.Now()
	return sqlmock.NewRows(append(userCols, "password_hash")).
		AddRow(ownerID, "jane_doe", "jane@example.com", "Jane Doe", active, nil, nil, nil, now, now, hash)
}

func TestAuthHandler_Login(t *testing.T) {
	h, mock := newAuthHandler(t, "test-secret")
	mock.ExpectQuery(`SELECT .+, password_hash FROM users WHERE email = \$1`).
		WithArgs("jane@example.com").
		WillReturnRows(loginRows(t, h, "secret1", true))

	body := map[string]string{"email": "jane@example.com", "password": "secret1"}
	rr := httptest.NewRecorder()
	h.Login(rr, requestAs(nil, "POST", "/api/auth/login", body, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Login status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if env.Message != "Login successful" {
		t.Errorf("message: got %q", env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("token missing: %v %s", err, env.Data)
	}
}

func TestAuthHandler_Login_Rejections(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		h, mock := newAuthHandler(t, "test-secret")
		mock.ExpectQuery(`FROM users WHERE email = \$1`).WillReturnRows(loginRows(t, h, "secret1", true))

		rr := httptest.NewRecorder()
		h.Login(rr, requestAs(nil, "POST", "/api/auth/login", map[string]string{"email": "jane@example.com", "password": "nope"}, nil))
		expectFailure(t, rr, http.StatusUnauthorized, "Invalid credentials")
	})

	t.Run("unknown email", func(t *testing.T) {
		h, mock := newAuthHandler(t, "test-secret")
		mock.ExpectQuery(`FROM users WHERE email = \$1`).WillReturnRows(sqlmock.NewRows(append(userCols, "password_hash")))

		rr := httptest.NewRecorder()
		h.Login(rr, requestAs(nil, "POST", "/api/auth/login", map[string]string{"email": "ghost@example.com", "password": "secret1"}, nil))
		expectFailure(t, rr, http.StatusUnauthorized, "Invalid credentials")
	})

	t.Run("deactivated", func(t *testing.T) {
		h, mock := newAuthHandler(t, "test-secret")
		mock.ExpectQuery(`FROM users WHERE email = \$1`).WillReturnRows(loginRows(t, h, "secret1", false))

		rr := httptest.NewRecorder()
		h.Login(rr, requestAs(nil, "POST", "/api/auth/login", map[string]string{"email": "jane@example.com", "password": "secret1"}, nil))
		expectFailure(t, rr, http.StatusUnauthorized, "Account is deactivated")
	})
}

func TestAuthHandler_Me(t *testing.T) {
	h, mock := newAuthHandler(t, "test-secret")
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(ownerID, "jane_doe", "jane@example.com", "Jane Doe", true, nil, nil, nil, now, now))

	rr := httptest.NewRecorder()
	h.Me(rr, requestAs(owner, "GET", "/api/auth/me", nil, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Me status: got %d, want 200", rr.Code)
	}
	var user map[string]any
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user["id"] != ownerID {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthHandler_UpdateProfile_DuplicateUsername(t *testing.T) {
	h, mock := newAuthHandler(t, "test-secret")
	mock.ExpectQuery(`UPDATE users`).
		WithArgs(nil, nil, nil, "taken_name", nil, ownerID).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	rr := httptest.NewRecorder()
	h.UpdateProfile(rr, requestAs(owner, "PUT", "/api/auth/profile", map[string]string{"username": " taken_name "}, nil))

	expectFailure(t, rr, http.StatusBadRequest, "Username already taken, please try a different name")
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("wrong current password", func(t *testing.T) {
		h, mock := newAuthHandler(t, "test-secret")
		mock.ExpectQuery(`, password_hash FROM users WHERE id = \$1`).
			WithArgs(ownerID).
			WillReturnRows(loginRows(t, h, "secret1", true))

		body := map[string]string{"currentPassword": "wrong", "newPassword": "newsecret"}
		rr := httptest.NewRecorder()
		h.ChangePassword(rr, requestAs(owner, "PUT", "/api/auth/change-password", body, nil))

		expectFailure(t, rr, http.StatusBadRequest, "Current password is incorrect")
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		h, mock := newAuthHandler(t, "test-secret")
		mock.ExpectQuery(`, password_hash FROM users WHERE id = \$1`).
			WithArgs(ownerID).
			WillReturnRows(loginRows(t, h, "secret1", true))
		mock.ExpectExec(`UPDATE users SET password_hash = \$1`).
			WithArgs(sqlmock.AnyArg(), ownerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		body := map[string]string{"currentPassword": "secret1", "newPassword": "newsecret"}
		rr := httptest.NewRecorder()
		h.ChangePassword(rr, requestAs(owner, "PUT", "/api/auth/change-password", body, nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
	})
}
