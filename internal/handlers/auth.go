package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/crucial707/fintrack/internal/apperr"
	"github.com/crucial707/fintrack/internal/auth"
	"github.com/crucial707/fintrack/internal/metrics"
	"github.com/crucial707/fintrack/internal/models"
	"github.com/crucial707/fintrack/internal/repo"
	"github.com/crucial707/fintrack/internal/response"
	"github.com/crucial707/fintrack/internal/validate"
)

const (
	msgEmailTaken    = "User with this email already exists"
	msgUsernameTaken = "Username already taken, please try a different name"
	msgBadLogin      = "Invalid credentials"
	msgNoSecret      = "Server configuration error"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *auth.Tokens
	Hasher auth.Hasher
}

type authResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UsernameFromFullName derives the stored username: lower-cased, with each run
// of whitespace replaced by one underscore.
func UsernameFromFullName(fullName string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(fullName)), "_")
}

// ==========================
// Signup
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err)
		return
	}
	if !h.Tokens.Configured() {
		metrics.IncAuth("signup", "error")
		response.Error(w, r, apperr.New(apperr.Internal, msgNoSecret))
		return
	}

	ctx := r.Context()
	email := validate.NormalizeEmail(input.Email)

	taken, err := h.Users.EmailExists(ctx, email)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if taken {
		metrics.IncAuth("signup", "conflict")
		response.Error(w, r, apperr.New(apperr.Conflict, msgEmailTaken))
		return
	}

	username := UsernameFromFullName(input.FullName)
	taken, err = h.Users.UsernameExists(ctx, username)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if taken {
		metrics.IncAuth("signup", "conflict")
		response.Error(w, r, apperr.New(apperr.Conflict, msgUsernameTaken))
		return
	}

	hash, err := h.Hasher.Hash(input.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := h.Users.Create(ctx, username, email, hash, strings.TrimSpace(input.FullName))
	if err != nil {
		// A concurrent signup can win the race between the existence checks and the insert.
		if dup := duplicateError(err); dup != nil {
			metrics.IncAuth("signup", "conflict")
			response.Error(w, r, dup)
			return
		}
		response.Error(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		response.Error(w, r, tokenError(err))
		return
	}

	metrics.IncAuth("signup", "ok")
	response.OK(w, http.StatusCreated, authResult{User: user, Token: token}, "User registered successfully")
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), validate.NormalizeEmail(input.Email))
	if errors.Is(err, repo.ErrNotFound) {
		metrics.IncAuth("login", "rejected")
		response.Error(w, r, apperr.New(apperr.Unauthenticated, msgBadLogin))
		return
	}
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if !user.IsActive {
		metrics.IncAuth("login", "rejected")
		response.Error(w, r, apperr.New(apperr.Unauthenticated, "Account is deactivated"))
		return
	}

	ok, err := h.Hasher.Compare(user.PasswordHash, input.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if !ok {
		metrics.IncAuth("login", "rejected")
		response.Error(w, r, apperr.New(apperr.Unauthenticated, msgBadLogin))
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		response.Error(w, r, tokenError(err))
		return
	}

	user.PasswordHash = ""
	metrics.IncAuth("login", "ok")
	response.OK(w, http.StatusOK, authResult{User: user, Token: token}, "Login successful")
}

// ==========================
// Me
// ==========================
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	user, err := h.Users.GetByID(r.Context(), current.ID)
	if errors.Is(err, repo.ErrNotFound) {
		response.Error(w, r, apperr.New(apperr.NotFound, "User not found"))
		return
	}
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, user, "")
}

// ==========================
// Update Profile
// ==========================
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var input struct {
		FullName     *string `json:"fullName"`
		MobileNumber *string `json:"mobileNumber"`
		Address      *string `json:"address"`
		Username     *string `json:"username"`
		Email        *string `json:"email"`
	}
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err)
		return
	}

	update := models.ProfileUpdate{
		FullName:     trimmedOrNil(input.FullName),
		MobileNumber: input.MobileNumber,
		Address:      input.Address,
		Username:     trimmedOrNil(input.Username),
	}
	if input.Email != nil {
		email := validate.NormalizeEmail(*input.Email)
		update.Email = &email
	}

	user, err := h.Users.UpdateProfile(r.Context(), current.ID, update)
	if errors.Is(err, repo.ErrNotFound) {
		response.Error(w, r, apperr.New(apperr.NotFound, "User not found"))
		return
	}
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			response.Error(w, r, dup)
			return
		}
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, user, "Profile updated successfully")
}

// ==========================
// Change Password
// ==========================
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err)
		return
	}

	ctx := r.Context()
	user, err := h.Users.GetWithPassword(ctx, current.ID)
	if errors.Is(err, repo.ErrNotFound) {
		response.Error(w, r, apperr.New(apperr.NotFound, "User not found"))
		return
	}
	if err != nil {
		response.Error(w, r, err)
		return
	}

	ok, err := h.Hasher.Compare(user.PasswordHash, input.CurrentPassword)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if !ok {
		metrics.IncAuth("change_password", "rejected")
		response.Error(w, r, apperr.New(apperr.InvalidInput, "Current password is incorrect"))
		return
	}

	hash, err := h.Hasher.Hash(input.NewPassword)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.Users.UpdatePassword(ctx, current.ID, hash); err != nil {
		response.Error(w, r, err)
		return
	}
	metrics.IncAuth("change_password", "ok")
	response.OK(w, http.StatusOK, nil, "Password changed successfully")
}

func duplicateError(err error) error {
	var dup *repo.DuplicateError
	if !errors.As(err, &dup) {
		return nil
	}
	if dup.Field == "email" {
		return apperr.Wrap(apperr.Conflict, msgEmailTaken, err)
	}
	return apperr.Wrap(apperr.Conflict, msgUsernameTaken, err)
}

func tokenError(err error) error {
	if errors.Is(err, auth.ErrNoSecret) {
		return apperr.Wrap(apperr.Internal, msgNoSecret, err)
	}
	return err
}
