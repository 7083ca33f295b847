package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/crucial707/fintrack/internal/apperr"
	"github.com/crucial707/fintrack/internal/metrics"
	"github.com/crucial707/fintrack/internal/models"
	"github.com/crucial707/fintrack/internal/repo"
	"github.com/crucial707/fintrack/internal/response"
	"github.com/crucial707/fintrack/internal/validate"
)

// ==========================
// Task Handler
// ==========================
type TaskHandler struct {
	Repo *repo.TaskRepo
}

var errTaskNotFound = apperr.New(apperr.NotFound, "Task not found")

// decodeTask reads a task body that already passed the task rule set.
func decodeTask(r *http.Request) (models.TaskInput, error) {
	var input struct {
		Title    string  `json:"title"`
		Amount   any     `json:"amount"`
		Category *string `json:"category"`
		Date     *string `json:"date"`
		Notes    *string `json:"notes"`
		ImageURL *string `json:"imageUrl"`
	}
	if err := decodeJSON(r, &input); err != nil {
		return models.TaskInput{}, err
	}

	amount, err := positiveAmount(input.Amount)
	if err != nil {
		return models.TaskInput{}, err
	}
	out := models.TaskInput{
		Title:    strings.TrimSpace(input.Title),
		Amount:   amount,
		Category: trimmedOrNil(input.Category),
		Notes:    input.Notes,
		ImageURL: trimmedOrNil(input.ImageURL),
	}
	if out.Title == "" {
		return models.TaskInput{}, apperr.New(apperr.InvalidInput, "Title must be between 1 and 100 characters")
	}
	if out.Category != nil && !slices.Contains(models.TaskCategories, *out.Category) {
		return models.TaskInput{}, apperr.New(apperr.InvalidInput, "Invalid category")
	}
	if d := trimmedOrNil(input.Date); d != nil {
		when, err := validate.ParseDate(*d)
		if err != nil {
			return models.TaskInput{}, apperr.New(apperr.InvalidInput, "Date must be a valid ISO date")
		}
		out.Date = &when
	}
	return out, nil
}

// ==========================
// List Tasks
// ==========================
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	tasks, err := h.Repo.ListByOwner(r.Context(), user.ID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, tasks, "")
}

// ==========================
// Get Task
// ==========================
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	id, err := pathID(r, "task")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	task, err := h.Repo.GetOwned(r.Context(), id, user.ID)
	if errors.Is(err, repo.ErrNotFound) {
		response.Error(w, r, errTaskNotFound)
		return
	}
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, task, "")
}

// ==========================
// Create Task
// ==========================
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	input, err := decodeTask(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	task, err := h.Repo.Create(r.Context(), user.ID, input)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	metrics.IncEntry("task", "create")
	response.OK(w, http.StatusCreated, task, "Task created successfully")
}

// ==========================
// Update Task
// ==========================
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	id, err := pathID(r, "task")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	input, err := decodeTask(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	task, err := h.Repo.UpdateOwned(r.Context(), id, user.ID, input)
	if errors.Is(err, repo.ErrNotFound) {
		response.Error(w, r, errTaskNotFound)
		return
	}
	if err != nil {
		response.Error(w, r, err)
		return
	}
	metrics.IncEntry("task", "update")
	response.OK(w, http.StatusOK, task, "Task updated successfully")
}

// ==========================
// Delete Task
// ==========================
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	id, err := pathID(r, "task")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	_, err = h.Repo.DeleteOwned(r.Context(), id, user.ID)
	if errors.Is(err, repo.ErrNotFound) {
		response.Error(w, r, errTaskNotFound)
		return
	}
	if err != nil {
		response.Error(w, r, err)
		return
	}
	metrics.IncEntry("task", "delete")
	response.OK(w, http.StatusOK, nil, "Task deleted successfully")
}
