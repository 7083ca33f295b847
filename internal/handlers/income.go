package handlers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/crucial707/fintrack/internal/apperr"
	"github.com/crucial707/fintrack/internal/metrics"
	"github.com/crucial707/fintrack/internal/models"
	"github.com/crucial707/fintrack/internal/repo"
	"github.com/crucial707/fintrack/internal/response"
)

// ==========================
// Income Handler
// ==========================
type IncomeHandler struct {
	Repo *repo.IncomeRepo
}

// ==========================
// List Incomes
// ==========================
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	incomes, err := h.Repo.ListByOwner(r.Context(), user.ID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, incomes, "")
}

// ==========================
// Create Income
// ==========================
func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var input struct {
		entryInput
		Source    string `json:"source"`
		Frequency string `json:"frequency"`
	}
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err)
		return
	}

	fields, err := input.check(models.IncomeCategories)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	frequency := orDefault(input.Frequency, models.DefaultIncomeFrequency)
	if !slices.Contains(models.IncomeFrequencies, frequency) {
		response.Error(w, r, apperr.New(apperr.InvalidInput, "Invalid frequency"))
		return
	}

	income, err := h.Repo.Create(r.Context(), models.Income{
		UserID:      user.ID,
		Amount:      fields.Amount,
		Description: fields.Description,
		Category:    fields.Category,
		Date:        fields.Date,
		Source:      orDefault(input.Source, models.DefaultIncomeSource),
		Frequency:   frequency,
		Tags:        fields.Tags,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	metrics.IncEntry("income", "create")
	response.OK(w, http.StatusCreated, income, "Income added successfully")
}

// ==========================
// Delete Income
// ==========================
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	id, err := pathID(r, "income")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if _, err := h.Repo.DeleteOwned(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			err = apperr.New(apperr.NotFound, "Income not found")
		}
		response.Error(w, r, err)
		return
	}
	metrics.IncEntry("income", "delete")
	response.OK(w, http.StatusOK, nil, "Income deleted successfully")
}
