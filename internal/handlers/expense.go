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
// Expense Handler
// ==========================
type ExpenseHandler struct {
	Repo *repo.ExpenseRepo
}

// ==========================
// List Expenses
// ==========================
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	expenses, err := h.Repo.ListByOwner(r.Context(), user.ID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, expenses, "")
}

// ==========================
// Create Expense
// ==========================
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var input struct {
		entryInput
		PaymentMethod string  `json:"paymentMethod"`
		Receipt       *string `json:"receipt"`
	}
	if err := decodeJSON(r, &input); err != nil {
		response.Error(w, r, err)
		return
	}

	fields, err := input.check(models.ExpenseCategories)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	method := orDefault(input.PaymentMethod, models.DefaultPaymentMethod)
	if !slices.Contains(models.PaymentMethods, method) {
		response.Error(w, r, apperr.New(apperr.InvalidInput, "Invalid payment method"))
		return
	}

	expense, err := h.Repo.Create(r.Context(), models.Expense{
		UserID:        user.ID,
		Amount:        fields.Amount,
		Description:   fields.Description,
		Category:      fields.Category,
		Date:          fields.Date,
		PaymentMethod: method,
		Tags:          fields.Tags,
		Receipt:       trimmedOrNil(input.Receipt),
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}
	metrics.IncEntry("expense", "create")
	response.OK(w, http.StatusCreated, expense, "Expense added successfully")
}

// ==========================
// Delete Expense
// ==========================
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	id, err := pathID(r, "expense")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	_, err = h.Repo.DeleteOwned(r.Context(), id, user.ID)
	if errors.Is(err, repo.ErrNotFound) {
		response.Error(w, r, apperr.New(apperr.NotFound, "Expense not found"))
		return
	}
	if err != nil {
		response.Error(w, r, err)
		return
	}

	metrics.IncEntry("expense", "delete")
	response.OK(w, http.StatusOK, nil, "Expense deleted successfully")
}
