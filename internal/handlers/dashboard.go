package handlers

import (
	"net/http"

	"github.com/crucial707/fintrack/internal/models"
	"github.com/crucial707/fintrack/internal/repo"
	"github.com/crucial707/fintrack/internal/response"
	"golang.org/x/sync/errgroup"
)

// RecentLimit is how many recent incomes and expenses the dashboard returns.
const RecentLimit = 5

// ==========================
// Dashboard Handler
// ==========================
type DashboardHandler struct {
	Incomes  *repo.IncomeRepo
	Expenses *repo.ExpenseRepo
}

// Get returns the caller's income and expense totals and their most recent entries.
// The four queries run concurrently; any failure fails the request.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var out models.Dashboard
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		out.TotalIncome, err = h.Incomes.Total(ctx, user.ID)
		return err
	})
	g.Go(func() (err error) {
		out.TotalExpense, err = h.Expenses.Total(ctx, user.ID)
		return err
	})
	g.Go(func() (err error) {
		out.RecentIncome, err = h.Incomes.Recent(ctx, user.ID, RecentLimit)
		return err
	})
	g.Go(func() (err error) {
		out.RecentExpenses, err = h.Expenses.Recent(ctx, user.ID, RecentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, http.StatusOK, out, "")
}
