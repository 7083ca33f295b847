package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/fintrack/internal/models"
	"github.com/lib/pq"
)

const expenseColumns = `id, user_id, amount, description, category, date, payment_method, tags, receipt, created_at, updated_at`

// ExpenseRepo persists expenses. Every read and write is scoped to the owning user.
type ExpenseRepo struct {
	DB *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepo {
	return &ExpenseRepo{DB: db}
}

func scanExpense(row rowScanner, e *models.Expense) error {
	return row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.Date,
		&e.PaymentMethod, pq.Array(&e.Tags), &e.Receipt, &e.CreatedAt, &e.UpdatedAt)
}

// ListByOwner returns the user's expenses, newest date first, ties broken by creation time.
func (r *ExpenseRepo) ListByOwner(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Create inserts e for e.UserID and returns the stored row.
func (r *ExpenseRepo) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	var out models.Expense
	err := scanExpense(r.DB.QueryRowContext(ctx,
		`INSERT INTO expenses (user_id, amount, description, category, date, payment_method, tags, receipt)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+expenseColumns,
		e.UserID, e.Amount, e.Description, e.Category, e.Date, e.PaymentMethod, pq.Array(tags), e.Receipt,
	), &out)
	return out, translate(err)
}

// DeleteOwned removes the expense only if it belongs to userID and returns the deleted row.
func (r *ExpenseRepo) DeleteOwned(ctx context.Context, id, userID string) (models.Expense, error) {
	var out models.Expense
	err := scanExpense(r.DB.QueryRowContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2 RETURNING `+expenseColumns,
		id, userID,
	), &out)
	return out, translate(err)
}

// Total sums the user's expense amounts; zero when there are none.
func (r *ExpenseRepo) Total(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`, userID,
	).Scan(&total)
	return total, err
}

// Recent returns the user's latest expenses projected for the dashboard.
func (r *ExpenseRepo) Recent(ctx context.Context, userID string, limit int) ([]models.EntrySummary, error) {
	return recentEntries(ctx, r.DB,
		`SELECT amount, description, category, date FROM expenses
		 WHERE user_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2`,
		userID, limit)
}

func recentEntries(ctx context.Context, db *sql.DB, query, userID string, limit int) ([]models.EntrySummary, error) {
	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.EntrySummary{}
	for rows.Next() {
		var e models.EntrySummary
		if err := rows.Scan(&e.Amount, &e.Description, &e.Category, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
