package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/fintrack/internal/models"
	"github.com/lib/pq"
)

const incomeColumns = `id, user_id, amount, description, category, date, source, frequency, tags, created_at, updated_at`

// IncomeRepo persists incomes. Every read and write is scoped to the owning user.
type IncomeRepo struct {
	DB *sql.DB
}

func NewIncomeRepo(db *sql.DB) *IncomeRepo {
	return &IncomeRepo{DB: db}
}

func scanIncome(row rowScanner, in *models.Income) error {
	return row.Scan(&in.ID, &in.UserID, &in.Amount, &in.Description, &in.Category, &in.Date,
		&in.Source, &in.Frequency, pq.Array(&in.Tags), &in.CreatedAt, &in.UpdatedAt)
}

func (r *IncomeRepo) ListByOwner(ctx context.Context, userID string) ([]models.Income, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+incomeColumns+` FROM incomes WHERE user_id = $1 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var in models.Income
		if err := scanIncome(rows, &in); err != nil {
			return nil, err
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

func (r *IncomeRepo) Create(ctx context.Context, in models.Income) (models.Income, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	var out models.Income
	err := scanIncome(r.DB.QueryRowContext(ctx,
		`INSERT INTO incomes (user_id, amount, description, category, date, source, frequency, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+incomeColumns,
		in.UserID, in.Amount, in.Description, in.Category, in.Date, in.Source, in.Frequency, pq.Array(tags),
	), &out)
	return out, translate(err)
}

func (r *IncomeRepo) DeleteOwned(ctx context.Context, id, userID string) (models.Income, error) {
	var out models.Income
	err := scanIncome(r.DB.QueryRowContext(ctx,
		`DELETE FROM incomes WHERE id = $1 AND user_id = $2 RETURNING `+incomeColumns,
		id, userID,
	), &out)
	return out, translate(err)
}

func (r *IncomeRepo) Total(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE user_id = $1`, userID,
	).Scan(&total)
	return total, err
}

func (r *IncomeRepo) Recent(ctx context.Context, userID string, limit int) ([]models.EntrySummary, error) {
	return recentEntries(ctx, r.DB,
		`SELECT amount, description, category, date FROM incomes
		 WHERE user_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2`,
		userID, limit)
}
