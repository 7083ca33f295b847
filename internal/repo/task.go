package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/fintrack/internal/models"
)

const taskColumns = `id, user_id, title, amount, category, date, notes, image_url, created_at, updated_at`

// ========================
// REPOSITORY STRUCT
// ========================

type TaskRepo struct {
	DB *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

func scanTask(row rowScanner, t *models.Task) error {
	return row.Scan(&t.ID, &t.UserID, &t.Title, &t.Amount, &t.Category, &t.Date,
		&t.Notes, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt)
}

// ========================
// LIST TASKS BY OWNER
// ========================

func (r *TaskRepo) ListByOwner(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ========================
// GET OWNED TASK
// ========================

func (r *TaskRepo) GetOwned(ctx context.Context, id, userID string) (models.Task, error) {
	var t models.Task
	err := scanTask(r.DB.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	), &t)
	return t, translate(err)
}

// ========================
// CREATE TASK
// ========================

// Create inserts a task. Absent category and date fall back to the column defaults.
func (r *TaskRepo) Create(ctx context.Context, userID string, in models.TaskInput) (models.Task, error) {
	var t models.Task
	err := scanTask(r.DB.QueryRowContext(ctx,
		`INSERT INTO tasks (user_id, title, amount, category, date, notes, image_url)
		 VALUES ($1, $2, $3, COALESCE($4, 'other'), COALESCE($5, now()), $6, $7)
		 RETURNING `+taskColumns,
		userID, in.Title, in.Amount, in.Category, in.Date, in.Notes, in.ImageURL,
	), &t)
	return t, translate(err)
}

// ========================
// UPDATE OWNED TASK
// ========================

// UpdateOwned replaces title and amount and any optional field that is set.
func (r *TaskRepo) UpdateOwned(ctx context.Context, id, userID string, in models.TaskInput) (models.Task, error) {
	var t models.Task
	err := scanTask(r.DB.QueryRowContext(ctx,
		`UPDATE tasks
		 SET title = $1, amount = $2,
		     category = COALESCE($3, category),
		     date = COALESCE($4, date),
		     notes = COALESCE($5, notes),
		     image_url = COALESCE($6, image_url),
		     updated_at = now()
		 WHERE id = $7 AND user_id = $8
		 RETURNING `+taskColumns,
		in.Title, in.Amount, in.Category, in.Date, in.Notes, in.ImageURL, id, userID,
	), &t)
	return t, translate(err)
}

// ========================
// DELETE OWNED TASK
// ========================

func (r *TaskRepo) DeleteOwned(ctx context.Context, id, userID string) (models.Task, error) {
	var t models.Task
	err := scanTask(r.DB.QueryRowContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2 RETURNING `+taskColumns,
		id, userID,
	), &t)
	return t, translate(err)
}
