package models

import "time"

// TaskCategories is the closed set of task categories.
var TaskCategories = []string{"food", "transport", "entertainment", "shopping", "bills", "other"}

const DefaultTaskCategory = "other"

type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskInput is the writable part of a Task. On update, nil optional fields keep their stored value.
type TaskInput struct {
	Title    string
	Amount   float64
	Category *string
	Date     *time.Time
	Notes    *string
	ImageURL *string
}
