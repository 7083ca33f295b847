package models

import "time"

// IncomeCategories is the closed set of income categories.
var IncomeCategories = []string{"Salary", "Freelance", "Business", "Investment", "Gift", "Other"}

// IncomeFrequencies is the closed set of income recurrence values.
var IncomeFrequencies = []string{"One-time", "Weekly", "Bi-weekly", "Monthly", "Quarterly", "Yearly"}

const (
	DefaultIncomeSource    = "Unknown"
	DefaultIncomeFrequency = "One-time"
)

type Income struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source"`
	Frequency   string    `json:"frequency"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
