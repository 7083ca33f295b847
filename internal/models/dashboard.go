package models

import "time"

// EntrySummary is the projection of an income or expense shown on the dashboard.
type EntrySummary struct {
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

type Dashboard struct {
	TotalIncome    float64        `json:"totalIncome"`
	TotalExpense   float64        `json:"totalExpense"`
	RecentIncome   []EntrySummary `json:"recentIncome"`
	RecentExpenses []EntrySummary `json:"recentExpenses"`
}
