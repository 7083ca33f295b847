package models

import "time"

// ExpenseCategories is the closed set of expense categories.
var ExpenseCategories = []string{"Food", "Transport", "Entertainment", "Shopping", "Bills", "Healthcare", "Education", "Other"}

// PaymentMethods is the closed set of expense payment methods.
var PaymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Bank Transfer", "Digital Wallet", "Other"}

const DefaultPaymentMethod = "Cash"

type Expense struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	Tags          []string  `json:"tags"`
	Receipt       *string   `json:"receipt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
