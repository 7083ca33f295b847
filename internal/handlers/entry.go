package handlers

import (
	"slices"
	"strings"
	"time"

	"github.com/crucial707/fintrack/internal/apperr"
	"github.com/crucial707/fintrack/internal/validate"
)

// entryInput is the body shared by expense and income creation.
type entryInput struct {
	Amount      any      `json:"amount"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
}

// entryFields are the checked, typed values of an entryInput.
type entryFields struct {
	Amount      float64
	Description string
	Category    string
	Date        time.Time
	Tags        []string
}

// check validates the common fields. categories is the closed set for the entry kind.
func (in entryInput) check(categories []string) (entryFields, error) {
	description := strings.TrimSpace(in.Description)
	date := strings.TrimSpace(in.Date)
	if description == "" || date == "" || in.Amount == nil || in.Amount == "" {
		return entryFields{}, apperr.New(apperr.InvalidInput, "Description, amount, and date are required")
	}

	amount, err := positiveAmount(in.Amount)
	if err != nil {
		return entryFields{}, err
	}

	category := strings.TrimSpace(in.Category)
	if !slices.Contains(categories, category) {
		return entryFields{}, apperr.New(apperr.InvalidInput, "Invalid category")
	}

	when, err := validate.ParseDate(date)
	if err != nil {
		return entryFields{}, apperr.New(apperr.InvalidInput, "Date must be a valid ISO date")
	}

	return entryFields{
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        when,
		Tags:        cleanTags(in.Tags),
	}, nil
}

// positiveAmount accepts a JSON number or numeric string that is finite and greater than zero.
func positiveAmount(v any) (float64, error) {
	n, ok := validate.Number(v)
	if !ok || n <= 0 {
		return 0, apperr.New(apperr.InvalidInput, "Amount must be a positive number")
	}
	return n, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// orDefault returns the trimmed value of s, or def when s is blank.
func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
