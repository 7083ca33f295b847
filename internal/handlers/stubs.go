package handlers

import (
	"net/http"

	"github.com/crucial707/fintrack/internal/response"
)

// PlaceholderProfileImage is returned by the profile image stub.
const PlaceholderProfileImage = "https://via.placeholder.com/150"

// ProfileImage accepts a profile image request without storing anything.
func ProfileImage(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, map[string]string{"profileImage": PlaceholderProfileImage}, "Profile image updated successfully")
}

// Bank accounts are not persisted. Listing is always empty and mutations
// only acknowledge the request.

func ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, []any{}, "")
}

func AddBankAccount(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, nil, "Bank account added successfully")
}

func UpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, nil, "Bank account updated successfully")
}

func DeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, nil, "Bank account deleted successfully")
}

// ExportEntries is the export stub for expenses and incomes.
func ExportEntries(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, []any{}, "")
}
