package validate

import (
	"strings"

	"github.com/crucial707/fintrack/internal/models"
)

var Registration = RuleSet{
	Name: "registration",
	Trim: []string{"fullName"},
	Rules: []Rule{
		{Field: "fullName", Tag: "min=3,max=30", Message: "Full name must be between 3 and 30 characters"},
		{Field: "email", Tag: "required,email", Message: "Please provide a valid email address"},
		{Field: "password", Tag: "min=6", Message: "Password must be at least 6 characters long"},
	},
	Emails: []string{"email"},
}

var Login = RuleSet{
	Name: "login",
	Rules: []Rule{
		{Field: "email", Tag: "required,email", Message: "Please provide a valid email address"},
		{Field: "password", Tag: "required", Message: "Password is required"},
	},
	Emails: []string{"email"},
}

var Task = RuleSet{
	Name: "task",
	Trim: []string{"title", "notes"},
	Rules: []Rule{
		{Field: "title", Tag: "min=1,max=100", Message: "Title must be between 1 and 100 characters"},
		{Field: "amount", Tag: "gte=0", Numeric: true, Message: "Amount must be a positive number"},
		{Field: "category", Tag: "oneof=" + strings.Join(models.TaskCategories, " "), Optional: true, Message: "Invalid category"},
		{Field: "date", Tag: "iso8601", Optional: true, Message: "Date must be a valid ISO date"},
		{Field: "notes", Tag: "max=500", Optional: true, Message: "Notes cannot exceed 500 characters"},
	},
}

var ProfileUpdate = RuleSet{
	Name: "profile update",
	Trim: []string{"username", "fullName"},
	Rules: []Rule{
		{Field: "fullName", Tag: "min=3,max=30", Optional: true, Message: "Full name must be between 3 and 30 characters"},
		{Field: "username", Tag: "min=3,max=30", Optional: true, Message: "Username must be between 3 and 30 characters"},
		{Field: "username", Tag: "username", Optional: true, Message: "Username can only contain letters, numbers, and underscores"},
		{Field: "email", Tag: "required,email", Optional: true, Message: "Please provide a valid email address"},
		{Field: "password", Tag: "min=6", Optional: true, Message: "Password must be at least 6 characters long"},
	},
	Emails: []string{"email"},
}

var ChangePassword = RuleSet{
	Name: "change password",
	Rules: []Rule{
		{Field: "currentPassword", Tag: "required", Message: "Current password is required"},
		{Field: "newPassword", Tag: "min=6", Message: "New password must be at least 6 characters long"},
	},
}
