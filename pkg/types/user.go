package types

import (
	"regexp"
	"strings"
	"time"
)

// Account credential bounds enforced at registration.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 8
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterPattern   = regexp.MustCompile(`[A-Za-z]`)
	digitPattern    = regexp.MustCompile(`\d`)
)

// User is a registered account. Usernames and emails are unique across the
// whole table, compared case-insensitively.
type User struct {
	UserID       int64
	Username     string
	Email        string // stored lowercase
	PasswordHash string
	FullName     string // optional display name
	CreatedAt    time.Time
	LastLogin    time.Time // zero until the first successful login
	IsActive     bool
}

// UserChanges selects user fields to modify. Nil fields are left untouched.
type UserChanges struct {
	Email        *string
	FullName     *string
	PasswordHash *string
	LastLogin    *time.Time
	IsActive     *bool
}

// ValidEmail reports whether the address has a plausible mailbox@domain
// shape. No attempt is made to verify deliverability.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// PasswordProblems checks a candidate password against the account rules
// and returns one human-readable message per violated rule.
func PasswordProblems(password string) []string {
	var problems []string
	switch {
	case password == "":
		problems = append(problems, "Password is required")
	case len(password) < MinPasswordLen:
		problems = append(problems, "Password must be at least 8 characters long")
	case !letterPattern.MatchString(password):
		problems = append(problems, "Password must contain at least one letter")
	case !digitPattern.MatchString(password):
		problems = append(problems, "Password must contain at least one number")
	}
	return problems
}

// RegistrationProblems checks candidate credentials against the account
// rules and returns one human-readable message per violated rule. An empty
// slice means the input is acceptable. Uniqueness against existing accounts
// is a separate, storage-level check.
func RegistrationProblems(username, email, password string) []string {
	var problems []string

	username = strings.TrimSpace(username)
	switch {
	case username == "":
		problems = append(problems, "Username is required")
	case len(username) < MinUsernameLen:
		problems = append(problems, "Username must be at least 3 characters long")
	case len(username) > MaxUsernameLen:
		problems = append(problems, "Username must be less than 50 characters")
	case !usernamePattern.MatchString(username):
		problems = append(problems, "Username can only contain letters, numbers, hyphens, and underscores")
	}

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		problems = append(problems, "Email is required")
	case !emailPattern.MatchString(email):
		problems = append(problems, "Please enter a valid email address")
	}

	return append(problems, PasswordProblems(password)...)
}
