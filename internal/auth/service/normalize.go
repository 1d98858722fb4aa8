package service

import (
	"regexp"
	"strings"
	"unicode"

	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// NormalizeUsername trims and lowercases. The regex runs on the trimmed
// value before lowercasing, so the operation is idempotent.
func NormalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if !usernameRegex.MatchString(username) {
		return "", commonerrors.NewInvalidInput("Username must contain only letters and numbers")
	}
	return strings.ToLower(username), nil
}

func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if !emailRegex.MatchString(email) {
		return "", commonerrors.NewInvalidInput("Email is not valid")
	}
	return strings.ToLower(email), nil
}

// ValidatePassword returns the password unchanged on success. Case and
// exact characters matter for hashing, so nothing is normalized here.
func ValidatePassword(raw string) (string, error) {
	if len(raw) < 8 {
		return "", commonerrors.NewInvalidInput("Password must be at least 8 characters long")
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return "", commonerrors.NewInvalidInput("Password must contain at least one uppercase letter")
	}
	if !hasLower {
		return "", commonerrors.NewInvalidInput("Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return "", commonerrors.NewInvalidInput("Password must contain at least one number")
	}

	return raw, nil
}
