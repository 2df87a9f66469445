package usecases

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const PasswordPolicyMessage = "Password must be at least 8 characters long and contain at least one lowercase letter, one uppercase letter, and one number"

var emailRegex = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[a-zA-Z]{2,7}$`)

// ValidationError carries a message that is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidateEmail checks the address against the accepted local@domain.tld shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return &ValidationError{Message: fmt.Sprintf("%s is not a valid email address", email)}
	}
	return nil
}

// ValidatePassword enforces the policy: at least 8 characters with a digit,
// a lowercase and an uppercase ASCII letter. Line terminators are rejected.
func ValidatePassword(password string) error {
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
			return &ValidationError{Message: PasswordPolicyMessage}
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		}
	}
	if utf8.RuneCountInString(password) < 8 || !hasDigit || !hasLower || !hasUpper {
		return &ValidationError{Message: PasswordPolicyMessage}
	}
	return nil
}
