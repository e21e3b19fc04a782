package login

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const MinPasswordLength = 12

var ErrWeakPassword = errors.New("weak password")

// PasswordPolicyError lists every requirement the password misses.
type PasswordPolicyError struct {
	Missing []string
}

func (e *PasswordPolicyError) Error() string {
	return "password must " + strings.Join(e.Missing, ", ")
}

func (e *PasswordPolicyError) Unwrap() error { return ErrWeakPassword }

func ValidatePasswordPolicy(password string) error {
	var missing []string
	if len([]rune(password)) < MinPasswordLength {
		missing = append(missing, fmt.Sprintf("be at least %d characters", MinPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper {
		missing = append(missing, "include an upper-case letter")
	}
	if !hasLower {
		missing = append(missing, "include a lower-case letter")
	}
	if !hasDigit {
		missing = append(missing, "include a digit")
	}
	if !hasSymbol {
		missing = append(missing, "include a symbol")
	}

	if len(missing) > 0 {
		return &PasswordPolicyError{Missing: missing}
	}
	return nil
}

// ValidatePasswordForUser applies the policy and also rejects passwords that
// contain the username.
func ValidatePasswordForUser(username, password string) error {
	if err := ValidatePasswordPolicy(password); err != nil {
		return err
	}
	u := strings.ToLower(strings.TrimSpace(username))
	if len(u) >= 3 && strings.Contains(strings.ToLower(password), u) {
		return &PasswordPolicyError{Missing: []string{"not contain the username"}}
	}
	return nil
}
