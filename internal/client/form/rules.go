package form

import (
	"strings"

	"github.com/dmitrijs2005/favfood/internal/validation"
)

// Rule returns a message when value is unacceptable, "" otherwise.
type Rule func(value string) string

// Required fails on values that are empty after trimming whitespace.
func Required(msg string) Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return msg
		}
		return ""
	}
}

// RequiredRaw fails only on the literal empty string.
func RequiredRaw(msg string) Rule {
	return func(v string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

func Email(msg string) Rule {
	return func(v string) string {
		if !validation.IsValidEmail(v) {
			return msg
		}
		return ""
	}
}

func StrongPassword(msg string) Rule {
	return func(v string) string {
		if !validation.IsValidPassword(v) {
			return msg
		}
		return ""
	}
}
