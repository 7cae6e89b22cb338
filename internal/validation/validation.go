// Package validation holds the credential rules shared by the CLI forms and
// the server: the email shape check and the strong password policy. Both are
// expressed as go-playground/validator tags so request DTOs can use them too.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Character classes of the password policy.
const (
	LowerChars  = "abcdefghijklmnopqrstuvwxyz"
	UpperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars  = "0123456789"
	SymbolChars = `!@#$%^&*(),.?":{}|<>`
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 8

// local@domain.tld: no whitespace, exactly one @, a dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator wraps a configured *validator.Validate.
//
// Registered tags:
//
//	emailshape  conventional local@domain.tld shape
//	symbol      at least one character from SymbolChars
//	strongpwd   alias: min length + lower + upper + digit + symbol
type Validator struct {
	v *validator.Validate
}

// New returns a Validator reporting field names from json tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on empty tag names or nil funcs.
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
		return strings.ContainsAny(fl.Field().String(), SymbolChars)
	})
	v.RegisterAlias("strongpwd", fmt.Sprintf("min=%d,containsany=%s,containsany=%s,containsany=%s,symbol",
		MinPasswordLength, LowerChars, UpperChars, DigitChars))

	return &Validator{v: v}
}

// Struct validates a tagged struct.
func (v *Validator) Struct(s any) error {
	return v.v.Struct(s)
}

// Var validates a single value against tag.
func (v *Validator) Var(value any, tag string) error {
	return v.v.Var(value, tag)
}

var std = New()

// Default returns the package-level Validator.
func Default() *Validator { return std }

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return std.Var(s, "emailshape") == nil
}

// IsValidPassword reports whether s satisfies the password policy: at least
// MinPasswordLength characters with a lowercase letter, an uppercase letter,
// a digit and a symbol from SymbolChars.
func IsValidPassword(s string) bool {
	return std.Var(s, "strongpwd") == nil
}

// ToDetails converts validator errors into field -> message. Any other error
// is reported under "payload".
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"payload": "invalid payload"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "emailshape", "email":
		return "must be a valid email"
	case "strongpwd":
		return fmt.Sprintf("must be at least %d characters with uppercase, lowercase, number and special character", MinPasswordLength)
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "containsany":
		return "must contain at least one of '" + fe.Param() + "'"
	case "symbol":
		return "must contain at least one of '" + SymbolChars + "'"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
