// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/vending/internal/errors"
)

// Username length bounds.
const (
	UsernameMinLength = 4
	UsernameMaxLength = 20
)

// PasswordMinLength is the minimum accepted password length.
const PasswordMinLength = 6

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// Username accepts letters, digits, dots and underscores. A dot or underscore may not
// start or end the name, and two of them may not appear in a row.
var Username = validation.NewStringRuleWithError(
	isValidUsername,
	validation.NewError(
		"validation_username",
		"can contain alphanumeric characters and dot/underscore; dot/underscore can't be at start/end "+
			"and should not be used multiple times in a row",
	),
)

func isValidUsername(s string) bool {
	if s == "" {
		return false
	}
	prevSeparator := false
	for i, r := range s {
		isSeparator := r == '.' || r == '_'
		switch {
		case isSeparator:
			if i == 0 || i == len(s)-1 || prevSeparator {
				return false
			}
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
		prevSeparator = isSeparator
	}
	return true
}

// Coin validates that an integer is one of the accepted coin denominations.
func Coin(denominations []int64) validation.Rule {
	return validation.By(func(value interface{}) error {
		coin, err := validation.ToInt(value)
		if err != nil {
			return validation.NewError("validation_coin_type", "must be an integer")
		}
		for _, d := range denominations {
			if coin == d {
				return nil
			}
		}
		return validation.NewError(
			"validation_coin",
			fmt.Sprintf("must be one of %v", denominations),
		)
	})
}
