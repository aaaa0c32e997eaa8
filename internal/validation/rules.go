// Package validation provides custom validation rules for request DTOs.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/hname/internal/errors"
	"github.com/allisson/hname/internal/hname"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// HNameHex validates that a string parses as a hex hname ("0x" prefix optional).
var HNameHex = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := hname.Parse(s)
		return err == nil
	},
	validation.NewError("validation_hname_hex", "must be a hex hname of at most 8 digits"),
)
