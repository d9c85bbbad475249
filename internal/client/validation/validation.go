// Package validation checks console forms before anything is sent to the
// backend. It wraps go-playground/validator with the console's own rules:
//
//	strongpwd  at least 8 chars from [A-Za-z0-9@$!%*?&] with one lower,
//	           one upper, one digit and one of @$!%*?&
//	otp        exactly six ASCII digits
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/salemerge/quotedesk/internal/common"
)

const passwordSymbols = "@$!%*?&"

var (
	validate *validator.Validate
	otpRe    = regexp.MustCompile(`^\d{6}$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = validate.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
		return IsOTP(fl.Field().String())
	})
}

var messages = map[string]string{
	"required":  "The field '%s' is required.",
	"email":     "The field '%s' must be a valid email address.",
	"min":       "The field '%s' must be at least %s characters long.",
	"max":       "The field '%s' must be no longer than %s characters.",
	"gte":       "The field '%s' must be greater than or equal to %s.",
	"gt":        "The field '%s' must be greater than %s.",
	"oneof":     "The field '%s' must be one of: %s.",
	"strongpwd": "The field '%s' must be at least 8 characters and include upper and lower case letters, a digit and one of " + passwordSymbols + ".",
	"otp":       "The field '%s' must be exactly 6 digits.",
}

// Errors maps field names to friendly messages. It matches
// common.ErrValidation with errors.Is.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, e[f])
	}
	return strings.Join(parts, " ")
}

func (e Errors) Is(target error) bool {
	return target == common.ErrValidation
}

// Struct validates s against its `validate` tags. It returns nil or Errors.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// Field reports a single ad-hoc error as Errors.
func Field(name, msg string) Errors {
	return Errors{name: msg}
}

func message(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("Field '%s' is invalid: %s", fe.Field(), fe.Tag())
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, fe.Field(), fe.Param())
	}
	return fmt.Sprintf(msg, fe.Field())
}

func IsStrongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}

func IsOTP(s string) bool {
	return otpRe.MatchString(s)
}

// IsEmail applies the same rule as the `email` tag.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
