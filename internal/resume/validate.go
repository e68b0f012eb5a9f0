package resume

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names rather than Go struct names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one invalid field in a record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks field formats (email, profile URLs, education entries).
// It never inspects content quality; a record with problems still scores.
func Validate(rec Record) []FieldError {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "record", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return out
}

// ValidateForExport applies Validate plus the export gate: a record without
// a full name cannot be exported.
func ValidateForExport(rec Record) []FieldError {
	errs := Validate(rec)
	if strings.TrimSpace(rec.FullName) == "" {
		errs = append([]FieldError{{Field: "full_name", Message: "required"}}, errs...)
	}
	return errs
}

// fieldPath strips the root struct name: "Record.experience[0].title" -> "experience[0].title".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return fmt.Sprintf("invalid email address: %q", fe.Value())
	case "url":
		return fmt.Sprintf("invalid URL: %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
