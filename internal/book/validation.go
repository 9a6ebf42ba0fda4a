package book

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	isbn10Pattern = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Pattern = regexp.MustCompile(`^\d{13}$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names so field errors line up with the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// isbn replaces the built-in check-digit rule.
	mustRegister("isbn", validateISBN)
	mustRegister("notblank", validateNotBlank)
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func validateISBN(fl validator.FieldLevel) bool {
	return ValidISBN(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidISBN reports whether s is an ISBN-10 or ISBN-13 once hyphens and
// spaces are removed. Check digits are not verified.
func ValidISBN(s string) bool {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")

	switch len(s) {
	case 10:
		return isbn10Pattern.MatchString(s)
	case 13:
		return isbn13Pattern.MatchString(s)
	}
	return false
}

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from a field/message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "invalid book: " + strings.Join(parts, "; ")
}

// Validate trims the supplied fields and checks them against the struct's
// rules. It returns a *ValidationError or nil.
func (in *CreateInput) Validate() error {
	trimFields(in.Title, in.ISBN)
	return validateStruct(in)
}

// Validate trims the supplied fields and checks them against the struct's
// rules. Absent fields are not checked.
func (in *UpdateInput) Validate() error {
	trimFields(in.Title, in.ISBN)
	return validateStruct(in)
}

func trimFields(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := fields[field]; seen {
			continue
		}
		fields[field] = fieldMessage(field, fe.Tag(), fe.Param())
	}
	return NewValidationError(fields)
}

func fieldMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "isbn":
		return fmt.Sprintf("%s must be a valid ISBN (10 or 13 digits)", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
