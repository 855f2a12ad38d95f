// Package validation checks request payloads and configuration against
// their struct tags and converts failures into domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

// TagName is the struct tag holding rules. It matches gin's binding tag so
// one set of rules serves request binding and direct validation.
const TagName = "binding"

// ValidationError represents a validation error with field-specific details.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Tag     string      `json:"tag"`
	Message string      `json:"message"`
}

// ValidationResult represents the result of validation.
type ValidationResult struct {
	Valid  bool               `json:"valid"`
	Errors []*ValidationError `json:"errors,omitempty"`
}

var (
	once     sync.Once
	instance *validator.Validate

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Engine returns the shared validator.
func Engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.SetTagName(TagName)
		v.RegisterTagNameFunc(fieldName)
		Register(v)
		instance = v
	})
	return instance
}

// Register adds the custom rules to v. The API registers them on gin's
// validator too.
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || slugPattern.MatchString(s)
	})
}

// ConfigureBinding prepares gin's validator the same way as Engine, so
// binding errors name fields by their json name.
func ConfigureBinding(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	Register(v)
}

// fieldName reports fields by their json name.
func fieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

// Validate validates a struct and collects every failing field.
func Validate(s interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}
	err := Engine().Struct(s)
	if err == nil {
		return result
	}
	result.Valid = false

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		result.Errors = append(result.Errors, &ValidationError{Field: "payload", Tag: "invalid", Message: err.Error()})
		return result
	}
	for _, fe := range ves {
		result.Errors = append(result.Errors, &ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: message(fe.Field(), fe.Tag(), fe.Param()),
		})
	}
	return result
}

// ValidateStruct validates s and returns a domain validation error whose
// details map each failing field to its message.
func ValidateStruct(s interface{}) error {
	result := Validate(s)
	if result.Valid {
		return nil
	}
	return asDomainError(result)
}

// FromError converts an error from gin's binding into a domain validation
// error. Other errors become a generic payload error.
func FromError(err error) error {
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.NewValidationError("INVALID_PAYLOAD", "Request payload could not be read", map[string]interface{}{
			"error": err.Error(),
		})
	}
	result := &ValidationResult{}
	for _, fe := range ves {
		field := strings.ToLower(fe.Field())
		result.Errors = append(result.Errors, &ValidationError{
			Field:   field,
			Tag:     fe.Tag(),
			Message: message(field, fe.Tag(), fe.Param()),
		})
	}
	return asDomainError(result)
}

func asDomainError(result *ValidationResult) error {
	details := make(map[string]interface{}, len(result.Errors))
	for _, e := range result.Errors {
		details[e.Field] = e.Message
	}
	return domain.NewValidationError("VALIDATION_FAILED", "Validation failed", details)
}

// message returns an appropriate error message for a validation rule.
func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", field)
	case "slug":
		return fmt.Sprintf("%s must be a valid slug (lowercase letters, numbers, and hyphens)", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
