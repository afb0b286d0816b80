package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/pisle-planner/internal/habitat"
	"github.com/osse101/pisle-planner/internal/scale"
)

// Custom validation tags
const (
	TagShortNumber = "shortnum"
	TagHabitat     = "habitat"
	TagPercent     = "percent"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(TagShortNumber, validateShortNumber)
	_ = v.RegisterValidation(TagHabitat, validateHabitat)
	_ = v.RegisterValidation(TagPercent, validatePercent)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	validateOnce.Do(InitValidator)
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := fieldPath(e.Namespace())
		switch e.Tag() {
		case "required", "required_without":
			errs[field] = "This field is required"
		case "excluded_with":
			errs[field] = fmt.Sprintf("Cannot be combined with %s", strings.ToLower(e.Param()))
		case TagShortNumber:
			errs[field] = "Must look like 23.81g"
		case TagHabitat:
			errs[field] = "Unknown habitat"
		case TagPercent:
			errs[field] = "Must be a percentage of at least 100%"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "url":
			errs[field] = "Must be a URL"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// validateShortNumber accepts "23.81g" style numbers; empty passes so optional fields work
func validateShortNumber(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := scale.ParseShort(s)
	return err == nil
}

func validateHabitat(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := habitat.ParseKind(s)
	return err == nil
}

func validatePercent(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := scale.ParseMultiplier(s)
	return err == nil
}
