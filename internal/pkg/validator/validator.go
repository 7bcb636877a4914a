package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"flowx-relief/internal/domain"
)

// Sri Lankan numbers: 0XXXXXXXXX or +94XXXXXXXXX.
var reSLPhone = regexp.MustCompile(`^(?:\+94|0)\d{9}$`)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("sl_phone", func(fl validator.FieldLevel) bool {
		return reSLPhone.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	_ = v.RegisterValidation("emergency_level", func(fl validator.FieldLevel) bool {
		return domain.EmergencyLevel(fl.Field().String()).IsValid()
	})

	return &Validator{v: v}
}

// Struct validates s and returns a *domain.ValidationError listing every
// rejected field.
func (cv *Validator) Struct(s interface{}) error {
	err := cv.v.Struct(s)
	if err == nil {
		return nil
	}
	return &domain.ValidationError{Fields: ToFieldErrors(err)}
}

// ToFieldErrors maps validator errors to readable messages.
func ToFieldErrors(err error) []domain.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []domain.FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]domain.FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, domain.FieldError{Field: e.Field(), Message: message(e)})
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "sl_phone":
		return "must be a Sri Lankan phone number"
	case "emergency_level":
		return "must be one of low, medium, high, critical"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "latitude", "longitude":
		return "must be a valid " + e.Tag()
	default:
		return e.Tag() + " validation failed"
	}
}
