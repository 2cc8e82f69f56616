package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp reads the loose date formats browsers produce (ISO 8601,
// RFC 1123, slash dates, epoch digits). Inputs without a zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return t.UTC(), nil
}

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("timestamp", ValidateTimestampRule)
}

// NewValidator returns a validator with the custom rules registered and
// registers the same rules on gin's binding engine.
func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterCustomValidators(v)
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(engine)
	}
	return v
}

func ValidateTimestampRule(fl validator.FieldLevel) bool {
	_, err := ParseTimestamp(fl.Field().String())
	return err == nil
}
