package utils

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	phone10Pattern = regexp.MustCompile(`^[0-9]{10}$`)
	hhmmPattern    = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

	validatorOnce sync.Once
	validatorInst *CustomValidator
)

// CustomValidator wraps validator.Validate with the project's custom tags.
// It also satisfies echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// Validate checks a struct against its `validate` tags.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// GetValidator returns the shared validator instance.
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		v := validator.New()
		// registration only fails on an empty tag or nil func
		_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
			return phone10Pattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return hhmmPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("nonneg", func(fl validator.FieldLevel) bool {
			n, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
			return err == nil && n >= 0
		})
		validatorInst = &CustomValidator{validate: v}
	})
	return validatorInst
}
