package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/lumen/internal/easing"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("easing", func(fl validator.FieldLevel) bool {
			_, err := easing.Parse(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(fl.Field().String()) {
			case "trace", "debug", "info", "warn", "warning", "error":
				return true
			}
			return false
		})

		validateInst = v
	})

	return validateInst
}

// ValidateSettings checks struct tags on settings and reports every failing
// field in one *errors.ValidationError.
func ValidateSettings(s *Settings) error {
	if s == nil {
		return lumenerrors.NewValidationError("settings", "settings are nil", nil)
	}

	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return lumenerrors.NewValidationError("settings", err.Error(), err)
	}

	fields := make([]string, 0, len(ves))
	details := make([]string, 0, len(ves))
	for _, fe := range ves {
		field := fe.Namespace()
		if idx := strings.IndexByte(field, '.'); idx >= 0 {
			field = field[idx+1:]
		}
		fields = append(fields, field)
		details = append(details, fmt.Sprintf("%s failed '%s'", field, fe.Tag()))
	}
	return lumenerrors.NewMultiValidationError(fields, strings.Join(details, "; "), err)
}
