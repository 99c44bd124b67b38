package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("dark.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "dark.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "dark.yaml:12")
}

func TestValidationErrorSingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("colors.background", "is required", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "colors.background", validationErr.Field)
	require.Equal(t, []string{"colors.background"}, validationErr.Fields)
	require.Contains(t, validationErr.Error(), "is required")
}

func TestValidationErrorListsAllFields(t *testing.T) {
	t.Parallel()

	err := NewMultiValidationError([]string{"name", "fonts.family"}, "missing or invalid fields", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "name", validationErr.Field)
	require.Len(t, validationErr.Fields, 2)
	require.Contains(t, err.Error(), "name, fonts.family")
}

func TestNotFoundErrorIncludesKind(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("theme", "Solarized")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "Solarized", notFound.Name)
	require.Equal(t, `theme not found: "Solarized"`, err.Error())
}

func TestConfigurationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewConfigurationError("dynamic.time_of_day.rules[1]", "overlaps rule \"day\"")

	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
	require.Contains(t, err.Error(), "dynamic.time_of_day.rules[1]")
}
