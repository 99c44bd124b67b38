package theme

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

const minutesPerDay = 24 * 60

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("colour", func(fl validator.FieldLevel) bool {
			_, err := colour.Parse(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, err := ParseClock(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			_, err := semver.NewVersion(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks a definition before installation. Schema problems are
// reported together as a *errors.ValidationError; rule sets that are
// individually valid but ambiguous produce a *errors.ConfigurationError.
func Validate(def *Definition) error {
	if def == nil {
		return lumenerrors.NewValidationError("definition", "theme definition is nil", nil)
	}

	if err := validatorInstance().Struct(def); err != nil {
		return convertValidationError(err)
	}

	if def.Dynamic != nil {
		if err := checkDynamic(def.Dynamic); err != nil {
			return err
		}
	}

	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return lumenerrors.NewValidationError("definition", err.Error(), err)
	}

	fields := make([]string, 0, len(ves))
	details := make([]string, 0, len(ves))
	for _, fe := range ves {
		field := yamlishFieldName(fe)
		fields = append(fields, field)
		details = append(details, fmt.Sprintf("%s failed '%s'", field, fe.Tag()))
	}

	msg := strings.Join(details, "; ")
	return lumenerrors.NewMultiValidationError(fields, msg, err)
}

// yamlishFieldName drops the root type from the namespace so that the
// result matches the document path, e.g. "colors.background".
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.IndexByte(ns, '.'); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

func checkDynamic(d *Dynamic) error {
	if d.TimeOfDay != nil {
		if err := checkTimeRules(d.TimeOfDay.Rules); err != nil {
			return err
		}
	}
	if d.Seasons != nil {
		if err := checkSeasonRules(d.Seasons.Rules); err != nil {
			return err
		}
	}
	if d.Weather != nil {
		if err := checkWeatherRules(d.Weather.Rules); err != nil {
			return err
		}
	}
	return nil
}

type span struct{ from, to int }

// spans unrolls a possibly wrapping interval into non-wrapping minute ranges.
func spans(start, end int) []span {
	if start < end {
		return []span{{start, end}}
	}
	return []span{{start, minutesPerDay}, {0, end}}
}

func checkTimeRules(rules []TimeRule) error {
	type interval struct {
		name  string
		parts []span
	}
	intervals := make([]interval, 0, len(rules))

	for i, rule := range rules {
		field := fmt.Sprintf("dynamic.time_of_day.rules[%d]", i)
		start, err := ParseClock(rule.Start)
		if err != nil {
			return lumenerrors.NewConfigurationError(field+".start", err.Error())
		}
		end, err := ParseClock(rule.End)
		if err != nil {
			return lumenerrors.NewConfigurationError(field+".end", err.Error())
		}
		if start == end {
			return lumenerrors.NewConfigurationError(field, fmt.Sprintf("interval %q has equal start and end", rule.Name))
		}

		current := interval{name: rule.Name, parts: spans(start, end)}
		for _, prev := range intervals {
			if overlaps(prev.parts, current.parts) {
				return lumenerrors.NewConfigurationError(field, fmt.Sprintf("interval %q overlaps %q", rule.Name, prev.name))
			}
		}
		intervals = append(intervals, current)
	}
	return nil
}

func overlaps(a, b []span) bool {
	for _, x := range a {
		for _, y := range b {
			if x.from < y.to && y.from < x.to {
				return true
			}
		}
	}
	return false
}

func checkSeasonRules(rules []SeasonRule) error {
	owner := make(map[int]int, 12)
	for i, rule := range rules {
		for _, month := range rule.Months {
			if prev, taken := owner[month]; taken && prev != i {
				return lumenerrors.NewConfigurationError(
					fmt.Sprintf("dynamic.seasons.rules[%d].months", i),
					fmt.Sprintf("month %d belongs to both %q and %q", month, rules[prev].Name, rule.Name),
				)
			}
			owner[month] = i
		}
	}
	return nil
}

func checkWeatherRules(rules []WeatherRule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if _, dup := seen[rule.Condition]; dup {
			return lumenerrors.NewConfigurationError(
				fmt.Sprintf("dynamic.weather.rules[%d].condition", i),
				fmt.Sprintf("duplicate weather condition %q", rule.Condition),
			)
		}
		seen[rule.Condition] = struct{}{}
	}
	return nil
}
