package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexisbeaulieu97/lumen/internal/dynamic"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
)

// contextFlags describe the environment dynamic rules are evaluated against.
type contextFlags struct {
	at      string
	month   int
	weather string
}

func (f *contextFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.at, "at", "", "Evaluate at a clock time (HH:MM, today) or an RFC3339 timestamp; defaults to now")
	fs.IntVar(&f.month, "month", 0, "Override the calendar month (1-12) used by seasonal rules")
	fs.StringVar(&f.weather, "weather", "", "Weather condition tag, e.g. rain or clear")
}

func (f contextFlags) context(now time.Time) (dynamic.Context, error) {
	at, err := parseAt(f.at, now)
	if err != nil {
		return dynamic.Context{}, err
	}
	if f.month < 0 || f.month > 12 {
		return dynamic.Context{}, fmt.Errorf("month must be between 1 and 12, got %d", f.month)
	}

	ctx := dynamic.NewContext(at, f.weather)
	ctx.Month = f.month
	return ctx, nil
}

// parseAt resolves "", "HH:MM" or an RFC3339 timestamp relative to now.
func parseAt(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}

	if minutes, err := theme.ParseClock(raw); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, now.Location()), nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: want HH:MM or RFC3339", raw)
	}
	return t, nil
}
