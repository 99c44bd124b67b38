// Package dynamic derives palette modifiers from the environment using the
// time-of-day, season and weather rule families of a theme.
package dynamic

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
)

const minutesPerDay = 24 * 60

// Context is the environment a theme is evaluated against.
type Context struct {
	Time time.Time
	// Month is 1-12; zero means the month of Time.
	Month   int
	Weather string
}

// NewContext builds a context from a wall-clock time and weather tag.
func NewContext(at time.Time, weather string) Context {
	return Context{Time: at, Weather: weather}
}

// month resolves the effective calendar month.
func (c Context) month() int {
	if c.Month >= 1 && c.Month <= 12 {
		return c.Month
	}
	if c.Time.IsZero() {
		return 0
	}
	return int(c.Time.Month())
}

// minuteOfDay returns the fractional minute since midnight.
func (c Context) minuteOfDay() float64 {
	t := c.Time
	return float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
}

// Modifiers is the composed adjustment applied to a palette. A zero
// Temperature leaves colour temperature untouched.
type Modifiers struct {
	HueShift          float64
	Saturation        float64
	Brightness        float64
	Temperature       float64
	TemperatureWeight float64
	Accent            *colour.Color
	// Bucket names the rules that fired, e.g. "time=night|weather=rain".
	Bucket string
}

// Identity returns modifiers that leave every colour unchanged.
func Identity() Modifiers {
	return Modifiers{Saturation: 1, Brightness: 1}
}

// IsIdentity reports whether applying m changes nothing.
func (m Modifiers) IsIdentity() bool {
	return m.HueShift == 0 && m.Saturation == 1 && m.Brightness == 1 &&
		(m.Temperature == 0 || m.TemperatureWeight == 0) && m.Accent == nil
}

// Encode renders a canonical textual form used for fingerprints.
func (m Modifiers) Encode() string {
	accent := "-"
	if m.Accent != nil {
		accent = m.Accent.Hex()
	}
	return fmt.Sprintf("h=%.6f;s=%.6f;b=%.6f;k=%.3f;w=%.6f;a=%s",
		m.HueShift, m.Saturation, m.Brightness, m.Temperature, m.TemperatureWeight, accent)
}

// Evaluate composes the enabled rule families of d against ctx in the fixed
// order time of day, season, weather. A nil d yields Identity.
func Evaluate(d *theme.Dynamic, ctx Context) Modifiers {
	mods := Identity()
	if d == nil {
		return mods
	}

	var buckets []string
	strength := theme.DefaultStrength

	if tod := d.TimeOfDay; tod.IsEnabled() {
		strength = tod.EffectiveStrength()
		if label, ok := applyTimeOfDay(&mods, tod, ctx.minuteOfDay()); ok {
			buckets = append(buckets, "time="+label)
		}
	}

	if seasons := d.Seasons; seasons.IsEnabled() {
		if label, ok := applySeason(&mods, seasons.Rules, ctx.month()); ok {
			buckets = append(buckets, "season="+label)
		}
	}

	if weather := d.Weather; weather.IsEnabled() {
		if label, ok := applyWeather(&mods, weather.Rules, ctx.Weather, strength); ok {
			buckets = append(buckets, "weather="+label)
		}
	}

	mods.Bucket = strings.Join(buckets, "|")
	return mods
}

type interval struct {
	rule       theme.TimeRule
	start, end float64
}

func (iv interval) contains(m float64) bool {
	if iv.start < iv.end {
		return m >= iv.start && m < iv.end
	}
	return m >= iv.start || m < iv.end
}

func parseIntervals(rules []theme.TimeRule) []interval {
	out := make([]interval, 0, len(rules))
	for _, rule := range rules {
		start, err := theme.ParseClock(rule.Start)
		if err != nil {
			continue
		}
		end, err := theme.ParseClock(rule.End)
		if err != nil || start == end {
			continue
		}
		out = append(out, interval{rule: rule, start: float64(start), end: float64(end)})
	}
	return out
}

// circular returns the forward distance in minutes from a to b.
func circular(a, b float64) float64 {
	d := math.Mod(b-a, minutesPerDay)
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

func applyTimeOfDay(mods *Modifiers, tod *theme.TimeOfDayRules, minute float64) (string, bool) {
	intervals := parseIntervals(tod.Rules)
	if len(intervals) == 0 {
		return "", false
	}

	for _, iv := range intervals {
		if iv.contains(minute) {
			mods.Temperature = iv.rule.EffectiveTemperature()
			mods.TemperatureWeight = tod.EffectiveStrength()
			mods.Brightness *= iv.rule.EffectiveBrightness()
			return iv.rule.Name, true
		}
	}

	// In a gap: blend from the interval that ended most recently toward the
	// one that starts next.
	prev, next := intervals[0], intervals[0]
	sinceEnd, untilStart := math.Inf(1), math.Inf(1)
	for _, iv := range intervals {
		if d := circular(iv.end, minute); d < sinceEnd {
			sinceEnd, prev = d, iv
		}
		if d := circular(minute, iv.start); d < untilStart {
			untilStart, next = d, iv
		}
	}

	frac := 0.0
	if total := sinceEnd + untilStart; total > 0 {
		frac = sinceEnd / total
	}

	fromK, toK := prev.rule.EffectiveTemperature(), next.rule.EffectiveTemperature()
	fromB, toB := prev.rule.EffectiveBrightness(), next.rule.EffectiveBrightness()
	mods.Temperature = fromK + (toK-fromK)*frac
	mods.TemperatureWeight = tod.EffectiveStrength()
	mods.Brightness *= fromB + (toB-fromB)*frac

	return fmt.Sprintf("%s~%s@%.3f", prev.rule.Name, next.rule.Name, frac), true
}

func applySeason(mods *Modifiers, rules []theme.SeasonRule, month int) (string, bool) {
	if month == 0 {
		return "", false
	}
	for _, rule := range rules {
		for _, m := range rule.Months {
			if m != month {
				continue
			}
			mods.HueShift += rule.HueShift
			mods.Saturation *= factor(rule.Saturation)
			overrideAccent(mods, rule.Accent)
			return rule.Name, true
		}
	}
	return "", false
}

func applyWeather(mods *Modifiers, rules []theme.WeatherRule, condition string, strength float64) (string, bool) {
	if condition == "" {
		return "", false
	}
	for _, rule := range rules {
		if rule.Condition != condition {
			continue
		}
		mods.HueShift += rule.HueShift
		mods.Saturation *= factor(rule.Saturation)
		mods.Brightness *= factor(rule.Brightness)
		if rule.Temperature > 0 {
			mods.Temperature = rule.Temperature
			mods.TemperatureWeight = strength
		}
		overrideAccent(mods, rule.Accent)
		return rule.Condition, true
	}
	return "", false
}

// factor treats an unset multiplier as 1. Zero is honoured.
func factor(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}

func overrideAccent(mods *Modifiers, raw string) {
	if raw == "" {
		return
	}
	c, err := colour.Parse(raw)
	if err != nil {
		return
	}
	mods.Accent = &c
}
