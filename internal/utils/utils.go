// Package utils collects the small reusable helpers shared by the web app
// and the maintenance binaries: generic slice processing, type conversion
// for template arithmetic, time formatting and input validation.
package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

/* some Functional Programming in Go */
// map
type mapFunc[E any, R any] func(E) R

// Map function definition of a functional programming "function"
func Map[S ~[]E, E any, R any](s S, f mapFunc[E, R]) []R {
	result := make([]R, len(s))
	for i, e := range s {
		result[i] = f(e)
	}

	return result
}

// filter
type keepFunc[E any] func(E) bool

// Filter function definition of a functional programming "function"
func Filter[S ~[]E, E any](s S, f keepFunc[E]) S {
	result := S{}
	for _, v := range s {
		if f(v) {
			result = append(result, v)
		}
	}

	return result
}

// ToFloat64 converts the numeric types the templates hand around to float64.
func ToFloat64(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}

	return 0
}

// Ago formats a timestamp as a relative "x ago" label for the views.
func Ago(t any) string {
	var parsed time.Time
	switch v := t.(type) {
	case time.Time:
		parsed = v
	case *time.Time:
		if v == nil {
			return ""
		}
		parsed = *v
	case string:
		var err error
		parsed, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return "invalid time"
		}
	default:

		return "unknown time"
	}

	diff := time.Since(parsed)
	switch {
	case diff < time.Minute:

		return "just now"
	case diff < time.Hour:

		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:

		return fmt.Sprintf("%d hr ago", int(diff.Hours()))
	default:

		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	}
}

// IsAlphanumericPlus function checks if the given string matches the regex of numericals
// and letter characters plus some special characters given
func IsAlphanumericPlus(s, plus string) bool {
	re := regexp.MustCompile(fmt.Sprintf(`^[a-zA-Z0-9%s]+$`, plus))

	return re.MatchString(s)
}
