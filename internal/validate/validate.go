// Package validate coerces untyped request values into typed fields.
// Every validator either returns a normalized value or an
// *apperr.ValidationError; none of them have side effects.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/studysync/studysync/internal/apperr"
	"github.com/studysync/studysync/internal/model"
)

// Null is the value of a field that was sent as an explicit JSON null.
// It is distinct from an absent field, which stays nil: on update a null
// clears an optional field and fails validation on a required one.
type Null struct{}

// IsNull reports whether value is absent or an explicit null.
func IsNull(value any) bool {
	return isNil(value)
}

// DecodeObject decodes a JSON object into fields, keyed by JSON name.
// Keys missing from data leave their field untouched, a null key stores
// Null, and any other value is decoded into the field as-is.
func DecodeObject(data []byte, fields map[string]*any) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, dst := range fields {
		msg, ok := raw[name]
		if !ok {
			continue
		}
		if string(msg) == "null" {
			*dst = Null{}
			continue
		}
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("decoding %s: %w", name, err)
		}
		*dst = v
	}
	return nil
}

// Bounds is an optional inclusive integer range.
type Bounds struct {
	Min *int
	Max *int
}

// Between returns bounds min <= n <= max.
func Between(min, max int) Bounds {
	return Bounds{Min: &min, Max: &max}
}

// AtLeast returns bounds n >= min.
func AtLeast(min int) Bounds {
	return Bounds{Min: &min}
}

// RequireEnum checks that value is one of allowed.
func RequireEnum(value any, allowed []string, field string) (string, error) {
	s, ok := text(value)
	if !ok || !slices.Contains(allowed, s) {
		return "", apperr.Invalid(field, "Allowed: "+strings.Join(allowed, ", "))
	}
	return s, nil
}

// RequireInt coerces value to an integer and range-checks it.
func RequireInt(value any, field string, b Bounds) (int, error) {
	n, ok := integer(value)
	if !ok {
		return 0, apperr.Invalid(field, "Expected integer.")
	}
	if b.Min != nil && n < *b.Min {
		return 0, apperr.Invalid(field, fmt.Sprintf("Must be >= %d.", *b.Min))
	}
	if b.Max != nil && n > *b.Max {
		return 0, apperr.Invalid(field, fmt.Sprintf("Must be <= %d.", *b.Max))
	}
	return n, nil
}

// RequireID coerces value to a positive entity identifier.
func RequireID(value any, field string) (int64, error) {
	n, err := RequireInt(value, field, AtLeast(1))
	return int64(n), err
}

// RequireText trims value and checks it has at least minLen characters.
func RequireText(value any, field string, minLen int) (string, error) {
	s, ok := text(value)
	if !ok {
		return "", apperr.Invalid(field, "Expected string.")
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < minLen {
		return "", apperr.Invalid(field, fmt.Sprintf("Must be at least %d chars.", minLen))
	}
	return s, nil
}

// OptionalText never fails: absent, non-text, or empty-after-trim values
// collapse to nil.
func OptionalText(value any) *string {
	s, ok := text(value)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDay reports whether s is a YYYY-MM-DD calendar date.
func IsDay(s string) bool {
	if !dayPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(model.DayLayout, s)
	return err == nil
}

// RequireDay checks that value is a YYYY-MM-DD calendar date.
func RequireDay(value any, field string) (string, error) {
	s, ok := text(value)
	if !ok || !IsDay(s) {
		return "", apperr.Invalid(field, "Use YYYY-MM-DD.")
	}
	return s, nil
}

// instantLayouts are tried in order when parsing timestamps. Layouts without
// a zone are read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	model.DayLayout,
}

// ParseInstant parses value as an absolute timestamp, normalized to UTC.
func ParseInstant(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return v.UTC(), !v.IsZero()
	}

	s, ok := text(value)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// RequireInstant parses value as an absolute timestamp or fails.
func RequireInstant(value any, field string) (time.Time, error) {
	t, ok := ParseInstant(value)
	if !ok {
		return time.Time{}, apperr.Invalid(field, "ISO date/time required.")
	}
	return t, nil
}

// OptionalInstant is like RequireInstant but treats absent or blank input
// as "no value". Present but unparsable input is still rejected.
func OptionalInstant(value any, field string) (*time.Time, error) {
	if s, ok := text(value); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if isNil(value) {
		return nil, nil
	}
	t, err := RequireInstant(value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func text(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	default:
		return "", false
	}
}

func integer(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case *int:
		if v == nil {
			return 0, false
		}
		return *v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case *int64:
		if v == nil {
			return 0, false
		}
		return int(*v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := strconv.Atoi(v.String())
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	case *string:
		if v == nil {
			return 0, false
		}
		return integer(*v)
	default:
		return 0, false
	}
}

func isNil(value any) bool {
	switch v := value.(type) {
	case nil, Null:
		return true
	case *string:
		return v == nil
	case *time.Time:
		return v == nil
	default:
		return false
	}
}
