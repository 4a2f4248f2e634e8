package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emilythestrangee/nexus/backend/internal/models"
)

// asString converts scalar row values to text. Numbers are accepted so
// integer ids still render.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case []byte:
		return string(s), true
	case [16]byte:
		return uuid.UUID(s).String(), true
	case json.Number:
		return s.String(), true
	case int:
		return strconv.Itoa(s), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}

// asText accepts only textual values.
func asText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

// Text returns the first key whose value is non-blank text. The value is
// returned as stored.
func Text(row models.Row, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := asText(row[k]); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// TextOr is Text with a fallback literal.
func TextOr(row models.Row, fallback string, keys ...string) string {
	if s, ok := Text(row, keys...); ok {
		return s
	}
	return fallback
}

func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string, []byte:
		s, _ := asText(n)
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Count coalesces counter columns. The result is a non-negative integer;
// fractions are truncated and anything unusable counts as zero.
func Count(row models.Row, keys ...string) int {
	for _, k := range keys {
		f, ok := asNumber(row[k])
		if !ok {
			continue
		}
		if f <= 0 {
			return 0
		}
		if f >= math.MaxInt32 {
			return math.MaxInt32
		}
		return int(math.Trunc(f))
	}
	return 0
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const dateLayout = "2006-01-02"

// parseTime reads timestamps as instants (zone-less ones as UTC) and bare
// dates as calendar days in loc.
func parseTime(v any, loc *time.Location) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	}

	s, ok := asText(v)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	if parsed, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

// calendarDay moves a date column decoded as UTC midnight to the same day
// in loc. Other instants are returned unchanged.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	if t.Location() != time.UTC {
		return t
	}
	h, m, sec := t.Clock()
	if h != 0 || m != 0 || sec != 0 || t.Nanosecond() != 0 {
		return t
	}
	y, mon, d := t.Date()
	return time.Date(y, mon, d, 0, 0, 0, 0, loc)
}
