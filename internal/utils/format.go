package utils

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayDateLayout is the dd/mm/yyyy layout used across the views.
const DisplayDateLayout = "02/01/2006 15:04"

const emptyDate = "-"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// ParseTimestamp accepts time values and ISO-8601 strings, the two forms
// registration timestamps have been stored in.
func ParseTimestamp(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// FormatDate renders a timestamp as dd/mm/yyyy HH:MM or "-" when it cannot be read.
func FormatDate(value interface{}) string {
	ts, ok := ParseTimestamp(value)
	if !ok {
		return emptyDate
	}
	return ts.Format(DisplayDateLayout)
}

// Truncate shortens text to max runes, appending an ellipsis when cut.
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	if max <= 3 {
		return string(runes[:max])
	}
	return strings.TrimRight(string(runes[:max-3]), " ") + "..."
}

// FormatCurrency renders an amount in Brazilian reais, e.g. R$ 1.234,56.
func FormatCurrency(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = math.Abs(value)
	}
	return sign + "R$ " + brlPrinter.Sprintf("%.2f", value)
}
