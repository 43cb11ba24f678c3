package invoice

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Display placeholders for missing or unusable values.
const (
	UnknownVendor = "Unknown Vendor"
	NotSpecified  = "Not Specified"
	InvalidDate   = "Invalid Date"
	NotAvailable  = "N/A"

	// CurrencySymbol prefixes every formatted amount.
	CurrencySymbol = "₹"

	dateLayout     = "02 Jan, 2006"
	syncTimeLayout = "3:04 PM"
)

// zoneless timestamps are read in the display location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// FormatDate renders an ISO-like timestamp as "DD Mon, YYYY" in loc.
//
// Timestamps with a zone are converted to loc, zoneless timestamps are read in
// loc, and a bare date is read as UTC midnight before conversion.
func FormatDate(raw string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", NewFormatError("date", raw, ErrUnparseableDate)
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc).Format(dateLayout), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.In(loc).Format(dateLayout), nil
	}

	return "", NewFormatError("date", raw, ErrUnparseableDate)
}

// DisplayDate is FormatDate with placeholders: an empty value shows
// "Not Specified" and an unparseable one shows "Invalid Date".
func DisplayDate(raw string, loc *time.Location) string {
	if strings.TrimSpace(raw) == "" {
		return NotSpecified
	}
	formatted, err := FormatDate(raw, loc)
	if err != nil {
		return InvalidDate
	}
	return formatted
}

// FormatAmount renders "₹ 1234.50", or "N/A" for missing and non-finite values.
func FormatAmount(a Amount) string {
	if !a.Valid || math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
		return NotAvailable
	}
	return CurrencySymbol + " " + strconv.FormatFloat(a.Value, 'f', 2, 64)
}

// AmountFromAny converts a dynamically typed value into an Amount. Numeric
// kinds are valid; everything else, numeric-looking strings included, is not.
func AmountFromAny(v any) Amount {
	switch n := v.(type) {
	case Amount:
		return n
	case float64:
		return NewAmount(n)
	case float32:
		return NewAmount(float64(n))
	case int:
		return NewAmount(float64(n))
	case int32:
		return NewAmount(float64(n))
	case int64:
		return NewAmount(float64(n))
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return Amount{}
		}
		return NewAmount(f)
	default:
		return Amount{}
	}
}

// DifficultyLabel turns a tag like "few-issues" into "Few Issues".
func DifficultyLabel(tag string) string {
	words := strings.FieldsFunc(tag, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// FormatSyncTime renders a wall-clock time as "H:MM AM/PM".
func FormatSyncTime(t time.Time) string {
	return t.Format(syncTimeLayout)
}
