package docprint

import (
	"fmt"
	"strings"
	"time"
)

// placeholder stands in for any missing field so that a document always
// renders with its full layout.
const placeholder = "-"

// AgeInYears returns the completed years between dateOfBirth and asOf. The
// count decrements by one when asOf falls before the birthday in its year, so
// the value ticks over exactly on the birthday.
func AgeInYears(dateOfBirth, asOf time.Time) int {
	years := asOf.Year() - dateOfBirth.Year()
	if asOf.Month() < dateOfBirth.Month() ||
		(asOf.Month() == dateOfBirth.Month() && asOf.Day() < dateOfBirth.Day()) {
		years--
	}
	return years
}

// FormatDate renders a date in the institution's fixed convention, e.g.
// "15 Jun 2024". Zero times render as the placeholder.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format("02 Jan 2006")
}

// FormatDateTime renders a timestamp, e.g. "15 Jun 2024 14:30".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format("02 Jan 2006 15:04")
}

// FormatCurrency renders an amount with the institutional currency code and
// thousands separators, e.g. "GHS 2,000.00".
func FormatCurrency(currency string, amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := int64(amount)
	cents := int64(amount*100+0.5) - whole*100
	if cents >= 100 {
		whole++
		cents -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s.%02d", currency, sign, b.String(), cents)
}

// orPlaceholder substitutes the placeholder for blank values so a missing
// field never collapses the layout.
func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
