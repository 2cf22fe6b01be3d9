package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a minor-unit amount. Prices are carried in this form from the
// moment they leave the catalog; display strings exist only at the UI edge.
type Money struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// IsZero reports whether no amount has been resolved.
func (m Money) IsZero() bool {
	return m.Cents == 0 && m.Currency == ""
}

// Display formats the amount for the UI, e.g. "$45.00".
func (m Money) Display() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("$%d.%02d", m.Cents/100, m.Cents%100)
}

// DecimalString formats the amount the way the payment processors expect
// a value field, e.g. "45.00".
func (m Money) DecimalString() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

// Add returns the sum of two amounts. Currencies are expected to match;
// the first non-empty currency wins.
func (m Money) Add(other Money) Money {
	cur := m.Currency
	if cur == "" {
		cur = other.Currency
	}
	return Money{Cents: m.Cents + other.Cents, Currency: cur}
}

// ParseDisplayPrice converts a catalog display string such as "$45.00",
// " $45 " or "45.5" into a Money in USD. It strips a leading currency
// symbol and surrounding whitespace before parsing.
func ParseDisplayPrice(s string) (Money, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return Money{}, fmt.Errorf("empty price string")
	}

	whole, frac, _ := strings.Cut(cleaned, ".")
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return Money{}, fmt.Errorf("invalid price %q", s)
	}

	cents := int64(0)
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, fmt.Errorf("invalid price %q", s)
		}
	}

	return Money{Cents: dollars*100 + cents, Currency: "USD"}, nil
}
