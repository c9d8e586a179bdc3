// internal/app/features/products/price.go
package products

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errBadPrice = errors.New("price must be a non-negative amount with at most two decimals")

// ParsePrice converts "12", "12.5", "12.99" or "$1,299.00" to cents.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, errBadPrice
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return 0, errBadPrice
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 || strings.HasPrefix(whole, "+") {
		return 0, errBadPrice
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || f < 0 || strings.HasPrefix(frac, "+") || strings.HasPrefix(frac, "-") {
		return 0, errBadPrice
	}
	return w*100 + f, nil
}

// FormatPrice renders cents as a decimal amount, e.g. 1299 -> "12.99".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
