package models

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
)

// normalizeCurrency returns the canonical ISO 4217 code for code.
func normalizeCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("currency %q is not a valid ISO 4217 code", code)
	}

	return unit.String(), nil
}

// validID reports whether id fits the 32-bit identifier range used by the API.
func validID(id int64) bool {
	return id >= math.MinInt32 && id <= math.MaxInt32
}
