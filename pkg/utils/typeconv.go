package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Accepted source date layouts, tried in order: MM/DD/YYYY then YYYY-MM-DD.
// Month and day in the slash form may drop their leading zero.
var DateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
}

// WarehouseDateLayout is the normalized date format written to the warehouse.
const WarehouseDateLayout = "2006-01-02"

// ParseDate parses s under the first accepted layout that matches exactly.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %q", s)
}

// NormalizeDate reformats s as YYYY-MM-DD. It reports false when s matches
// none of the accepted layouts.
func NormalizeDate(s string) (string, bool) {
	t, err := ParseDate(s)
	if err != nil {
		return "", false
	}
	return t.Format(WarehouseDateLayout), true
}

// ConvertToDecimal parses a numeric text field such as an amount or price.
// Surrounding whitespace and a thousands separator are tolerated.
func ConvertToDecimal(s string) (float64, error) {
	v := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if v == "" {
		return 0, fmt.Errorf("cannot convert empty value to decimal")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to decimal", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot convert %q to decimal: not a finite number", s)
	}
	return f, nil
}
