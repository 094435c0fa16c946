package etl

import (
	"strings"

	"github.com/BartekS5/retail-etl/pkg/utils"
)

var allowedEmailDomains = []string{".com", ".net", ".org"}

// IsValidEmail reports whether a customer email may be loaded. An empty value
// is treated as missing. The checks run in order and stop at the first
// failure:
//   - missing or empty
//   - starts with "invalid" (any case)
//   - no "@"
//   - blank user part before the first "@"
//   - domain without a "."
//   - domain not ending in .com, .net or .org (any case)
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	if strings.HasPrefix(strings.ToLower(email), "invalid") {
		return false
	}
	user, domain, found := strings.Cut(email, "@")
	if !found {
		return false
	}
	if strings.TrimSpace(user) == "" {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	domain = strings.ToLower(domain)
	for _, suffix := range allowedEmailDomains {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	return false
}

// IsValidDate reports whether s is a calendar date written exactly as
// MM/DD/YYYY or YYYY-MM-DD.
func IsValidDate(s string) bool {
	_, err := utils.ParseDate(s)
	return err == nil
}
