package validation

import (
	"regexp"
	"strings"
)

// Subdomain rules:
// - Lowercase only.
// - Start and end with [a-z0-9].
// - Middle chars may include [a-z0-9-].
// - Length 3..63 (DNS label).
//
// Examples valid: demo, acme, my-team-2
// Examples invalid: De, -lead, trail-, a, con..secutive is fine, 64+ chars.
var subdomainRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,61}[a-z0-9]$`)

// ValidSubdomain returns true if the provided subdomain matches the allowed pattern.
func ValidSubdomain(s string) bool {
	return subdomainRe.MatchString(s)
}

// Minimal email shape check. The resolver matches emails byte-exact, so this
// only rejects obvious garbage; it does not normalize.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail returns true for a plausible email address.
func ValidEmail(s string) bool {
	return len(s) <= 254 && emailRe.MatchString(s)
}

// ValidPassword enforces the minimum password length.
func ValidPassword(s string) bool {
	return len(s) >= 8 && len(s) <= 128
}

// NonEmpty reports whether s has content besides whitespace.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
