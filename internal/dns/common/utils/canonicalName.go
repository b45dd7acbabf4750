package utils

import "strings"

// CanonicalDNSName returns a DNS name in canonical form:
// - Lowercased
// - Trimmed of surrounding whitespace
// - Exactly one trailing dot (fully qualified), "." for the root
// Empty or whitespace-only input yields "".
func CanonicalDNSName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return strings.TrimRight(name, ".") + "."
}
