package domain

import (
	"github.com/haukened/rr-codec/internal/dns/common/utils"
)

// GenerateCacheKey returns a consistent key derived from a DNS name, type, and class.
// Format: "name|type|class" (e.g. "www.example.com.|CSYNC|IN").
// The pipe separator avoids clashes with colons in IPv6 addresses.
func GenerateCacheKey(name string, t RRType, c RRClass) string {
	return utils.CanonicalDNSName(name) + "|" + t.String() + "|" + c.String()
}
