package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
type RCode uint8

// Response codes carried in the low four bits of the header flags.
const (
	RCodeNoError  RCode = 0
	RCodeFormErr  RCode = 1
	RCodeServFail RCode = 2
	RCodeNXDomain RCode = 3
	RCodeNotImp   RCode = 4
	RCodeRefused  RCode = 5
	RCodeYXDomain RCode = 6
	RCodeYXRRSet  RCode = 7
	RCodeNXRRSet  RCode = 8
	RCodeNotAuth  RCode = 9
	RCodeNotZone  RCode = 10
)

var rcodeNames = [...]string{
	"NOERROR", "FORMERR", "SERVFAIL", "NXDOMAIN", "NOTIMP", "REFUSED",
	"YXDOMAIN", "YXRRSET", "NXRRSET", "NOTAUTH", "NOTZONE",
}

// IsValid returns true if the RCode is within the supported response code range.
func (r RCode) IsValid() bool {
	return r <= RCodeNotZone
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	if r.IsValid() {
		return rcodeNames[r]
	}
	return fmt.Sprintf("RCODE%d", r)
}

// ParseRCode converts a string name to an RCode value.
// Unknown names map to NOERROR.
func ParseRCode(s string) RCode {
	for i, name := range rcodeNames {
		if name == s {
			return RCode(i)
		}
	}
	return RCodeNoError
}
