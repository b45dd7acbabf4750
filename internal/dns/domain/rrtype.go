package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RRType represents a DNS resource record type (e.g. A, AAAA, CSYNC).
// See IANA DNS Parameters for assigned codes.
type RRType uint16

// DNS Resource Record Type constants
const (
	RRTypeA          RRType = 1   // A - IPv4 address
	RRTypeNS         RRType = 2   // NS - Name server
	RRTypeCNAME      RRType = 5   // CNAME - Canonical name
	RRTypeSOA        RRType = 6   // SOA - Start of authority
	RRTypePTR        RRType = 12  // PTR - Pointer
	RRTypeHINFO      RRType = 13  // HINFO - Host information
	RRTypeMX         RRType = 15  // MX - Mail exchange
	RRTypeTXT        RRType = 16  // TXT - Text
	RRTypeRP         RRType = 17  // RP - Responsible person
	RRTypeAFSDB      RRType = 18  // AFSDB - AFS database location
	RRTypeSIG        RRType = 24  // SIG - Legacy signature
	RRTypeKEY        RRType = 25  // KEY - Legacy key
	RRTypeAAAA       RRType = 28  // AAAA - IPv6 address
	RRTypeLOC        RRType = 29  // LOC - Location
	RRTypeSRV        RRType = 33  // SRV - Service
	RRTypeNAPTR      RRType = 35  // NAPTR - Naming authority pointer
	RRTypeKX         RRType = 36  // KX - Key exchanger
	RRTypeCERT       RRType = 37  // CERT - Certificate
	RRTypeDNAME      RRType = 39  // DNAME - Delegation name
	RRTypeOPT        RRType = 41  // OPT - EDNS option
	RRTypeAPL        RRType = 42  // APL - Address prefix list
	RRTypeDS         RRType = 43  // DS - Delegation signer
	RRTypeSSHFP      RRType = 44  // SSHFP - SSH key fingerprint
	RRTypeIPSECKEY   RRType = 45  // IPSECKEY - IPsec key
	RRTypeRRSIG      RRType = 46  // RRSIG - Resource record signature
	RRTypeNSEC       RRType = 47  // NSEC - Next secure
	RRTypeDNSKEY     RRType = 48  // DNSKEY - DNS key
	RRTypeDHCID      RRType = 49  // DHCID - DHCP identifier
	RRTypeNSEC3      RRType = 50  // NSEC3 - Next secure v3
	RRTypeNSEC3PARAM RRType = 51  // NSEC3PARAM - NSEC3 parameters
	RRTypeTLSA       RRType = 52  // TLSA - TLS association
	RRTypeSMIMEA     RRType = 53  // SMIMEA - S/MIME association
	RRTypeHIP        RRType = 55  // HIP - Host identity protocol
	RRTypeCDS        RRType = 59  // CDS - Child DS
	RRTypeCDNSKEY    RRType = 60  // CDNSKEY - Child DNSKEY
	RRTypeOPENPGPKEY RRType = 61  // OPENPGPKEY - OpenPGP key
	RRTypeCSYNC      RRType = 62  // CSYNC - Child-to-parent synchronization
	RRTypeZONEMD     RRType = 63  // ZONEMD - Zone message digest
	RRTypeSVCB       RRType = 64  // SVCB - Service binding
	RRTypeHTTPS      RRType = 65  // HTTPS - HTTPS binding
	RRTypeSPF        RRType = 99  // SPF - Sender policy framework
	RRTypeEUI48      RRType = 108 // EUI48 - 48-bit MAC address
	RRTypeEUI64      RRType = 109 // EUI64 - 64-bit MAC address
	RRTypeTKEY       RRType = 249 // TKEY - Transaction key
	RRTypeTSIG       RRType = 250 // TSIG - Transaction signature
	RRTypeIXFR       RRType = 251 // IXFR - Incremental transfer (query only)
	RRTypeAXFR       RRType = 252 // AXFR - Zone transfer (query only)
	RRTypeANY        RRType = 255 // ANY - Any type (query only)
	RRTypeURI        RRType = 256 // URI - Uniform resource identifier
	RRTypeCAA        RRType = 257 // CAA - Certificate authority authorization
)

// ErrUnknownRRType is returned when a mnemonic does not name a known type.
var ErrUnknownRRType = errors.New("unknown RR type")

var rrTypeNames = map[RRType]string{
	RRTypeA:          "A",
	RRTypeNS:         "NS",
	RRTypeCNAME:      "CNAME",
	RRTypeSOA:        "SOA",
	RRTypePTR:        "PTR",
	RRTypeHINFO:      "HINFO",
	RRTypeMX:         "MX",
	RRTypeTXT:        "TXT",
	RRTypeRP:         "RP",
	RRTypeAFSDB:      "AFSDB",
	RRTypeSIG:        "SIG",
	RRTypeKEY:        "KEY",
	RRTypeAAAA:       "AAAA",
	RRTypeLOC:        "LOC",
	RRTypeSRV:        "SRV",
	RRTypeNAPTR:      "NAPTR",
	RRTypeKX:         "KX",
	RRTypeCERT:       "CERT",
	RRTypeDNAME:      "DNAME",
	RRTypeOPT:        "OPT",
	RRTypeAPL:        "APL",
	RRTypeDS:         "DS",
	RRTypeSSHFP:      "SSHFP",
	RRTypeIPSECKEY:   "IPSECKEY",
	RRTypeRRSIG:      "RRSIG",
	RRTypeNSEC:       "NSEC",
	RRTypeDNSKEY:     "DNSKEY",
	RRTypeDHCID:      "DHCID",
	RRTypeNSEC3:      "NSEC3",
	RRTypeNSEC3PARAM: "NSEC3PARAM",
	RRTypeTLSA:       "TLSA",
	RRTypeSMIMEA:     "SMIMEA",
	RRTypeHIP:        "HIP",
	RRTypeCDS:        "CDS",
	RRTypeCDNSKEY:    "CDNSKEY",
	RRTypeOPENPGPKEY: "OPENPGPKEY",
	RRTypeCSYNC:      "CSYNC",
	RRTypeZONEMD:     "ZONEMD",
	RRTypeSVCB:       "SVCB",
	RRTypeHTTPS:      "HTTPS",
	RRTypeSPF:        "SPF",
	RRTypeEUI48:      "EUI48",
	RRTypeEUI64:      "EUI64",
	RRTypeTKEY:       "TKEY",
	RRTypeTSIG:       "TSIG",
	RRTypeIXFR:       "IXFR",
	RRTypeAXFR:       "AXFR",
	RRTypeANY:        "ANY",
	RRTypeURI:        "URI",
	RRTypeCAA:        "CAA",
}

var rrTypeByName = func() map[string]RRType {
	m := make(map[string]RRType, len(rrTypeNames))
	for t, name := range rrTypeNames {
		m[name] = t
	}
	return m
}()

// IsValid returns true if the RRType has an assigned mnemonic.
func (t RRType) IsValid() bool {
	_, ok := rrTypeNames[t]
	return ok
}

// IsMetaType reports whether the type only appears in queries or transaction
// signalling and can never be present in a type bit map.
func (t RRType) IsMetaType() bool {
	switch t {
	case RRTypeOPT, RRTypeTKEY, RRTypeTSIG, RRTypeIXFR, RRTypeAXFR, RRTypeANY:
		return true
	default:
		return false
	}
}

// String returns the mnemonic of the RRType.
// Types without a mnemonic use the RFC 3597 generic form "TYPE<n>".
func (t RRType) String() string {
	if name, ok := rrTypeNames[t]; ok {
		return name
	}
	return "TYPE" + strconv.FormatUint(uint64(t), 10)
}

// ParseRRType converts a mnemonic (case-insensitive) or an RFC 3597
// "TYPE<n>" token into an RRType.
func ParseRRType(s string) (RRType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if t, ok := rrTypeByName[name]; ok {
		return t, nil
	}
	if num, ok := strings.CutPrefix(name, "TYPE"); ok && num != "" {
		v, err := strconv.ParseUint(num, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownRRType, s)
		}
		return RRType(v), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRRType, s)
}

// RRTypeFromString converts a record type string to its corresponding RRType value.
// Unknown names yield 0.
func RRTypeFromString(s string) RRType {
	t, err := ParseRRType(s)
	if err != nil {
		return 0
	}
	return t
}
