package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/haukened/rr-codec/internal/dns/common/utils"
)

// RData is the capability set shared by every record kind.
// Parsing lives with the concrete kinds (text tokens or a wire region);
// once built, a value renders itself to text and to wire form.
type RData interface {
	// Type returns the record kind this rdata belongs to.
	Type() RRType
	// String renders the rdata in presentation (zone file) form.
	String() string
	// Pack appends the wire form of the rdata to b and reports how many
	// bytes were appended. On error b is returned unchanged.
	Pack(b []byte) ([]byte, int, error)
}

// ResourceRecord is a fully decoded DNS resource record.
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  RData
}

// NewResourceRecord constructs a ResourceRecord whose type is taken from data.
func NewResourceRecord(name string, class RRClass, ttl uint32, data RData) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name:  utils.CanonicalDNSName(name),
		Class: class,
		TTL:   ttl,
		Data:  data,
	}
	if data != nil {
		rr.Type = data.Type()
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks whether the ResourceRecord fields are valid.
func (rr ResourceRecord) Validate() error {
	if rr.Name == "" {
		return fmt.Errorf("record name must not be empty")
	}
	if rr.Type == 0 {
		return fmt.Errorf("invalid RRType: %d", rr.Type)
	}
	if !rr.Class.IsValid() {
		return fmt.Errorf("invalid RRClass: %d", rr.Class)
	}
	if rr.Data == nil {
		return fmt.Errorf("record data must be set")
	}
	if rr.Data.Type() != rr.Type {
		return fmt.Errorf("record type %s does not match data type %s", rr.Type, rr.Data.Type())
	}
	return nil
}

// CacheKey returns a cache key string derived from the record's name, type, and class.
func (rr ResourceRecord) CacheKey() string {
	return GenerateCacheKey(rr.Name, rr.Type, rr.Class)
}

// String renders the record as a single zone file line.
func (rr ResourceRecord) String() string {
	var sb strings.Builder
	sb.WriteString(rr.Name)
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(uint64(rr.TTL), 10))
	sb.WriteByte('\t')
	sb.WriteString(rr.Class.String())
	sb.WriteByte('\t')
	sb.WriteString(rr.Type.String())
	if rr.Data != nil {
		if text := rr.Data.String(); text != "" {
			sb.WriteByte('\t')
			sb.WriteString(text)
		}
	}
	return sb.String()
}
