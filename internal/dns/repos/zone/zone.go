// Package zone loads DNS zone files written as YAML, JSON or TOML documents
// and converts their presentation values into typed resource records.
//
// A zone file names its origin and maps owner labels to record types:
//
//	zone_root: example.com
//	ttl: 3600            # optional, overrides the loader default
//	"@":
//	  SOA: "ns1.example.com. hostmaster.example.com. 2021070101 7200 3600 1209600 300"
//	  CSYNC: "2021070101 3 A NS AAAA"
//	www:
//	  A: ["192.0.2.1", "192.0.2.2"]
package zone

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/haukened/rr-codec/internal/dns/common/rrdata"
	"github.com/haukened/rr-codec/internal/dns/common/utils"
	"github.com/haukened/rr-codec/internal/dns/domain"
)

const (
	rootKey = "zone_root"
	ttlKey  = "ttl"
	// keyDelim must never occur in an owner name; koanf would otherwise
	// split "www.sub" into nested keys.
	keyDelim = "/"
)

var (
	ErrMissingZoneRoot  = errors.New("missing 'zone_root'")
	ErrNotAllowedInZone = errors.New("record type not allowed in zone files")
)

// LoadZoneDirectory walks dir, loading every supported zone file, and returns
// the records grouped by canonical zone root. Files with other extensions are
// skipped. Any invalid file fails the whole load.
func LoadZoneDirectory(dir string, defaultTTL time.Duration) (map[string][]domain.ResourceRecord, error) {
	zones := make(map[string][]domain.ResourceRecord)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		zoneRoot, zoneRecords, err := loadZoneFileWithRoot(path, defaultTTL)
		if err != nil {
			return fmt.Errorf("error parsing zone file %s: %w", path, err)
		}
		if zoneRoot != "" && len(zoneRecords) > 0 {
			zones[zoneRoot] = append(zones[zoneRoot], zoneRecords...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zones, nil
}

// expandName returns the fully qualified domain name for a label, expanding '@' to the root,
// and appending the root if the label is not already absolute.
func expandName(label, root string) string {
	if label == "@" {
		return root
	}
	if strings.HasSuffix(label, ".") {
		return label
	}
	return label + "." + root
}

// toStringValues converts a raw koanf-parsed value (string or []any of strings) into a slice of
// non-empty strings. Anything else yields nil and the entry is skipped.
func toStringValues(val any) []string {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			out = append(out, s)
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

// buildResourceRecords creates one record per presentation value. Each value
// is tokenised on whitespace, parsed by the rdata codec of rrType and rendered
// to wire form once, so errors only visible on output (such as an unknown
// mnemonic in a type bit map) surface at load time.
func buildResourceRecords(fqdn string, rrType string, values []string, ttl uint32) ([]domain.ResourceRecord, error) {
	rType, err := domain.ParseRRType(rrType)
	if err != nil {
		return nil, err
	}
	if rType.IsMetaType() {
		return nil, fmt.Errorf("%w: %s", ErrNotAllowedInZone, rType)
	}
	records := make([]domain.ResourceRecord, 0, len(values))
	for _, s := range values {
		data, err := rrdata.ParseText(rType, strings.Fields(s))
		if err != nil {
			return nil, fmt.Errorf("%s %s %q: %w", fqdn, rType, s, err)
		}
		if _, _, err := data.Pack(nil); err != nil {
			return nil, fmt.Errorf("%s %s %q: %w", fqdn, rType, s, err)
		}
		rr, err := domain.NewResourceRecord(fqdn, domain.RRClassIN, ttl, data)
		if err != nil {
			return nil, err
		}
		records = append(records, rr)
	}
	return records, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return nil
	}
}

// loadZoneFileWithRoot loads a single zone file and returns its canonical root
// and records in owner then type order. Unsupported extensions yield no root.
func loadZoneFileWithRoot(path string, defaultTTL time.Duration) (string, []domain.ResourceRecord, error) {
	parser := parserFor(path)
	if parser == nil {
		return "", nil, nil
	}

	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return "", nil, fmt.Errorf("failed to load zone file %s: %w", path, err)
	}

	root := utils.CanonicalDNSName(k.String(rootKey))
	if root == "" {
		return "", nil, fmt.Errorf("zone file %s: %w", path, ErrMissingZoneRoot)
	}

	ttl := uint32(defaultTTL / time.Second)
	if k.Exists(ttlKey) {
		v := k.Int64(ttlKey)
		if v <= 0 || v > 1<<31-1 {
			return "", nil, fmt.Errorf("zone file %s: invalid ttl %q", path, k.String(ttlKey))
		}
		ttl = uint32(v)
	}

	raw := k.Raw()
	owners := make([]string, 0, len(raw))
	for name := range raw {
		if name != rootKey && name != ttlKey {
			owners = append(owners, name)
		}
	}
	sort.Strings(owners)

	var records []domain.ResourceRecord
	for _, name := range owners {
		rawMap, ok := raw[name].(map[string]any)
		if !ok {
			continue
		}
		fqdn := utils.CanonicalDNSName(expandName(name, root))
		types := make([]string, 0, len(rawMap))
		for rrType := range rawMap {
			types = append(types, rrType)
		}
		sort.Strings(types)
		for _, rrType := range types {
			values := toStringValues(rawMap[rrType])
			if len(values) == 0 {
				continue
			}
			recs, err := buildResourceRecords(fqdn, rrType, values, ttl)
			if err != nil {
				return "", nil, fmt.Errorf("invalid record in %s: %w", path, err)
			}
			records = append(records, recs...)
		}
	}
	return root, records, nil
}
