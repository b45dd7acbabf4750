package bolt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"time"

	bbolt "go.etcd.io/bbolt"
	bberrors "go.etcd.io/bbolt/errors"

	"github.com/haukened/rr-codec/internal/dns/common/clock"
	"github.com/haukened/rr-codec/internal/dns/common/utils"
	"github.com/haukened/rr-codec/internal/dns/domain"
	"github.com/haukened/rr-codec/internal/dns/gateways/wire"
	"github.com/haukened/rr-codec/internal/dns/repos/recordstore"
)

var (
	bucketRecords = []byte("records")
	bucketZones   = []byte("zones")
	bucketMeta    = []byte("meta")

	metaVersion = []byte("version")
	metaUpdated = []byte("updated")

	present = []byte{1}
)

// ErrZoneNotFound is returned by DeleteZone for a zone that was never stored.
var ErrZoneNotFound = errors.New("zone not found")

// Record keys are owner || 0x00 || type (2 octets) || sequence (8 octets),
// so all records of an owner, and of an owner and type, share a key prefix.
// Values are single records in wire form. Each zone has a nested bucket in
// "zones" listing the record keys it owns.
const ownerSep = 0x00

// boltStore implements recordstore.Store using bbolt.
type boltStore struct {
	db    *bbolt.DB
	clock clock.Clock
}

// New opens (or creates) a Bolt database at path and ensures buckets exist.
// clk stamps the "updated" metadata on every write.
func New(path string, clk clock.Clock) (recordstore.Store, error) {
	if clk == nil {
		clk = clock.RealClock{}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketZones, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db: db, clock: clk}, nil
}

func (s *boltStore) Close() error { return s.db.Close() }

func ownerPrefix(name string) []byte {
	p := make([]byte, 0, len(name)+1)
	p = append(p, name...)
	return append(p, ownerSep)
}

func typePrefix(name string, t domain.RRType) []byte {
	return binary.BigEndian.AppendUint16(ownerPrefix(name), uint16(t))
}

// ReplaceAll drops every stored zone and writes zones in one transaction.
func (s *boltStore) ReplaceAll(zones map[string][]domain.ResourceRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketZones} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bberrors.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		roots := make([]string, 0, len(zones))
		for root := range zones {
			roots = append(roots, root)
		}
		sort.Strings(roots)
		for _, root := range roots {
			if err := putZone(tx, root, zones[root]); err != nil {
				return err
			}
		}
		return s.touch(tx)
	})
}

// PutZone replaces the records of a single zone atomically.
func (s *boltStore) PutZone(root string, records []domain.ResourceRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := putZone(tx, root, records); err != nil {
			return err
		}
		return s.touch(tx)
	})
}

func (s *boltStore) DeleteZone(root string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		cr := utils.CanonicalDNSName(root)
		if tx.Bucket(bucketZones).Bucket([]byte(cr)) == nil {
			return fmt.Errorf("%w: %s", ErrZoneNotFound, cr)
		}
		if err := dropZone(tx, cr); err != nil {
			return err
		}
		return s.touch(tx)
	})
}

// putZone drops the previous contents of root and writes records under it.
func putZone(tx *bbolt.Tx, root string, records []domain.ResourceRecord) error {
	cr := utils.CanonicalDNSName(root)
	if cr == "" {
		return errors.New("zone root must not be empty")
	}
	if err := dropZone(tx, cr); err != nil {
		return err
	}
	index, err := tx.Bucket(bucketZones).CreateBucket([]byte(cr))
	if err != nil {
		return err
	}
	recs := tx.Bucket(bucketRecords)
	for _, rr := range records {
		owner := utils.CanonicalDNSName(rr.Name)
		rr.Name = owner
		val, err := wire.EncodeRecord(rr)
		if err != nil {
			return fmt.Errorf("zone %s: %s %s: %w", cr, owner, rr.Type, err)
		}
		seq, err := recs.NextSequence()
		if err != nil {
			return err
		}
		key := binary.BigEndian.AppendUint64(typePrefix(owner, rr.Type), seq)
		if err := recs.Put(key, val); err != nil {
			return err
		}
		if err := index.Put(key, present); err != nil {
			return err
		}
	}
	return nil
}

// dropZone removes root's records and index. Missing zones are a no-op.
func dropZone(tx *bbolt.Tx, root string) error {
	zones := tx.Bucket(bucketZones)
	index := zones.Bucket([]byte(root))
	if index == nil {
		return nil
	}
	recs := tx.Bucket(bucketRecords)
	if err := index.ForEach(func(k, _ []byte) error {
		return recs.Delete(k)
	}); err != nil {
		return err
	}
	return zones.DeleteBucket([]byte(root))
}

// touch bumps the version and stamps the update time.
func (s *boltStore) touch(tx *bbolt.Tx) error {
	meta := tx.Bucket(bucketMeta)
	var version uint64
	if v := meta.Get(metaVersion); len(v) == 8 {
		version = binary.BigEndian.Uint64(v)
	}
	if err := meta.Put(metaVersion, binary.BigEndian.AppendUint64(nil, version+1)); err != nil {
		return err
	}
	return meta.Put(metaUpdated, binary.BigEndian.AppendUint64(nil, uint64(s.clock.Now().Unix())))
}

// Lookup returns the records stored for name and rrtype in insertion order.
// RRTypeANY returns every type, ordered by type code.
func (s *boltStore) Lookup(name string, rrtype domain.RRType) ([]domain.ResourceRecord, error) {
	cn := utils.CanonicalDNSName(name)
	prefix := typePrefix(cn, rrtype)
	if rrtype == domain.RRTypeANY {
		prefix = ownerPrefix(cn)
	}
	var out []domain.ResourceRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRecords).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			rr, err := wire.DecodeRecord(v)
			if err != nil {
				return fmt.Errorf("corrupt record %x: %w", k, err)
			}
			out = append(out, rr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Zones lists stored zone roots in key order.
func (s *boltStore) Zones() ([]string, error) {
	var roots []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketZones).ForEach(func(k, _ []byte) error {
			roots = append(roots, string(k))
			return nil
		})
	})
	return roots, err
}

func (s *boltStore) VisitOwners(visit func(name string) bool) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRecords).Cursor()
		var last []byte
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			i := bytes.IndexByte(k, ownerSep)
			if i < 0 {
				continue
			}
			if last != nil && bytes.Equal(last, k[:i]) {
				continue
			}
			last = append(last[:0], k[:i]...)
			if !visit(string(last)) {
				return nil
			}
		}
		return nil
	})
}

func (s *boltStore) Stats() recordstore.StoreStats {
	st := recordstore.StoreStats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketRecords); b != nil {
			st.Records = uint64(b.Stats().KeyN)
		}
		if b := tx.Bucket(bucketZones); b != nil {
			_ = b.ForEach(func(_, _ []byte) error {
				st.Zones++
				return nil
			})
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get(metaVersion); len(v) == 8 {
				st.Version = binary.BigEndian.Uint64(v)
			}
			if v := b.Get(metaUpdated); len(v) == 8 {
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	return st
}

var _ recordstore.Store = (*boltStore)(nil)
