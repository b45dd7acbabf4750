package bloom

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/haukened/rr-codec/internal/dns/repos/recordstore"
)

// defaultFPRate is used when a caller passes a rate outside (0, 1).
const defaultFPRate = 0.01

// factory implements recordstore.BloomFactory using the library's estimator.
type factory struct{}

// NewFactory returns a BloomFactory that sizes filters from capacity and FP rate.
func NewFactory() recordstore.BloomFactory { return factory{} }

// New constructs a filter sized for capacity keys at fpRate false positives.
// A zero capacity is treated as one so the filter is always usable.
func (factory) New(capacity uint64, fpRate float64) recordstore.BloomFilter {
	if capacity == 0 {
		capacity = 1
	}
	if !(fpRate > 0 && fpRate < 1) {
		fpRate = defaultFPRate
	}
	return &filter{bf: bitsbloom.NewWithEstimates(uint(capacity), fpRate)}
}
