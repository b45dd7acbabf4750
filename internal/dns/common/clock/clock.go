package clock

import (
	"sync"
	"time"
)

// Clock abstracts the wall clock so stores can stamp imports deterministically in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock, truncated to whole seconds in UTC so
// stamps survive a round trip through RFC 3339 text.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// MockClock is a manually driven Clock.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// Advance moves the clock by d, which may be negative.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.CurrentTime = c.CurrentTime.Add(d)
	c.mu.Unlock()
}
