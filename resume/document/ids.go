package document

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces unique item ids. Implementations must never repeat a value.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// CounterGenerator issues monotonically increasing ids with a fixed prefix.
type CounterGenerator struct {
	Prefix string
	next   atomic.Uint64
}

// NewCounterGenerator returns a counter starting at 1.
func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{Prefix: prefix}
}

// NewID returns the next id in sequence.
func (g *CounterGenerator) NewID() string {
	return g.Prefix + strconv.FormatUint(g.next.Add(1), 10)
}
