// Package idgen hands out item and material ids
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces ids that are unique for its lifetime
type Generator interface {
	Generate() string
}

// UUIDGenerator produces prefix_<uuid v4> ids for stored items
type UUIDGenerator struct {
	prefix string
}

// NewUUID returns a UUIDGenerator. An empty prefix yields bare uuids.
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate implements Generator
func (g *UUIDGenerator) Generate() string {
	return join(g.prefix, uuid.NewString())
}

// SequentialGenerator produces prefix_1, prefix_2, ... so seeded simulations
// and tests see stable ids. Safe for concurrent use.
type SequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewSequential returns a SequentialGenerator starting at 1
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate implements Generator
func (g *SequentialGenerator) Generate() string {
	return join(g.prefix, strconv.FormatUint(g.next.Add(1), 10))
}

func join(prefix, body string) string {
	if prefix == "" {
		return body
	}
	return prefix + "_" + body
}
