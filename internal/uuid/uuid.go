// uuid wraps ID generation behind an interface so tests can use
// deterministic generators.
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique IDs.
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements Generator using Google's UUID package.
type GoogleUUIDGenerator struct{}

// New generates a new UUID string.
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator.
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// PrefixedGenerator prepends a fixed prefix to generated IDs, e.g.
// "char_550e8400-...". Useful when IDs from several entity kinds share a
// keyspace.
type PrefixedGenerator struct {
	prefix string
	inner  Generator
}

// NewPrefixed creates a PrefixedGenerator around the default UUID generator.
func NewPrefixed(prefix string) *PrefixedGenerator {
	return &PrefixedGenerator{prefix: prefix, inner: NewGoogleUUIDGenerator()}
}

// New generates a prefixed unique ID.
func (g *PrefixedGenerator) New() string {
	return fmt.Sprintf("%s_%s", g.prefix, g.inner.New())
}
