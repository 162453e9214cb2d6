package ids

import (
	"strings"

	"github.com/google/uuid"
)

// Generator produces opaque, collision-resistant identifiers. Consumers must
// not assume any structure in the returned values.
type Generator interface {
	NewID() string
}

// UUIDGenerator implements Generator with 128-bit random UUIDs

type UUIDGenerator struct{}

func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new random identifier
func (g *UUIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
