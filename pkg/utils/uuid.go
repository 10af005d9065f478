package utils

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator issues record identifiers. IDs are UUIDv7 strings, so they are
// unique and sort lexically in issue order within a process.
type IDGenerator struct {
	mu   sync.Mutex
	last string
}

// NewIDGenerator creates a new id generator
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next identifier. It panics only if the system random
// source is broken, same as uuid.New.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := uuid.Must(uuid.NewV7()).String()
	// ids must be strictly increasing
	for id <= g.last {
		id = uuid.Must(uuid.NewV7()).String()
	}
	g.last = id
	return id
}

// NewRequestID generates a random request identifier
func NewRequestID() string {
	return uuid.New().String()
}

// ShortID returns the first 8 characters of an id, for log prefixes
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return strings.ToLower(id[:8])
}
