package entity

import (
	"time"
)

// IdempotencyKey stores a processed request so retries replay the first response
type IdempotencyKey struct {
	Key          string // The idempotency key from client
	Scope        string // Client the key belongs to
	Endpoint     string // API endpoint (e.g., "POST /api/transactions")
	Pending      bool // Request is still being handled, no response yet
	ResponseCode int
	ResponseBody string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return i.IsExpiredAt(time.Now())
}

// IsExpiredAt checks expiry against a given instant
func (i *IdempotencyKey) IsExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
