package models

import "time"

// FailureKind distinguishes a server-side rejection from a channel failure.
type FailureKind string

const (
	// FailureRejected marks a well-formed server response with ERROR status.
	FailureRejected FailureKind = "rejected"
	// FailureTransport marks a network/IO error while submitting.
	FailureTransport FailureKind = "transport"
)

// FailedItem is one unresolved push failure, keyed by (ItemType, ItemID).
// At most one live row exists per key: a later failure overwrites it, a later
// successful push of the same item removes it.
type FailedItem struct {
	ItemType  string
	ItemID    string
	Kind      FailureKind
	ErrorCode *int
	ErrorBody string
	CreatedAt time.Time
}
