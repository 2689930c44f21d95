package models

import "time"

// PullResult summarizes one committed pull cycle.
type PullResult struct {
	Resource string
	// Fetched is the number of top-level records applied (children excluded).
	Fetched int
	// ServerTime is the response date the watermark was advanced to.
	ServerTime time.Time
}

// ItemState is the terminal state of one pushed record within a push cycle.
type ItemState string

const (
	ItemSynced ItemState = "synced"
	ItemFailed ItemState = "failed"
	// ItemSkipped covers WARNING outcomes: neither synced nor recorded as
	// failed, the record stays dirty and eligible for the next cycle.
	ItemSkipped ItemState = "skipped"
)

// ItemResult is the per-record outcome of a push cycle. Details of failures
// stay queryable in the failure ledger; Description is informational only.
type ItemResult struct {
	UID         string
	State       ItemState
	Description string
}

// Outcome is the caller-visible aggregate result of a pull or push cycle.
type Outcome string

const (
	OutcomeSucceeded       Outcome = "succeeded"
	OutcomePartiallyFailed Outcome = "partially failed"
	OutcomeFailed          Outcome = "failed"
)

// PushReport collects the per-item outcomes of one push cycle.
type PushReport struct {
	Resource string
	Items    []ItemResult
}

// Outcome folds the per-item states into the aggregate classification.
// An empty cycle counts as succeeded.
func (r PushReport) Outcome() Outcome {
	failed := 0
	for _, item := range r.Items {
		if item.State == ItemFailed {
			failed++
		}
	}

	switch {
	case failed == 0:
		return OutcomeSucceeded
	case failed == len(r.Items):
		return OutcomeFailed
	default:
		return OutcomePartiallyFailed
	}
}

// Synced counts items accepted by the server this cycle.
func (r PushReport) Synced() int {
	n := 0
	for _, item := range r.Items {
		if item.State == ItemSynced {
			n++
		}
	}
	return n
}

// Failed counts items that ended the cycle in the failure ledger.
func (r PushReport) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.State == ItemFailed {
			n++
		}
	}
	return n
}
