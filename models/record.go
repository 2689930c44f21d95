package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// apiTimeLayouts lists the timestamp formats the web API is known to emit.
// The first layout is also used when rendering timestamps back into filters.
var apiTimeLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Record is one syncable entity as exchanged with the remote web API.
// Identity is UID (server-format id, globally unique). Everything
// type-specific lives untouched in Body; only the envelope fields needed by
// the sync engine are lifted out during decoding.
type Record struct {
	// Resource names the collection the record belongs to (e.g. "programs").
	// It is populated locally and never travels on the wire.
	Resource string `json:"-"`

	UID         string    `json:"id"`
	LastUpdated time.Time `json:"lastUpdated"`

	// Deleted marks the record as a server-side tombstone. The applier keeps
	// the local row and flips its deleted flag instead of removing it.
	Deleted bool `json:"deleted"`

	// Synced reports whether the record is known to the server. Locally
	// created or mutated records carry Synced=false until a push succeeds.
	Synced bool `json:"-"`

	// Body is the record exactly as received (or as it should be submitted),
	// including any nested child collections.
	Body json.RawMessage `json:"-"`
}

// recordEnvelope is the subset of wire fields the engine interprets.
type recordEnvelope struct {
	UID         string `json:"id"`
	LastUpdated string `json:"lastUpdated"`
	Deleted     bool   `json:"deleted"`
}

// UnmarshalJSON decodes the envelope fields and retains the full raw body so
// type-specific fields and nested children survive a round trip untouched.
func (r *Record) UnmarshalJSON(data []byte) error {
	var env recordEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode record envelope: %w", err)
	}

	if env.UID == "" {
		return fmt.Errorf("record has no id")
	}

	var lastUpdated time.Time
	if env.LastUpdated != "" {
		parsed, err := ParseAPITime(env.LastUpdated)
		if err != nil {
			return fmt.Errorf("record %s: %w", env.UID, err)
		}
		lastUpdated = parsed
	}

	r.UID = env.UID
	r.LastUpdated = lastUpdated
	r.Deleted = env.Deleted
	r.Body = append(r.Body[:0], data...)

	return nil
}

// MarshalJSON emits the retained raw body when present, so a record fetched
// from the server or built locally is submitted byte-for-byte. Records
// without a body fall back to the envelope fields.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Body) > 0 {
		return r.Body, nil
	}

	env := recordEnvelope{UID: r.UID, Deleted: r.Deleted}
	if !r.LastUpdated.IsZero() {
		env.LastUpdated = FormatAPITime(r.LastUpdated)
	}
	return json.Marshal(env)
}

// ParseAPITime parses a timestamp in any of the formats the web API emits.
func ParseAPITime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}

// FormatAPITime renders t the way the web API expects it in filter values.
func FormatAPITime(t time.Time) string {
	return t.UTC().Format(apiTimeLayouts[0])
}
