package models

import "database/sql"

// Watermark holds the timestamp of the last successfully committed pull for
// one resource type. LastSynced is invalid before the first pull and only
// ever moves forward, always to a server-provided response time.
type Watermark struct {
	Resource   string
	LastSynced sql.NullTime
}
