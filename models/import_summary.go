package models

// ImportStatus is the server-reported outcome class for one submitted record.
type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "SUCCESS"
	ImportStatusOK      ImportStatus = "OK"
	ImportStatusError   ImportStatus = "ERROR"
	ImportStatusWarning ImportStatus = "WARNING"
)

// ImportSummary is the per-record result of a submit operation. Reference
// correlates the summary back to the submitted record's UID.
type ImportSummary struct {
	Status      ImportStatus `json:"status"`
	Reference   string       `json:"reference"`
	Description string       `json:"description,omitempty"`
	HTTPCode    int          `json:"httpStatusCode,omitempty"`
}

// Accepted reports whether the server stored the record (SUCCESS or OK).
func (s ImportSummary) Accepted() bool {
	return s.Status == ImportStatusSuccess || s.Status == ImportStatusOK
}

// Rejected reports whether the server refused the record outright. WARNING is
// neither accepted nor rejected and leaves local state untouched.
func (s ImportSummary) Rejected() bool {
	return s.Status == ImportStatusError
}

// ImportResponse wraps the summaries returned by a batch submit call.
type ImportResponse struct {
	Status          ImportStatus    `json:"status,omitempty"`
	ImportSummaries []ImportSummary `json:"importSummaries"`
}
