package models

import "time"

// Record is one archived analysis: the file metadata, an optional preview
// data URL, and the verdict the detector returned for it.
//
// Preview may be empty when the record was persisted in degraded form to fit
// the storage budget; everything else survives degradation intact.
type Record struct {
	Id          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Preview     string    `json:"preview,omitempty"`
	Verdict     Verdict   `json:"verdict"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	c := *r
	c.Verdict = *r.Verdict.Clone()
	return c
}
