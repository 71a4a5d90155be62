package models

import "time"

// Audit carries the bookkeeping columns shared by every entity: creation and
// modification stamps, the acting users, the originating transaction, a use
// status, and free-form reason/transform annotations.
type Audit struct {
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	CreatedBy        string    `json:"created_by,omitempty"`
	UpdatedBy        string    `json:"updated_by,omitempty"`
	TID              string    `json:"tid,omitempty"`
	UseStatus        UseStatus `json:"use_status"`
	ReasonCode       string    `json:"reason_code,omitempty"`
	TransformComment string    `json:"transform_comment,omitempty"`
}

// Touch sets timestamps and defaults for a newly created record.
func (a *Audit) Touch(now time.Time) {
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.UseStatus == "" {
		a.UseStatus = StatusUsable
	}
}
