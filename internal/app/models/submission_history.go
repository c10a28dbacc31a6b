package models

import "time"

// SubmissionHistoryEntry is an immutable audit row. Exactly one entry is
// appended per lifecycle operation, including operations that leave the
// status unchanged.
type SubmissionHistoryEntry struct {
	ID             string            `json:"id" bson:"_id"`
	SubmissionID   string            `json:"submissionId" bson:"submissionId"`
	PreviousStatus *SubmissionStatus `json:"previousStatus" bson:"previousStatus"`
	NewStatus      SubmissionStatus  `json:"newStatus" bson:"newStatus"`
	ResponseCode   string            `json:"responseCode,omitempty" bson:"responseCode,omitempty"`
	Note           string            `json:"note" bson:"note"`
	// Actor is nil for system-initiated transitions.
	Actor     *string   `json:"actor" bson:"actor"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
