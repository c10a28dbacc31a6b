package models

import "time"

type SubmissionStatus string

const (
	SubmissionStatusDraft    SubmissionStatus = "draft"
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusAccepted SubmissionStatus = "accepted"
	SubmissionStatusRejected SubmissionStatus = "rejected"
	SubmissionStatusError    SubmissionStatus = "error"
)

// IsTerminal reports whether the status can never change again.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusAccepted || s == SubmissionStatusRejected
}

// CanTransitionTo encodes the state machine draft -> pending -> {accepted,
// rejected}; error is a sink reachable from draft or pending only. A
// no-change "transition" is allowed for draft (failed uploads are audited
// without a state change).
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	if s.IsTerminal() || s == SubmissionStatusError {
		return false
	}
	switch s {
	case SubmissionStatusDraft:
		return next == SubmissionStatusDraft || next == SubmissionStatusPending || next == SubmissionStatusError
	case SubmissionStatusPending:
		return next == SubmissionStatusAccepted || next == SubmissionStatusRejected || next == SubmissionStatusError
	}
	return false
}

// Submission is the unit of clearinghouse interaction. It is created when
// document generation succeeds and is never deleted.
type Submission struct {
	ID               string           `json:"id" bson:"_id"`
	InvoiceID        string           `json:"invoiceId" bson:"invoiceId"`
	PatientID        string           `json:"patientId" bson:"patientId"`
	InsurerID        string           `json:"insurerId" bson:"insurerId"`
	InvoiceNumber    string           `json:"invoiceNumber" bson:"invoiceNumber"`
	InvoiceDate      time.Time        `json:"invoiceDate" bson:"invoiceDate"`
	Amount           float64          `json:"amount" bson:"amount"`
	BillingType      BillingType      `json:"billingType" bson:"billingType"`
	LawType          LawType          `json:"lawType" bson:"lawType"`
	SenderGLN        string           `json:"senderGln" bson:"senderGln"`
	ReceiverGLN      string           `json:"receiverGln" bson:"receiverGln"`
	GeneratedContent string           `json:"-" bson:"generatedContent"`
	ContentVersion   string           `json:"contentVersion" bson:"contentVersion"`
	Status           SubmissionStatus `json:"status" bson:"status"`
	MessageID        string           `json:"messageId,omitempty" bson:"messageId,omitempty"`
	ResponseCode     string           `json:"responseCode,omitempty" bson:"responseCode,omitempty"`
	TransmittedAt    *time.Time       `json:"transmittedAt,omitempty" bson:"transmittedAt,omitempty"`
	TimeModel        `json:",inline" bson:",inline"`
}
