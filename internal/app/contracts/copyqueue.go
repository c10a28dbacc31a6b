package contracts

import "context"

// PatientCopyJob asks the copy worker to regenerate a submission's document
// with the copy subtype and deliver it. Failures stay inside the worker.
type PatientCopyJob struct {
	ID           string `json:"id"`
	SubmissionID string `json:"submission_id"`
	InvoiceID    string `json:"invoice_id"`
	RecordID     string `json:"record_id,omitempty"`
	PatientID    string `json:"patient_id"`
	Filename     string `json:"filename"`
	FailedCount  int    `json:"failed_count"`
}

// CopyDispatcher enqueues patient-copy jobs. Dispatch failures are logged by
// the caller and never affect the primary submission.
type CopyDispatcher interface {
	Dispatch(ctx context.Context, job PatientCopyJob) error
}
