package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Submission-related messages
	SubmitInvoiceSuccessMessage        = "invoice submitted successfully"
	RetransmitSubmissionSuccessMessage = "submission retransmitted successfully"
	GetSubmissionSuccessMessage        = "get submission successfully"
	GetSubmissionHistorySuccessMessage = "get submission history successfully"

	// Response-related messages
	ApplyResponseSuccessMessage = "clearinghouse response applied successfully"
)
