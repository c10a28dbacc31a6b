package responses

// LineSummary is the display form of one service line.
type LineSummary struct {
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// SubmissionSummary is the caller-facing result of one pipeline run.
type SubmissionSummary struct {
	SubmissionID          string        `json:"submission_id"`
	InvoiceNumber         string        `json:"invoice_number"`
	Status                string        `json:"status"`
	Transmitted           bool          `json:"transmitted"`
	TransmissionReference string        `json:"transmission_reference,omitempty"`
	TransmissionError     string        `json:"transmission_error,omitempty"`
	DocumentGenerated     bool          `json:"document_generated"`
	PDFGenerated          bool          `json:"pdf_generated"`
	Total                 float64       `json:"total"`
	Currency              string        `json:"currency"`
	Lines                 []LineSummary `json:"lines"`
}

// InboundResponseResult reports what an inbound clearinghouse response did
// to its correlated submission.
type InboundResponseResult struct {
	SubmissionID  string `json:"submission_id"`
	InvoiceNumber string `json:"invoice_number"`
	Outcome       string `json:"outcome"`
	StatusChanged bool   `json:"status_changed"`
	AlreadyFinal  bool   `json:"already_final"`
	Duplicate     bool   `json:"duplicate"`
	Explanation   string `json:"explanation,omitempty"`
}
