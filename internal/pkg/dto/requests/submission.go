package requests

// SubmitInvoiceOverrides are caller-supplied values that win over every
// stored source during assembly. All fields are optional.
type SubmitInvoiceOverrides struct {
	InvoiceNumber   string `json:"invoice_number,omitempty" validate:"omitempty,max=35"`
	InvoiceDate     string `json:"invoice_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate         string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LawType         string `json:"law_type,omitempty" validate:"omitempty,oneof=kvg uvg other"`
	BillingType     string `json:"billing_type,omitempty" validate:"omitempty,oneof=TP TG"`
	ReminderLevel   *int   `json:"reminder_level,omitempty" validate:"omitempty,gte=0"`
	AccidentRef     string `json:"accident_ref,omitempty" validate:"omitempty,max=35"`
	CaseNumber      string `json:"case_number,omitempty" validate:"omitempty,max=35"`
	DurationMinutes int    `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
}

// SubmitInvoice starts the submission pipeline for one source record.
// InvoiceID and RecordID are mutually exclusive; the controller sets one
// from the URL.
type SubmitInvoice struct {
	InvoiceID string                 `json:"-" validate:"required_without=RecordID"`
	RecordID  string                 `json:"-" validate:"required_without=InvoiceID"`
	PatientID string                 `json:"patient_id" validate:"required"`
	Overrides SubmitInvoiceOverrides `json:"overrides"`
}
