package models

import "time"

// InvoiceLineItem is a structured billing line as stored upstream.
type InvoiceLineItem struct {
	TariffType     TariffType `json:"tariffType,omitempty" bson:"tariffType,omitempty"`
	CatalogName    string     `json:"catalogName,omitempty" bson:"catalogName,omitempty"`
	Code           string     `json:"code" bson:"code"`
	RefCode        string     `json:"refCode,omitempty" bson:"refCode,omitempty"`
	Description    string     `json:"description,omitempty" bson:"description,omitempty"`
	Quantity       float64    `json:"quantity" bson:"quantity"`
	Session        int        `json:"session,omitempty" bson:"session,omitempty"`
	DateOfService  *time.Time `json:"dateOfService,omitempty" bson:"dateOfService,omitempty"`
	ProviderGLN    string     `json:"providerGln,omitempty" bson:"providerGln,omitempty"`
	ResponsibleGLN string     `json:"responsibleGln,omitempty" bson:"responsibleGln,omitempty"`
	BodyLocation   string     `json:"bodyLocation,omitempty" bson:"bodyLocation,omitempty"`
	UnitPrice      float64    `json:"unitPrice" bson:"unitPrice"`
	Scale          float64    `json:"scale,omitempty" bson:"scale,omitempty"`
	Amount         float64    `json:"amount,omitempty" bson:"amount,omitempty"`
}

// Invoice is the structured billing record read model.
type Invoice struct {
	ID             string            `json:"id" bson:"_id"`
	PatientID      string            `json:"patientId" bson:"patientId"`
	InsurerID      string            `json:"insurerId,omitempty" bson:"insurerId,omitempty"`
	ProviderGLN    string            `json:"providerGln,omitempty" bson:"providerGln,omitempty"`
	InvoiceNumber  string            `json:"invoiceNumber,omitempty" bson:"invoiceNumber,omitempty"`
	InvoiceDate    *time.Time        `json:"invoiceDate,omitempty" bson:"invoiceDate,omitempty"`
	DueDate        *time.Time        `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	TreatmentStart *time.Time        `json:"treatmentStart,omitempty" bson:"treatmentStart,omitempty"`
	TreatmentEnd   *time.Time        `json:"treatmentEnd,omitempty" bson:"treatmentEnd,omitempty"`
	LawType        LawType           `json:"lawType,omitempty" bson:"lawType,omitempty"`
	BillingType    BillingType       `json:"billingType,omitempty" bson:"billingType,omitempty"`
	ReminderLevel  int               `json:"reminderLevel,omitempty" bson:"reminderLevel,omitempty"`
	AccidentRef    string            `json:"accidentRef,omitempty" bson:"accidentRef,omitempty"`
	CaseNumber     string            `json:"caseNumber,omitempty" bson:"caseNumber,omitempty"`
	Total          float64           `json:"total,omitempty" bson:"total,omitempty"`
	Currency       string            `json:"currency,omitempty" bson:"currency,omitempty"`
	LineItems      []InvoiceLineItem `json:"lineItems,omitempty" bson:"lineItems,omitempty"`
	Diagnoses      []Diagnosis       `json:"diagnoses,omitempty" bson:"diagnoses,omitempty"`
	// RecordID links to the legacy clinical record the invoice was opened
	// from, when any.
	RecordID  string `json:"recordId,omitempty" bson:"recordId,omitempty"`
	TimeModel `json:",inline" bson:",inline"`
}

// Record is the legacy free-text clinical record read model. It carries no
// structured line items; a consultation duration may be parsed out of its
// content.
type Record struct {
	ID          string     `json:"id" bson:"_id"`
	PatientID   string     `json:"patientId" bson:"patientId"`
	ProviderGLN string     `json:"providerGln,omitempty" bson:"providerGln,omitempty"`
	Date        *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Content     string     `json:"content,omitempty" bson:"content,omitempty"`
	// DurationMinutes is set when the consultation duration was captured
	// explicitly; zero means "parse it from Content".
	DurationMinutes int    `json:"durationMinutes,omitempty" bson:"durationMinutes,omitempty"`
	LawType         LawType `json:"lawType,omitempty" bson:"lawType,omitempty"`
	TimeModel       `json:",inline" bson:",inline"`
}
