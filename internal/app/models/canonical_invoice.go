package models

import "time"

type LawType string

const (
	LawTypeHealth   LawType = "kvg"
	LawTypeAccident LawType = "uvg"
	LawTypeOther    LawType = "other"
)

type BillingType string

const (
	// BillingTypeTP bills the patient directly ("tiers patient").
	BillingTypeTP BillingType = "TP"
	// BillingTypeTG bills via the third-party payer; TG invoices must never
	// be transmitted to the insurer directly.
	BillingTypeTG BillingType = "TG"
)

// Party identifies one billing party and its postal address.
type Party struct {
	GLN        string `json:"gln"`
	Name       string `json:"name"`
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
	Street     string `json:"street"`
	ZIP        string `json:"zip"`
	City       string `json:"city"`
	Canton     string `json:"canton,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// PatientParty extends Party with the personal fields the wire format requires.
type PatientParty struct {
	Party     `json:",inline"`
	BirthDate time.Time `json:"birthDate"`
	Sex       string    `json:"sex"`
	SSN       string    `json:"ssn"`
}

type Diagnosis struct {
	CodeSystem string `json:"codeSystem"`
	Code       string `json:"code"`
}

// Routing carries the computed transport identifiers. It is populated by the
// transport router only, never by the caller.
type Routing struct {
	SenderGLN       string `json:"senderGln"`
	ReceiverGLN     string `json:"receiverGln"`
	IntermediateGLN string `json:"intermediateGln"`
}

// CanonicalInvoice is the pipeline's central value object. Once handed to the
// document engine it is treated as immutable; corrections require a new
// canonical invoice and, if already submitted, a new submission.
type CanonicalInvoice struct {
	InvoiceNumber  string    `json:"invoiceNumber"`
	InvoiceDate    time.Time `json:"invoiceDate"`
	DueDate        time.Time `json:"dueDate"`
	TreatmentStart time.Time `json:"treatmentStart"`
	TreatmentEnd   time.Time `json:"treatmentEnd"`

	Biller   Party        `json:"biller"`
	Provider Party        `json:"provider"`
	Insurer  Party        `json:"insurer"`
	Patient  PatientParty `json:"patient"`

	LawType       LawType     `json:"lawType"`
	BillingType   BillingType `json:"billingType"`
	ReminderLevel int         `json:"reminderLevel"`
	AccidentRef   string      `json:"accidentRef,omitempty"`
	CaseNumber    string      `json:"caseNumber,omitempty"`

	Lines     []ServiceLine `json:"lines"`
	Diagnoses []Diagnosis   `json:"diagnoses,omitempty"`

	// Total is the explicit upstream total when one was supplied; zero means
	// "derive from line amounts".
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`

	Routing Routing `json:"routing"`
}

// EffectiveTotal returns the explicit total when supplied, else the sum of
// the line amounts.
func (ci *CanonicalInvoice) EffectiveTotal() float64 {
	if ci.Total != 0 {
		return ci.Total
	}
	return ci.LineTotal()
}

// LineTotal sums the line amounts.
func (ci *CanonicalInvoice) LineTotal() float64 {
	var total float64
	for _, line := range ci.Lines {
		total += line.Amount
	}
	return total
}
