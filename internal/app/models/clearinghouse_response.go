package models

import "time"

type ResponseOutcome string

const (
	ResponseOutcomeAccepted ResponseOutcome = "accepted"
	ResponseOutcomeRejected ResponseOutcome = "rejected"
	ResponseOutcomePending  ResponseOutcome = "pending"
)

// ResponseAddress is the decomposed address extracted from a party block.
type ResponseAddress struct {
	GivenName   string `json:"givenName,omitempty"`
	FamilyName  string `json:"familyName,omitempty"`
	Salutation  string `json:"salutation,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Street      string `json:"street,omitempty"`
	ZIP         string `json:"zip,omitempty"`
	City        string `json:"city,omitempty"`
}

type ResponseParty struct {
	GLN     string          `json:"gln"`
	Address ResponseAddress `json:"address"`
}

type ResponsePatient struct {
	SSN       string          `json:"ssn,omitempty"`
	BirthDate string          `json:"birthDate,omitempty"`
	Gender    string          `json:"gender,omitempty"`
	Address   ResponseAddress `json:"address"`
}

type ResponseError struct {
	Code       string `json:"code"`
	Text       string `json:"text"`
	ErrorValue string `json:"errorValue,omitempty"`
	ValidValue string `json:"validValue,omitempty"`
}

type ResponseMessage struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type ResponseStatusBlock struct {
	Explanation string `json:"explanation"`
	StatusIn    string `json:"statusIn,omitempty"`
	StatusOut   string `json:"statusOut,omitempty"`
}

type AcceptedBlock struct {
	ResponseStatusBlock `json:",inline"`
}

type RejectedBlock struct {
	ResponseStatusBlock `json:",inline"`
	Errors              []ResponseError `json:"errors"`
}

type PendingBlock struct {
	ResponseStatusBlock `json:",inline"`
	Messages            []ResponseMessage `json:"messages"`
}

type ResponseBalance struct {
	Amount     float64 `json:"amount"`
	AmountDue  float64 `json:"amountDue"`
	AmountPaid float64 `json:"amountPaid"`
	Currency   string  `json:"currency"`
}

type ResponseInvoiceRef struct {
	ID   string `json:"id"`
	Date string `json:"date,omitempty"`
}

// ClearinghouseResponse is the decoded asynchronous response. At most one of
// Accepted / Rejected / Pending is non-nil; absent sections stay nil.
type ClearinghouseResponse struct {
	RequestType    string              `json:"requestType,omitempty"`
	RequestSubtype string              `json:"requestSubtype,omitempty"`
	Timestamp      *time.Time          `json:"timestamp,omitempty"`
	InvoiceRef     *ResponseInvoiceRef `json:"invoiceRef,omitempty"`
	Biller         *ResponseParty      `json:"biller,omitempty"`
	Provider       *ResponseParty      `json:"provider,omitempty"`
	Insurance      *ResponseParty      `json:"insurance,omitempty"`
	Patient        *ResponsePatient    `json:"patient,omitempty"`
	Accepted       *AcceptedBlock      `json:"accepted,omitempty"`
	Rejected       *RejectedBlock      `json:"rejected,omitempty"`
	Pending        *PendingBlock       `json:"pending,omitempty"`
	Balance        *ResponseBalance    `json:"balance,omitempty"`
}

// Outcome maps the populated block to its outcome category.
func (r *ClearinghouseResponse) Outcome() (ResponseOutcome, bool) {
	switch {
	case r.Accepted != nil:
		return ResponseOutcomeAccepted, true
	case r.Rejected != nil:
		return ResponseOutcomeRejected, true
	case r.Pending != nil:
		return ResponseOutcomePending, true
	}
	return "", false
}

// Explanation returns the populated block's explanation text.
func (r *ClearinghouseResponse) Explanation() string {
	switch {
	case r.Accepted != nil:
		return r.Accepted.Explanation
	case r.Rejected != nil:
		return r.Rejected.Explanation
	case r.Pending != nil:
		return r.Pending.Explanation
	}
	return ""
}

// StatusOut returns the populated block's outgoing status code.
func (r *ClearinghouseResponse) StatusOut() string {
	switch {
	case r.Accepted != nil:
		return r.Accepted.StatusOut
	case r.Rejected != nil:
		return r.Rejected.StatusOut
	case r.Pending != nil:
		return r.Pending.StatusOut
	}
	return ""
}
