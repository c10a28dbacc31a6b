package contracts

import (
	"context"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
)

// AssembleOverrides are the caller-supplied values that win over every
// stored source in the field resolution order.
type AssembleOverrides struct {
	InvoiceNumber   string
	InvoiceDate     *time.Time
	DueDate         *time.Time
	LawType         models.LawType
	BillingType     models.BillingType
	ReminderLevel   *int
	AccidentRef     string
	CaseNumber      string
	DurationMinutes int
}

// AssembleInput references the submission source. Exactly one of InvoiceID
// and RecordID is set.
type AssembleInput struct {
	InvoiceID string
	RecordID  string
	PatientID string
	Overrides AssembleOverrides
}

// AssembledInvoice pairs the canonical invoice with the store references the
// lifecycle manager links the submission to, plus the read models the
// transport router derives routing identifiers from. Insurer is nil when the
// source carried no resolvable insurer reference.
type AssembledInvoice struct {
	Invoice *models.CanonicalInvoice
	Refs    LifecycleRefs
	Insurer *models.Insurer
	Clinic  *models.ClinicSettings
}

// InvoiceAssembler merges patient, insurer, clinic and service-line data
// plus caller overrides into one canonical invoice.
type InvoiceAssembler interface {
	Assemble(ctx context.Context, input AssembleInput) (*AssembledInvoice, error)
}

// LineGenerator synthesizes service lines from a consultation duration when
// the source record carries no structured items. It is a pure function of
// duration, date and provider.
type LineGenerator func(durationMinutes int, date time.Time, providerGLN string) []models.ServiceLine
