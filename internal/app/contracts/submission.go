package contracts

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/requests"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/responses"
)

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission *models.Submission) (*models.Submission, error)
	FindSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error)
	FindSubmissionByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Submission, error)
	UpdateSubmissionStatus(ctx context.Context, submission *models.Submission) (*models.Submission, error)
}

type SubmissionHistoryRepository interface {
	AppendHistoryEntry(ctx context.Context, entry *models.SubmissionHistoryEntry) (*models.SubmissionHistoryEntry, error)
	FindHistoryBySubmissionID(ctx context.Context, submissionID string) ([]models.SubmissionHistoryEntry, error)
}

// SubmissionLifecycle is the only component allowed to mutate a submission's
// status. Every mutation appends exactly one history entry.
type SubmissionLifecycle interface {
	Create(ctx context.Context, invoice *models.CanonicalInvoice, refs LifecycleRefs, content, contentVersion string) (*models.Submission, error)
	RecordUploadSuccess(ctx context.Context, submissionID, messageID, responseCode string) (*models.Submission, error)
	RecordUploadFailure(ctx context.Context, submissionID, reason string) (*models.Submission, error)
	ApplyResponse(ctx context.Context, submissionID string, decoded *models.ClearinghouseResponse) (*ApplyResponseResult, error)
	MarkError(ctx context.Context, submissionID, reason string) (*models.Submission, error)
}

// LifecycleRefs carries the store identifiers a submission is linked to.
type LifecycleRefs struct {
	InvoiceID string
	PatientID string
	InsurerID string
}

// ApplyResponseResult reports what applying a decoded response did.
type ApplyResponseResult struct {
	Submission   *models.Submission
	Transitioned bool
	// AlreadyFinal is set when the submission was in a terminal status and
	// the application was a no-op.
	AlreadyFinal bool
	// Duplicate is set when the same response was applied before.
	Duplicate bool
}

// SubmissionUsecase orchestrates the caller-initiated pipeline.
type SubmissionUsecase interface {
	Submit(ctx context.Context, request *requests.SubmitInvoice) (*responses.SubmissionSummary, error)
	Retransmit(ctx context.Context, submissionID string) (*responses.SubmissionSummary, error)
	GetSubmission(ctx context.Context, submissionID string) (*models.Submission, error)
	ListHistory(ctx context.Context, submissionID string) ([]models.SubmissionHistoryEntry, error)
}
