package submissions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// responseDedupTTL bounds how long an applied response outcome is remembered
// for duplicate suppression.
const responseDedupTTL = 7 * 24 * time.Hour

var (
	submissionLifecycleInstance contracts.SubmissionLifecycle
	onceSubmissionLifecycle     sync.Once
)

type submissionLifecycle struct {
	SubmissionRepository contracts.SubmissionRepository
	HistoryRepository    contracts.SubmissionHistoryRepository
	RedisRepository      contracts.RedisRepository
	Log                  *zap.Logger
}

func NewSubmissionLifecycle(
	submissionRepository contracts.SubmissionRepository,
	historyRepository contracts.SubmissionHistoryRepository,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
) contracts.SubmissionLifecycle {
	onceSubmissionLifecycle.Do(func() {
		submissionLifecycleInstance = &submissionLifecycle{
			SubmissionRepository: submissionRepository,
			HistoryRepository:    historyRepository,
			RedisRepository:      redisRepository,
			Log:                  logger,
		}
	})
	return submissionLifecycleInstance
}

func (uc *submissionLifecycle) Create(ctx context.Context, invoice *models.CanonicalInvoice, refs contracts.LifecycleRefs, content, contentVersion string) (*models.Submission, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionLifecycle.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceNoKey, invoice.InvoiceNumber),
	)

	submission := &models.Submission{
		ID:               uuid.NewString(),
		InvoiceID:        refs.InvoiceID,
		PatientID:        refs.PatientID,
		InsurerID:        refs.InsurerID,
		InvoiceNumber:    invoice.InvoiceNumber,
		InvoiceDate:      invoice.InvoiceDate,
		Amount:           invoice.EffectiveTotal(),
		BillingType:      invoice.BillingType,
		LawType:          invoice.LawType,
		SenderGLN:        invoice.Routing.SenderGLN,
		ReceiverGLN:      invoice.Routing.ReceiverGLN,
		GeneratedContent: content,
		ContentVersion:   contentVersion,
		Status:           models.SubmissionStatusDraft,
	}

	created, err := uc.SubmissionRepository.CreateSubmission(ctx, submission)
	if err != nil {
		return nil, err
	}

	if err := uc.appendHistory(ctx, created.ID, nil, models.SubmissionStatusDraft, "", "submission created"); err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *submissionLifecycle) RecordUploadSuccess(ctx context.Context, submissionID, messageID, responseCode string) (*models.Submission, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionLifecycle.RecordUploadSuccess called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
	)

	submission, err := uc.findSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	previous := submission.Status
	if !previous.CanTransitionTo(models.SubmissionStatusPending) {
		return nil, exceptions.ErrInvalidStatusTransition(nil, string(previous), string(models.SubmissionStatusPending))
	}

	now := time.Now()
	submission.Status = models.SubmissionStatusPending
	submission.MessageID = messageID
	submission.ResponseCode = responseCode
	submission.TransmittedAt = &now

	updated, err := uc.SubmissionRepository.UpdateSubmissionStatus(ctx, submission)
	if err != nil {
		return nil, err
	}

	if err := uc.appendHistory(ctx, submissionID, &previous, models.SubmissionStatusPending, responseCode, "transmitted to clearinghouse"); err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordUploadFailure audits a failed transmission attempt. The submission
// stays draft so a retransmission remains possible.
func (uc *submissionLifecycle) RecordUploadFailure(ctx context.Context, submissionID, reason string) (*models.Submission, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionLifecycle.RecordUploadFailure called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
	)

	submission, err := uc.findSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	previous := submission.Status
	if !previous.CanTransitionTo(models.SubmissionStatusDraft) {
		return nil, exceptions.ErrInvalidStatusTransition(nil, string(previous), string(models.SubmissionStatusDraft))
	}

	if err := uc.appendHistory(ctx, submissionID, &previous, models.SubmissionStatusDraft, "", reason); err != nil {
		return nil, err
	}
	return submission, nil
}

func (uc *submissionLifecycle) ApplyResponse(ctx context.Context, submissionID string, decoded *models.ClearinghouseResponse) (*contracts.ApplyResponseResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionLifecycle.ApplyResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
	)

	submission, err := uc.findSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	outcome, ok := decoded.Outcome()
	if !ok {
		return nil, exceptions.ErrResponseEmptyContent(nil)
	}

	if submission.Status.IsTerminal() {
		uc.Log.Info("submissionLifecycle.ApplyResponse submission already final",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubmissionIDKey, submissionID),
			zap.String(constvars.LoggingStatusKey, string(submission.Status)),
		)
		return &contracts.ApplyResponseResult{Submission: submission, AlreadyFinal: true}, nil
	}

	dedupKey := fmt.Sprintf("submission_response:%s:%s:%s", submissionID, outcome, decoded.StatusOut())
	fresh, err := uc.RedisRepository.TrySetNX(ctx, dedupKey, time.Now().Unix(), responseDedupTTL)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return &contracts.ApplyResponseResult{Submission: submission, Duplicate: true}, nil
	}

	previous := submission.Status
	next := previous
	switch outcome {
	case models.ResponseOutcomeAccepted:
		next = models.SubmissionStatusAccepted
	case models.ResponseOutcomeRejected:
		next = models.SubmissionStatusRejected
	case models.ResponseOutcomePending:
		// An interim notice; the status does not move.
	}

	if next != previous && !previous.CanTransitionTo(next) {
		return nil, exceptions.ErrInvalidStatusTransition(nil, string(previous), string(next))
	}

	submission.ResponseCode = decoded.StatusOut()
	transitioned := next != previous
	if transitioned {
		submission.Status = next
	}

	updated, err := uc.SubmissionRepository.UpdateSubmissionStatus(ctx, submission)
	if err != nil {
		return nil, err
	}

	note := decoded.Explanation()
	if note == "" {
		note = fmt.Sprintf("clearinghouse response: %s", outcome)
	}
	if err := uc.appendHistory(ctx, submissionID, &previous, next, decoded.StatusOut(), note); err != nil {
		return nil, err
	}

	return &contracts.ApplyResponseResult{Submission: updated, Transitioned: transitioned}, nil
}

func (uc *submissionLifecycle) MarkError(ctx context.Context, submissionID, reason string) (*models.Submission, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionLifecycle.MarkError called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
	)

	submission, err := uc.findSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	previous := submission.Status
	if previous.IsTerminal() {
		return nil, exceptions.ErrSubmissionTerminal(nil, string(previous))
	}
	if !previous.CanTransitionTo(models.SubmissionStatusError) {
		return nil, exceptions.ErrInvalidStatusTransition(nil, string(previous), string(models.SubmissionStatusError))
	}

	submission.Status = models.SubmissionStatusError
	updated, err := uc.SubmissionRepository.UpdateSubmissionStatus(ctx, submission)
	if err != nil {
		return nil, err
	}

	if err := uc.appendHistory(ctx, submissionID, &previous, models.SubmissionStatusError, "", reason); err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *submissionLifecycle) findSubmission(ctx context.Context, submissionID string) (*models.Submission, error) {
	submission, err := uc.SubmissionRepository.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, exceptions.ErrSubmissionNotFound(nil)
	}
	return submission, nil
}

// appendHistory writes the single audit row every lifecycle operation owes.
// The status update lands before the history row; a crash between the two
// loses the row but never the status.
func (uc *submissionLifecycle) appendHistory(ctx context.Context, submissionID string, previous *models.SubmissionStatus, next models.SubmissionStatus, responseCode, note string) error {
	_, err := uc.HistoryRepository.AppendHistoryEntry(ctx, &models.SubmissionHistoryEntry{
		SubmissionID:   submissionID,
		PreviousStatus: previous,
		NewStatus:      next,
		ResponseCode:   responseCode,
		Note:           note,
		CreatedAt:      time.Now(),
	})
	return err
}
