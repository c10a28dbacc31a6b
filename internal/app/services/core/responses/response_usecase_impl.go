package responses

import (
	"context"
	"sync"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	dto "github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/responses"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	"go.uber.org/zap"
)

var (
	responseUsecaseInstance contracts.ResponseUsecase
	onceResponseUsecase     sync.Once
)

type responseUsecase struct {
	SubmissionRepository contracts.SubmissionRepository
	Lifecycle            contracts.SubmissionLifecycle
	Log                  *zap.Logger
}

func NewResponseUsecase(
	submissionRepository contracts.SubmissionRepository,
	lifecycle contracts.SubmissionLifecycle,
	logger *zap.Logger,
) contracts.ResponseUsecase {
	onceResponseUsecase.Do(func() {
		responseUsecaseInstance = &responseUsecase{
			SubmissionRepository: submissionRepository,
			Lifecycle:            lifecycle,
			Log:                  logger,
		}
	})
	return responseUsecaseInstance
}

// ProcessInbound decodes raw clearinghouse content, correlates the
// submission by the invoice reference and applies the outcome.
func (uc *responseUsecase) ProcessInbound(ctx context.Context, content []byte) (*dto.InboundResponseResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("responseUsecase.ProcessInbound called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	decoded, err := Decode(content)
	if err != nil {
		return nil, err
	}

	outcome, ok := decoded.Outcome()
	if !ok {
		return nil, exceptions.ErrResponseEmptyContent(nil)
	}

	if decoded.InvoiceRef == nil || decoded.InvoiceRef.ID == "" {
		return nil, exceptions.ErrSubmissionNotFound(nil)
	}

	submission, err := uc.SubmissionRepository.FindSubmissionByInvoiceNumber(ctx, decoded.InvoiceRef.ID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		uc.Log.Error("responseUsecase.ProcessInbound no submission for invoice reference",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceNoKey, decoded.InvoiceRef.ID),
		)
		return nil, exceptions.ErrSubmissionNotFound(nil)
	}

	applied, err := uc.Lifecycle.ApplyResponse(ctx, submission.ID, decoded)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("responseUsecase.ProcessInbound applied response",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submission.ID),
		zap.String(constvars.LoggingStatusKey, string(applied.Submission.Status)),
	)

	return &dto.InboundResponseResult{
		SubmissionID:  applied.Submission.ID,
		InvoiceNumber: applied.Submission.InvoiceNumber,
		Outcome:       string(outcome),
		StatusChanged: applied.Transitioned,
		AlreadyFinal:  applied.AlreadyFinal,
		Duplicate:     applied.Duplicate,
		Explanation:   decoded.Explanation(),
	}, nil
}
