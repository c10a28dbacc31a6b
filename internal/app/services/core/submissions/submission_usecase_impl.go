package submissions

import (
	"context"
	"sync"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/routing"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/requests"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/responses"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/utils"

	"go.uber.org/zap"
)

const transmissionDisabledNote = "transmission is disabled"

var (
	submissionUsecaseInstance contracts.SubmissionUsecase
	onceSubmissionUsecase     sync.Once
)

type submissionUsecase struct {
	Assembler            contracts.InvoiceAssembler
	DocumentEngineClient contracts.DocumentEngineClient
	ClearinghouseClient  contracts.ClearinghouseClient
	Lifecycle            contracts.SubmissionLifecycle
	SubmissionRepository contracts.SubmissionRepository
	HistoryRepository    contracts.SubmissionHistoryRepository
	DocumentStore        contracts.DocumentStore
	CopyDispatcher       contracts.CopyDispatcher
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewSubmissionUsecase(
	assembler contracts.InvoiceAssembler,
	documentEngineClient contracts.DocumentEngineClient,
	clearinghouseClient contracts.ClearinghouseClient,
	lifecycle contracts.SubmissionLifecycle,
	submissionRepository contracts.SubmissionRepository,
	historyRepository contracts.SubmissionHistoryRepository,
	documentStore contracts.DocumentStore,
	copyDispatcher contracts.CopyDispatcher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SubmissionUsecase {
	onceSubmissionUsecase.Do(func() {
		submissionUsecaseInstance = &submissionUsecase{
			Assembler:            assembler,
			DocumentEngineClient: documentEngineClient,
			ClearinghouseClient:  clearinghouseClient,
			Lifecycle:            lifecycle,
			SubmissionRepository: submissionRepository,
			HistoryRepository:    historyRepository,
			DocumentStore:        documentStore,
			CopyDispatcher:       copyDispatcher,
			InternalConfig:       internalConfig,
			Log:                  logger,
		}
	})
	return submissionUsecaseInstance
}

func (uc *submissionUsecase) Submit(ctx context.Context, request *requests.SubmitInvoice) (*responses.SubmissionSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, request.InvoiceID),
		zap.String(constvars.LoggingRecordIDKey, request.RecordID),
	)

	overrides, err := mapOverrides(request.Overrides)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	assembled, err := uc.Assembler.Assemble(ctx, contracts.AssembleInput{
		InvoiceID: request.InvoiceID,
		RecordID:  request.RecordID,
		PatientID: request.PatientID,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}

	invoice := assembled.Invoice
	invoice.Routing = routing.Route(invoice.LawType, invoice.BillingType, assembled.Insurer, assembled.Clinic, uc.InternalConfig.Billing)

	result, err := uc.DocumentEngineClient.Generate(ctx, invoice, contracts.GenerateOptions{
		GeneratePDF:    uc.InternalConfig.DocumentEngine.GeneratePDF,
		RequestSubtype: contracts.GenerateSubtypeOriginal,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, exceptions.ErrDocumentGenerationFailed(nil, generationDiagnostic(result))
	}

	submission, err := uc.Lifecycle.Create(ctx, invoice, assembled.Refs, result.GeneratedContent, result.UsedFormatVersion)
	if err != nil {
		return nil, err
	}

	pdfStored := uc.storeRenderedDocument(ctx, invoice.InvoiceNumber, result.RenderedDocument)

	summary := uc.buildSummary(invoice, submission)
	summary.DocumentGenerated = true
	summary.PDFGenerated = pdfStored

	uc.transmit(ctx, submission, summary)
	if summary.Transmitted {
		uc.dispatchPatientCopy(ctx, request, submission)
	}

	return summary, nil
}

func (uc *submissionUsecase) Retransmit(ctx context.Context, submissionID string) (*responses.SubmissionSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("submissionUsecase.Retransmit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
	)

	submission, err := uc.SubmissionRepository.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, exceptions.ErrSubmissionNotFound(nil)
	}
	if submission.Status != models.SubmissionStatusDraft {
		return nil, exceptions.ErrSubmissionNotDraft(nil, string(submission.Status))
	}
	if !uc.ClearinghouseClient.Enabled() {
		return nil, exceptions.ErrTransmissionFailed(nil, transmissionDisabledNote)
	}

	summary := uc.summaryFromSubmission(submission)
	uc.transmit(ctx, submission, summary)
	return summary, nil
}

func (uc *submissionUsecase) GetSubmission(ctx context.Context, submissionID string) (*models.Submission, error) {
	submission, err := uc.SubmissionRepository.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, exceptions.ErrSubmissionNotFound(nil)
	}
	return submission, nil
}

func (uc *submissionUsecase) ListHistory(ctx context.Context, submissionID string) ([]models.SubmissionHistoryEntry, error) {
	submission, err := uc.SubmissionRepository.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, exceptions.ErrSubmissionNotFound(nil)
	}
	return uc.HistoryRepository.FindHistoryBySubmissionID(ctx, submissionID)
}

// transmit runs at most one upload attempt and records the result on the
// submission. Transmission problems never surface as pipeline errors; the
// submission exists either way and the summary reports what happened.
func (uc *submissionUsecase) transmit(ctx context.Context, submission *models.Submission, summary *responses.SubmissionSummary) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if !uc.ClearinghouseClient.Enabled() {
		summary.TransmissionError = transmissionDisabledNote
		return
	}

	filename := utils.GenerateSubmissionFilename(submission.InvoiceNumber, constvars.GeneratedContentFileExtension)
	result, err := uc.ClearinghouseClient.Upload(ctx, contracts.UploadInput{
		Content:       []byte(submission.GeneratedContent),
		Filename:      filename,
		InvoiceNumber: submission.InvoiceNumber,
		SenderGLN:     submission.SenderGLN,
		ReceiverGLN:   submission.ReceiverGLN,
		LawType:       submission.LawType,
		BillingType:   submission.BillingType,
	})
	if err != nil {
		uc.recordFailure(ctx, submission, summary, err.Error())
		return
	}
	if !result.Success {
		uc.recordFailure(ctx, submission, summary, result.ErrorMessage)
		return
	}

	updated, err := uc.Lifecycle.RecordUploadSuccess(ctx, submission.ID, result.TransmissionReference, "")
	if err != nil {
		uc.Log.Error("submissionUsecase.transmit error recording upload success",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubmissionIDKey, submission.ID),
			zap.Error(err),
		)
		summary.TransmissionError = err.Error()
		return
	}

	summary.Transmitted = true
	summary.TransmissionReference = result.TransmissionReference
	summary.Status = string(updated.Status)
}

func (uc *submissionUsecase) recordFailure(ctx context.Context, submission *models.Submission, summary *responses.SubmissionSummary, reason string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Error("submissionUsecase.transmit upload failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submission.ID),
		zap.String("reason", reason),
	)

	summary.TransmissionError = reason
	if _, err := uc.Lifecycle.RecordUploadFailure(ctx, submission.ID, reason); err != nil {
		uc.Log.Error("submissionUsecase.transmit error recording upload failure",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubmissionIDKey, submission.ID),
			zap.Error(err),
		)
	}
}

// storeRenderedDocument persists the PDF best-effort; failures are logged
// and never fail the submission.
func (uc *submissionUsecase) storeRenderedDocument(ctx context.Context, invoiceNumber string, document []byte) bool {
	if len(document) == 0 {
		return false
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	filename := utils.GenerateSubmissionFilename(invoiceNumber, constvars.RenderedDocumentFileExtension)
	if _, err := uc.DocumentStore.StoreRenderedDocument(ctx, filename, document); err != nil {
		uc.Log.Error("submissionUsecase.Submit error storing rendered document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFilenameKey, filename),
			zap.Error(err),
		)
		return false
	}
	return true
}

// dispatchPatientCopy enqueues the patient-copy job for TP submissions; the
// patient receives the invoice document since the insurer bills them back.
func (uc *submissionUsecase) dispatchPatientCopy(ctx context.Context, request *requests.SubmitInvoice, submission *models.Submission) {
	if submission.BillingType != models.BillingTypeTP {
		return
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	job := contracts.PatientCopyJob{
		SubmissionID: submission.ID,
		InvoiceID:    request.InvoiceID,
		RecordID:     request.RecordID,
		PatientID:    submission.PatientID,
		Filename:     utils.GenerateSubmissionFilename(submission.InvoiceNumber, constvars.RenderedDocumentFileExtension),
	}
	if err := uc.CopyDispatcher.Dispatch(ctx, job); err != nil {
		uc.Log.Error("submissionUsecase.Submit error dispatching patient copy job",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubmissionIDKey, submission.ID),
			zap.Error(err),
		)
	}
}

func (uc *submissionUsecase) buildSummary(invoice *models.CanonicalInvoice, submission *models.Submission) *responses.SubmissionSummary {
	lines := make([]responses.LineSummary, 0, len(invoice.Lines))
	for _, line := range invoice.Lines {
		lines = append(lines, responses.LineSummary{
			Code:        line.Code,
			Description: line.Description,
			Quantity:    line.Quantity,
			Amount:      line.Amount,
		})
	}
	return &responses.SubmissionSummary{
		SubmissionID:  submission.ID,
		InvoiceNumber: submission.InvoiceNumber,
		Status:        string(submission.Status),
		Total:         invoice.EffectiveTotal(),
		Currency:      invoice.Currency,
		Lines:         lines,
	}
}

func (uc *submissionUsecase) summaryFromSubmission(submission *models.Submission) *responses.SubmissionSummary {
	return &responses.SubmissionSummary{
		SubmissionID:      submission.ID,
		InvoiceNumber:     submission.InvoiceNumber,
		Status:            string(submission.Status),
		DocumentGenerated: true,
		Total:             submission.Amount,
		Currency:          constvars.DefaultCurrency,
		Lines:             []responses.LineSummary{},
	}
}

func mapOverrides(in requests.SubmitInvoiceOverrides) (contracts.AssembleOverrides, error) {
	out := contracts.AssembleOverrides{
		InvoiceNumber:   in.InvoiceNumber,
		LawType:         models.LawType(in.LawType),
		BillingType:     models.BillingType(in.BillingType),
		ReminderLevel:   in.ReminderLevel,
		AccidentRef:     in.AccidentRef,
		CaseNumber:      in.CaseNumber,
		DurationMinutes: in.DurationMinutes,
	}
	if in.InvoiceDate != "" {
		parsed, err := utils.ParseDate(in.InvoiceDate)
		if err != nil {
			return out, err
		}
		out.InvoiceDate = &parsed
	}
	if in.DueDate != "" {
		parsed, err := utils.ParseDate(in.DueDate)
		if err != nil {
			return out, err
		}
		out.DueDate = &parsed
	}
	return out, nil
}

func generationDiagnostic(result *contracts.GenerateResult) string {
	switch {
	case result.ValidationError != "":
		return result.ValidationError
	case result.AbortInfo != "":
		return result.AbortInfo
	case result.Error != "":
		return result.Error
	}
	return "document engine reported failure without diagnostic"
}
