package submissions

import (
	"context"
	"errors"
	"testing"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssembler struct {
	assembled *contracts.AssembledInvoice
	err       error
}

func (f *fakeAssembler) Assemble(ctx context.Context, input contracts.AssembleInput) (*contracts.AssembledInvoice, error) {
	return f.assembled, f.err
}

type fakeDocumentEngine struct {
	result *contracts.GenerateResult
	err    error
	calls  []contracts.GenerateOptions
}

func (f *fakeDocumentEngine) Generate(ctx context.Context, invoice *models.CanonicalInvoice, opts contracts.GenerateOptions) (*contracts.GenerateResult, error) {
	f.calls = append(f.calls, opts)
	return f.result, f.err
}

type fakeClearinghouse struct {
	enabled bool
	result  *contracts.UploadResult
	err     error
	uploads []contracts.UploadInput
}

func (f *fakeClearinghouse) Enabled() bool {
	return f.enabled
}

func (f *fakeClearinghouse) Upload(ctx context.Context, input contracts.UploadInput) (*contracts.UploadResult, error) {
	f.uploads = append(f.uploads, input)
	return f.result, f.err
}

type fakeDocumentStore struct {
	stored map[string][]byte
	err    error
}

func (f *fakeDocumentStore) StoreRenderedDocument(ctx context.Context, filename string, content []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.stored == nil {
		f.stored = map[string][]byte{}
	}
	f.stored[filename] = content
	return filename, nil
}

type fakeCopyDispatcher struct {
	jobs []contracts.PatientCopyJob
}

func (f *fakeCopyDispatcher) Dispatch(ctx context.Context, job contracts.PatientCopyJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

type pipelineFixture struct {
	usecase       *submissionUsecase
	assembler     *fakeAssembler
	docEngine     *fakeDocumentEngine
	clearinghouse *fakeClearinghouse
	store         *fakeDocumentStore
	dispatcher    *fakeCopyDispatcher
	submissions   *fakeSubmissionRepository
	history       *fakeHistoryRepository
}

func newPipelineFixture(billingType models.BillingType) *pipelineFixture {
	invoice := testCanonicalInvoice()
	invoice.BillingType = billingType

	submissionRepo := newFakeSubmissionRepository()
	historyRepo := &fakeHistoryRepository{}
	lifecycle := &submissionLifecycle{
		SubmissionRepository: submissionRepo,
		HistoryRepository:    historyRepo,
		RedisRepository:      newFakeRedisRepository(),
		Log:                  zap.NewNop(),
	}

	fixture := &pipelineFixture{
		assembler: &fakeAssembler{
			assembled: &contracts.AssembledInvoice{
				Invoice: invoice,
				Refs:    contracts.LifecycleRefs{InvoiceID: "inv-1", PatientID: "patient-1"},
				Insurer: &models.Insurer{ID: "insurer-1", GLN: "7601000000200"},
				Clinic:  &models.ClinicSettings{GLN: "7601000000001"},
			},
		},
		docEngine: &fakeDocumentEngine{
			result: &contracts.GenerateResult{
				Success:           true,
				GeneratedContent:  "<request/>",
				RenderedDocument:  []byte("%PDF-1.7"),
				UsedFormatVersion: "4.5",
			},
		},
		clearinghouse: &fakeClearinghouse{
			enabled: true,
			result:  &contracts.UploadResult{Success: true, TransmissionReference: "ref-1"},
		},
		store:       &fakeDocumentStore{},
		dispatcher:  &fakeCopyDispatcher{},
		submissions: submissionRepo,
		history:     historyRepo,
	}

	fixture.usecase = &submissionUsecase{
		Assembler:            fixture.assembler,
		DocumentEngineClient: fixture.docEngine,
		ClearinghouseClient:  fixture.clearinghouse,
		Lifecycle:            lifecycle,
		SubmissionRepository: submissionRepo,
		HistoryRepository:    historyRepo,
		DocumentStore:        fixture.store,
		CopyDispatcher:       fixture.dispatcher,
		InternalConfig: &config.InternalConfig{
			DocumentEngine: config.DocumentEngine{GeneratePDF: true},
		},
		Log: zap.NewNop(),
	}
	return fixture
}

func submitRequest() *requests.SubmitInvoice {
	return &requests.SubmitInvoice{InvoiceID: "inv-1", PatientID: "patient-1"}
}

func TestSubmit_HappyPath(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)

	summary, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	assert.True(t, summary.DocumentGenerated)
	assert.True(t, summary.PDFGenerated)
	assert.True(t, summary.Transmitted)
	assert.Equal(t, "ref-1", summary.TransmissionReference)
	assert.Equal(t, string(models.SubmissionStatusPending), summary.Status)
	assert.InDelta(t, 150.0, summary.Total, 0.0001)
	assert.Equal(t, "CHF", summary.Currency)

	// Create plus transmitted, one audit row each.
	history, _ := fixture.history.FindHistoryBySubmissionID(context.Background(), summary.SubmissionID)
	require.Len(t, history, 2)

	require.Len(t, fixture.clearinghouse.uploads, 1)
	upload := fixture.clearinghouse.uploads[0]
	assert.Equal(t, "7601000000001", upload.SenderGLN)
	assert.Equal(t, "7601000000200", upload.ReceiverGLN)

	require.Len(t, fixture.dispatcher.jobs, 1, "TP submissions dispatch a patient copy")
	assert.Equal(t, summary.SubmissionID, fixture.dispatcher.jobs[0].SubmissionID)
}

func TestSubmit_TGSkipsPatientCopy(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTG)

	summary, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	assert.True(t, summary.Transmitted)
	assert.Empty(t, fixture.dispatcher.jobs)
}

func TestSubmit_GenerationFailureCreatesNoSubmission(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)
	fixture.docEngine.result = &contracts.GenerateResult{
		Success:         false,
		ValidationError: "missing patient ssn",
	}

	_, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing patient ssn")
	assert.Empty(t, fixture.submissions.submissions)
	assert.Empty(t, fixture.clearinghouse.uploads)
}

func TestSubmit_UploadFailureLeavesDraft(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)
	fixture.clearinghouse.result = &contracts.UploadResult{
		Success:      false,
		ErrorMessage: "proxy returned status 502",
	}

	summary, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err, "a failed upload is not a pipeline error")

	assert.False(t, summary.Transmitted)
	assert.Equal(t, "proxy returned status 502", summary.TransmissionError)
	assert.Empty(t, fixture.dispatcher.jobs, "no patient copy without a successful upload")

	stored, _ := fixture.submissions.FindSubmissionByID(context.Background(), summary.SubmissionID)
	require.NotNil(t, stored)
	assert.Equal(t, models.SubmissionStatusDraft, stored.Status)

	history, _ := fixture.history.FindHistoryBySubmissionID(context.Background(), summary.SubmissionID)
	require.Len(t, history, 2)
	assert.Equal(t, models.SubmissionStatusDraft, history[1].NewStatus)
}

func TestSubmit_TransmissionDisabled(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)
	fixture.clearinghouse.enabled = false

	summary, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	assert.False(t, summary.Transmitted)
	assert.Equal(t, transmissionDisabledNote, summary.TransmissionError)
	assert.Empty(t, fixture.clearinghouse.uploads)

	stored, _ := fixture.submissions.FindSubmissionByID(context.Background(), summary.SubmissionID)
	assert.Equal(t, models.SubmissionStatusDraft, stored.Status)

	entries, _ := fixture.history.FindHistoryBySubmissionID(context.Background(), summary.SubmissionID)
	assert.Len(t, entries, 1)
}

func TestSubmit_StoreFailureDoesNotFailSubmission(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)
	fixture.store.err = errors.New("bucket unavailable")

	summary, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)
	assert.False(t, summary.PDFGenerated)
	assert.True(t, summary.Transmitted)
}

func TestSubmit_InvalidOverrideDate(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)

	request := submitRequest()
	request.Overrides.InvoiceDate = "10.03.2026"

	_, err := fixture.usecase.Submit(context.Background(), request)
	assert.Error(t, err)
}

func TestRetransmit_OnlyDraftsAccepted(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)

	summary, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	// Already pending after the successful first upload.
	_, err = fixture.usecase.Retransmit(context.Background(), summary.SubmissionID)
	assert.Error(t, err)
}

func TestRetransmit_DraftSucceeds(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)
	fixture.clearinghouse.result = &contracts.UploadResult{Success: false, ErrorMessage: "timeout"}

	summary, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)
	assert.False(t, summary.Transmitted)

	fixture.clearinghouse.result = &contracts.UploadResult{Success: true, TransmissionReference: "ref-2"}

	retried, err := fixture.usecase.Retransmit(context.Background(), summary.SubmissionID)
	require.NoError(t, err)
	assert.True(t, retried.Transmitted)
	assert.Equal(t, "ref-2", retried.TransmissionReference)

	history, _ := fixture.history.FindHistoryBySubmissionID(context.Background(), summary.SubmissionID)
	require.Len(t, history, 3, "created, failed attempt, transmitted")
}

func TestRetransmit_UnknownSubmission(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)

	_, err := fixture.usecase.Retransmit(context.Background(), "missing")
	assert.Error(t, err)
}

func TestGetSubmissionAndHistory(t *testing.T) {
	fixture := newPipelineFixture(models.BillingTypeTP)

	summary, err := fixture.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	submission, err := fixture.usecase.GetSubmission(context.Background(), summary.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, summary.InvoiceNumber, submission.InvoiceNumber)

	entries, err := fixture.usecase.ListHistory(context.Background(), summary.SubmissionID)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	_, err = fixture.usecase.GetSubmission(context.Background(), "missing")
	assert.Error(t, err)

	_, err = fixture.usecase.ListHistory(context.Background(), "missing")
	assert.Error(t, err)
}
