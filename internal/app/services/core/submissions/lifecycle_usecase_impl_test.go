package submissions

import (
	"context"
	"testing"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubmissionRepository struct {
	submissions map[string]*models.Submission
}

func newFakeSubmissionRepository() *fakeSubmissionRepository {
	return &fakeSubmissionRepository{submissions: map[string]*models.Submission{}}
}

func (f *fakeSubmissionRepository) CreateSubmission(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	stored := *submission
	f.submissions[submission.ID] = &stored
	return &stored, nil
}

func (f *fakeSubmissionRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error) {
	submission, ok := f.submissions[submissionID]
	if !ok {
		return nil, nil
	}
	copied := *submission
	return &copied, nil
}

func (f *fakeSubmissionRepository) FindSubmissionByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Submission, error) {
	var newest *models.Submission
	for _, submission := range f.submissions {
		if submission.InvoiceNumber != invoiceNumber {
			continue
		}
		if newest == nil || submission.CreatedAt.After(newest.CreatedAt) {
			newest = submission
		}
	}
	if newest == nil {
		return nil, nil
	}
	copied := *newest
	return &copied, nil
}

func (f *fakeSubmissionRepository) UpdateSubmissionStatus(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	stored := *submission
	f.submissions[submission.ID] = &stored
	return &stored, nil
}

type fakeHistoryRepository struct {
	entries []models.SubmissionHistoryEntry
}

func (f *fakeHistoryRepository) AppendHistoryEntry(ctx context.Context, entry *models.SubmissionHistoryEntry) (*models.SubmissionHistoryEntry, error) {
	f.entries = append(f.entries, *entry)
	return entry, nil
}

func (f *fakeHistoryRepository) FindHistoryBySubmissionID(ctx context.Context, submissionID string) ([]models.SubmissionHistoryEntry, error) {
	var matched []models.SubmissionHistoryEntry
	for _, entry := range f.entries {
		if entry.SubmissionID == submissionID {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type fakeRedisRepository struct {
	values map[string]string
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{values: map[string]string{}}
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	f.values[key] = "set"
	return nil
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	f.values[key] = "set"
	return true, nil
}

func newTestLifecycle() (*submissionLifecycle, *fakeSubmissionRepository, *fakeHistoryRepository) {
	submissionRepo := newFakeSubmissionRepository()
	historyRepo := &fakeHistoryRepository{}
	lifecycle := &submissionLifecycle{
		SubmissionRepository: submissionRepo,
		HistoryRepository:    historyRepo,
		RedisRepository:      newFakeRedisRepository(),
		Log:                  zap.NewNop(),
	}
	return lifecycle, submissionRepo, historyRepo
}

func testCanonicalInvoice() *models.CanonicalInvoice {
	return &models.CanonicalInvoice{
		InvoiceNumber: "2026-0042",
		InvoiceDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		LawType:       models.LawTypeHealth,
		BillingType:   models.BillingTypeTP,
		Lines: []models.ServiceLine{
			{Code: "00.0010", Quantity: 1, UnitPrice: 150, Amount: 150},
		},
		Currency: "CHF",
		Routing: models.Routing{
			SenderGLN:   "7601000000001",
			ReceiverGLN: "7601000000200",
		},
	}
}

func acceptedResponse() *models.ClearinghouseResponse {
	return &models.ClearinghouseResponse{
		Accepted: &models.AcceptedBlock{
			ResponseStatusBlock: models.ResponseStatusBlock{Explanation: "processed", StatusOut: "20"},
		},
	}
}

func TestLifecycle_CreateStartsDraftWithOneHistoryEntry(t *testing.T) {
	lifecycle, _, historyRepo := newTestLifecycle()

	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{
		InvoiceID: "inv-1",
		PatientID: "patient-1",
	}, "<content/>", "4.5")

	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusDraft, submission.Status)
	assert.Equal(t, float64(150), submission.Amount)
	assert.Equal(t, "7601000000200", submission.ReceiverGLN)

	require.Len(t, historyRepo.entries, 1)
	assert.Nil(t, historyRepo.entries[0].PreviousStatus)
	assert.Equal(t, models.SubmissionStatusDraft, historyRepo.entries[0].NewStatus)
}

func TestLifecycle_UploadSuccessMovesToPending(t *testing.T) {
	lifecycle, _, historyRepo := newTestLifecycle()
	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{}, "", "")
	require.NoError(t, err)

	updated, err := lifecycle.RecordUploadSuccess(context.Background(), submission.ID, "msg-1", "")
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusPending, updated.Status)
	assert.Equal(t, "msg-1", updated.MessageID)
	assert.NotNil(t, updated.TransmittedAt)

	require.Len(t, historyRepo.entries, 2)
	entry := historyRepo.entries[1]
	require.NotNil(t, entry.PreviousStatus)
	assert.Equal(t, models.SubmissionStatusDraft, *entry.PreviousStatus)
	assert.Equal(t, models.SubmissionStatusPending, entry.NewStatus)
}

func TestLifecycle_UploadFailureKeepsDraftAndAudits(t *testing.T) {
	lifecycle, submissionRepo, historyRepo := newTestLifecycle()
	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{}, "", "")
	require.NoError(t, err)

	_, err = lifecycle.RecordUploadFailure(context.Background(), submission.ID, "proxy returned status 502")
	require.NoError(t, err)

	stored, _ := submissionRepo.FindSubmissionByID(context.Background(), submission.ID)
	assert.Equal(t, models.SubmissionStatusDraft, stored.Status)

	require.Len(t, historyRepo.entries, 2)
	entry := historyRepo.entries[1]
	assert.Equal(t, models.SubmissionStatusDraft, entry.NewStatus)
	assert.Equal(t, "proxy returned status 502", entry.Note)
}

func TestLifecycle_ApplyAcceptedResponse(t *testing.T) {
	lifecycle, _, historyRepo := newTestLifecycle()
	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{}, "", "")
	require.NoError(t, err)
	_, err = lifecycle.RecordUploadSuccess(context.Background(), submission.ID, "msg-1", "")
	require.NoError(t, err)

	applied, err := lifecycle.ApplyResponse(context.Background(), submission.ID, acceptedResponse())
	require.NoError(t, err)

	assert.True(t, applied.Transitioned)
	assert.Equal(t, models.SubmissionStatusAccepted, applied.Submission.Status)
	assert.Equal(t, "20", applied.Submission.ResponseCode)

	require.Len(t, historyRepo.entries, 3)
	assert.Equal(t, "processed", historyRepo.entries[2].Note)
}

func TestLifecycle_ApplyResponseToDraftFails(t *testing.T) {
	lifecycle, _, _ := newTestLifecycle()
	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{}, "", "")
	require.NoError(t, err)

	_, err = lifecycle.ApplyResponse(context.Background(), submission.ID, acceptedResponse())
	assert.Error(t, err, "accepted cannot be applied before a transmission")
}

func TestLifecycle_PendingResponseAuditsWithoutStatusChange(t *testing.T) {
	lifecycle, submissionRepo, historyRepo := newTestLifecycle()
	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{}, "", "")
	require.NoError(t, err)
	_, err = lifecycle.RecordUploadSuccess(context.Background(), submission.ID, "msg-1", "")
	require.NoError(t, err)

	applied, err := lifecycle.ApplyResponse(context.Background(), submission.ID, &models.ClearinghouseResponse{
		Pending: &models.PendingBlock{
			ResponseStatusBlock: models.ResponseStatusBlock{Explanation: "queued at insurer", StatusOut: "15"},
		},
	})
	require.NoError(t, err)

	assert.False(t, applied.Transitioned)
	stored, _ := submissionRepo.FindSubmissionByID(context.Background(), submission.ID)
	assert.Equal(t, models.SubmissionStatusPending, stored.Status)

	require.Len(t, historyRepo.entries, 3)
	assert.Equal(t, models.SubmissionStatusPending, historyRepo.entries[2].NewStatus)
	assert.Equal(t, "queued at insurer", historyRepo.entries[2].Note)
}

func TestLifecycle_DuplicateResponseSuppressed(t *testing.T) {
	lifecycle, _, historyRepo := newTestLifecycle()
	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{}, "", "")
	require.NoError(t, err)
	_, err = lifecycle.RecordUploadSuccess(context.Background(), submission.ID, "msg-1", "")
	require.NoError(t, err)

	pending := func() *models.ClearinghouseResponse {
		return &models.ClearinghouseResponse{
			Pending: &models.PendingBlock{
				ResponseStatusBlock: models.ResponseStatusBlock{StatusOut: "15"},
			},
		}
	}

	first, err := lifecycle.ApplyResponse(context.Background(), submission.ID, pending())
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := lifecycle.ApplyResponse(context.Background(), submission.ID, pending())
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	require.Len(t, historyRepo.entries, 3, "a suppressed duplicate appends no history")
}

func TestLifecycle_TerminalSubmissionNeverRegresses(t *testing.T) {
	lifecycle, _, historyRepo := newTestLifecycle()
	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{}, "", "")
	require.NoError(t, err)
	_, err = lifecycle.RecordUploadSuccess(context.Background(), submission.ID, "msg-1", "")
	require.NoError(t, err)
	_, err = lifecycle.ApplyResponse(context.Background(), submission.ID, acceptedResponse())
	require.NoError(t, err)

	entriesBefore := len(historyRepo.entries)

	applied, err := lifecycle.ApplyResponse(context.Background(), submission.ID, &models.ClearinghouseResponse{
		Rejected: &models.RejectedBlock{
			ResponseStatusBlock: models.ResponseStatusBlock{StatusOut: "40"},
		},
	})
	require.NoError(t, err)
	assert.True(t, applied.AlreadyFinal)
	assert.Equal(t, models.SubmissionStatusAccepted, applied.Submission.Status)
	assert.Len(t, historyRepo.entries, entriesBefore)

	_, err = lifecycle.MarkError(context.Background(), submission.ID, "manual")
	assert.Error(t, err)
}

func TestLifecycle_MarkError(t *testing.T) {
	lifecycle, _, historyRepo := newTestLifecycle()
	submission, err := lifecycle.Create(context.Background(), testCanonicalInvoice(), contracts.LifecycleRefs{}, "", "")
	require.NoError(t, err)

	updated, err := lifecycle.MarkError(context.Background(), submission.ID, "document content lost")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusError, updated.Status)

	require.Len(t, historyRepo.entries, 2)
	assert.Equal(t, "document content lost", historyRepo.entries[1].Note)

	_, err = lifecycle.RecordUploadSuccess(context.Background(), submission.ID, "msg-1", "")
	assert.Error(t, err, "error is a sink state")
}

func TestLifecycle_UnknownSubmission(t *testing.T) {
	lifecycle, _, _ := newTestLifecycle()

	_, err := lifecycle.RecordUploadSuccess(context.Background(), "missing", "msg-1", "")
	assert.Error(t, err)
}
