package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/controllers"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/middlewares"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/requests"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/responses"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSubmissionUsecase struct {
	mock.Mock
}

func (m *MockSubmissionUsecase) Submit(ctx context.Context, request *requests.SubmitInvoice) (*responses.SubmissionSummary, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.SubmissionSummary), args.Error(1)
}

func (m *MockSubmissionUsecase) Retransmit(ctx context.Context, submissionID string) (*responses.SubmissionSummary, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.SubmissionSummary), args.Error(1)
}

func (m *MockSubmissionUsecase) GetSubmission(ctx context.Context, submissionID string) (*models.Submission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionUsecase) ListHistory(ctx context.Context, submissionID string) ([]models.SubmissionHistoryEntry, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubmissionHistoryEntry), args.Error(1)
}

type MockResponseUsecase struct {
	mock.Mock
}

func (m *MockResponseUsecase) ProcessInbound(ctx context.Context, content []byte) (*responses.InboundResponseResult, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.InboundResponseResult), args.Error(1)
}

func newTestRouter(t *testing.T, submissionUsecase *MockSubmissionUsecase, responseUsecase *MockResponseUsecase) (*chi.Mux, string) {
	t.Helper()

	testAPIKey := "test-inbound-api-key-12345"
	hash, err := utils.HashAPIKey(testAPIKey)
	require.NoError(t, err)

	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:    "api",
			Version:           "v1",
			MaxRequests:       100,
			InboundAPIKeyHash: hash,
		},
	}

	logger := zap.NewNop()
	mw := middlewares.NewMiddlewares(logger, internalConfig)
	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		mw,
		&controllers.SubmissionController{Log: logger, SubmissionUsecase: submissionUsecase},
		&controllers.ResponseController{Log: logger, ResponseUsecase: responseUsecase},
		&controllers.HealthController{Log: logger},
	)
	return router, testAPIKey
}

func TestSubmissionRouter_SubmitInvoice(t *testing.T) {
	submissionUsecase := new(MockSubmissionUsecase)
	responseUsecase := new(MockResponseUsecase)
	router, _ := newTestRouter(t, submissionUsecase, responseUsecase)

	submissionUsecase.On("Submit", mock.Anything, mock.MatchedBy(func(request *requests.SubmitInvoice) bool {
		return request.InvoiceID == "inv-1" && request.PatientID == "patient-1"
	})).Return(&responses.SubmissionSummary{
		SubmissionID:  "sub-1",
		InvoiceNumber: "2026-0042",
		Status:        "pending",
		Transmitted:   true,
	}, nil)

	body, _ := json.Marshal(map[string]interface{}{"patient_id": "patient-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/inv-1/submissions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"), "a request id is issued when the client sends none")

	var reply responses.ResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.True(t, reply.Success)
	submissionUsecase.AssertExpectations(t)
}

func TestSubmissionRouter_SubmitValidation(t *testing.T) {
	submissionUsecase := new(MockSubmissionUsecase)
	responseUsecase := new(MockResponseUsecase)
	router, _ := newTestRouter(t, submissionUsecase, responseUsecase)

	// Missing patient_id fails validation before the usecase is reached.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/inv-1/submissions", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	submissionUsecase.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSubmissionRouter_GetSubmission(t *testing.T) {
	submissionUsecase := new(MockSubmissionUsecase)
	responseUsecase := new(MockResponseUsecase)
	router, _ := newTestRouter(t, submissionUsecase, responseUsecase)

	submissionUsecase.On("GetSubmission", mock.Anything, "sub-1").Return(&models.Submission{
		ID:            "sub-1",
		InvoiceNumber: "2026-0042",
		Status:        models.SubmissionStatusPending,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/sub-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	submissionUsecase.AssertExpectations(t)
}

func TestResponseRouter_RequiresAPIKey(t *testing.T) {
	submissionUsecase := new(MockSubmissionUsecase)
	responseUsecase := new(MockResponseUsecase)
	router, apiKey := newTestRouter(t, submissionUsecase, responseUsecase)

	responseUsecase.On("ProcessInbound", mock.Anything, mock.Anything).Return(&responses.InboundResponseResult{
		SubmissionID: "sub-1",
		Outcome:      "accepted",
	}, nil)

	payload := []byte(`<invoice request_id="2026-0042"/><accepted explanation="processed"/>`)

	// Without the key the middleware rejects the request.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/responses/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	responseUsecase.AssertNotCalled(t, "ProcessInbound", mock.Anything, mock.Anything)

	// With the key the usecase runs.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/responses/", bytes.NewReader(payload))
	req.Header.Set("x-api-key", apiKey)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	responseUsecase.AssertExpectations(t)
}

func TestHealthEndpoint(t *testing.T) {
	submissionUsecase := new(MockSubmissionUsecase)
	responseUsecase := new(MockResponseUsecase)
	router, _ := newTestRouter(t, submissionUsecase, responseUsecase)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
