package clearinghouse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/shared/jwtmanager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newTestUploadClient(t *testing.T, baseURL string) *clearinghouseClient {
	t.Helper()
	jwtManager, err := jwtmanager.NewJWTManager("test-proxy-key", "testclinic", time.Minute, zap.NewNop())
	require.NoError(t, err)
	return &clearinghouseClient{
		BaseUrl:    baseURL + "/upload",
		Source:     "testclinic",
		enabled:    true,
		JWTManager: jwtManager,
		Limiter:    rate.NewLimiter(rate.Inf, 1),
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Log:        zap.NewNop(),
	}
}

func sampleUploadInput() contracts.UploadInput {
	return contracts.UploadInput{
		Content:       []byte("<request/>"),
		Filename:      "2026-0042.xml",
		InvoiceNumber: "2026-0042",
		SenderGLN:     "7601000000001",
		ReceiverGLN:   "7601000000200",
		LawType:       models.LawTypeHealth,
		BillingType:   models.BillingTypeTP,
	}
}

func TestUpload_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "testclinic", r.FormValue("source"))
		assert.Equal(t, "2026-0042", r.FormValue("invoiceNumber"))
		assert.Equal(t, "7601000000001", r.FormValue("senderGln"))
		assert.Equal(t, "7601000000200", r.FormValue("receiverGln"))
		assert.Equal(t, "kvg", r.FormValue("lawType"))
		assert.Equal(t, "TP", r.FormValue("billingType"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "2026-0042.xml", header.Filename)

		w.Write([]byte(`{"reference":"ref-77","message":"stored"}`))
	}))
	defer server.Close()

	client := newTestUploadClient(t, server.URL)
	result, err := client.Upload(context.Background(), sampleUploadInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ref-77", result.TransmissionReference)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestUpload_ProxyRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"unknown receiver gln"}`))
	}))
	defer server.Close()

	client := newTestUploadClient(t, server.URL)
	result, err := client.Upload(context.Background(), sampleUploadInput())

	require.NoError(t, err, "a proxy rejection is a result, not a transport error")
	assert.False(t, result.Success)
	assert.Equal(t, "unknown receiver gln", result.ErrorMessage)
}

func TestUpload_PlainTextErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client := newTestUploadClient(t, server.URL)
	result, err := client.Upload(context.Background(), sampleUploadInput())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "proxy returned status 502", result.ErrorMessage)
	assert.Equal(t, "upstream unavailable", result.RawResponse)
}

func TestUpload_DisabledClient(t *testing.T) {
	client := &clearinghouseClient{enabled: false, Log: zap.NewNop()}

	assert.False(t, client.Enabled())
	_, err := client.Upload(context.Background(), sampleUploadInput())
	assert.Error(t, err)
}

func TestUpload_ExplicitSourceWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "other-source", r.FormValue("source"))
		w.Write([]byte(`{"reference":"ref-1"}`))
	}))
	defer server.Close()

	client := newTestUploadClient(t, server.URL)
	input := sampleUploadInput()
	input.Source = "other-source"

	_, err := client.Upload(context.Background(), input)
	require.NoError(t, err)
}

func TestUpload_TokenVerifiable(t *testing.T) {
	jwtManager, err := jwtmanager.NewJWTManager("test-proxy-key", "testclinic", time.Minute, zap.NewNop())
	require.NoError(t, err)

	var token string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestUploadClient(t, server.URL)
	_, err = client.Upload(context.Background(), sampleUploadInput())
	require.NoError(t, err)

	claims, err := jwtManager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "2026-0042", claims.Subject)
	assert.Equal(t, "testclinic", claims.Issuer)
}
