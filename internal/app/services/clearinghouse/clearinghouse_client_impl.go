package clearinghouse

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/shared/jwtmanager"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type uploadReply struct {
	Reference string `json:"reference,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

var (
	clearinghouseClientInstance contracts.ClearinghouseClient
	onceClearinghouseClient     sync.Once
)

type clearinghouseClient struct {
	BaseUrl    string
	Source     string
	enabled    bool
	JWTManager *jwtmanager.JWTManager
	Limiter    *rate.Limiter
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewClearinghouseClient(cfg config.Clearinghouse, logger *zap.Logger) (contracts.ClearinghouseClient, error) {
	var initErr error
	onceClearinghouseClient.Do(func() {
		client := &clearinghouseClient{
			BaseUrl: cfg.ProxyBaseUrl + "/upload",
			Source:  cfg.Source,
			enabled: cfg.ProxyAPIKey != "",
			Log:     logger,
		}

		if client.enabled {
			ttl := time.Duration(cfg.TokenTTLInSeconds) * time.Second
			client.JWTManager, initErr = jwtmanager.NewJWTManager(cfg.ProxyAPIKey, cfg.Source, ttl, logger)
			if initErr != nil {
				return
			}
		}

		perMinute := cfg.UploadsPerMinute
		if perMinute <= 0 {
			perMinute = 30
		}
		burst := cfg.UploadBurst
		if burst <= 0 {
			burst = 5
		}
		client.Limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)

		timeout := time.Duration(cfg.RequestTimeoutInSeconds) * time.Second
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client.HTTPClient = &http.Client{Timeout: timeout}

		clearinghouseClientInstance = client
	})
	if initErr != nil {
		return nil, initErr
	}
	return clearinghouseClientInstance, nil
}

func (c *clearinghouseClient) Enabled() bool {
	return c.enabled
}

// Upload performs exactly one transmission attempt. A network or proxy
// failure returns an error; the caller decides whether a retransmission is
// ever attempted, so nothing here retries.
func (c *clearinghouseClient) Upload(ctx context.Context, input contracts.UploadInput) (*contracts.UploadResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("clearinghouseClient.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceNoKey, input.InvoiceNumber),
		zap.String(constvars.LoggingFilenameKey, input.Filename),
	)

	if !c.enabled {
		return nil, exceptions.ErrTransmissionFailed(nil, "transmission is disabled")
	}

	if err := c.Limiter.Wait(ctx); err != nil {
		c.Log.Error("clearinghouseClient.Upload rate limiter wait aborted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTransmissionFailed(err, "upload rate limit wait aborted")
	}

	body, contentType, err := c.buildMultipartBody(input)
	if err != nil {
		return nil, exceptions.ErrTransmissionFailed(err, "cannot build upload body")
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, body)
	if err != nil {
		c.Log.Error("clearinghouseClient.Upload error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, contentType)

	token, err := c.JWTManager.CreateToken(input.InvoiceNumber)
	if err != nil {
		return nil, exceptions.ErrTransmissionFailed(err, "cannot sign proxy token")
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("clearinghouseClient.Upload error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("clearinghouseClient.Upload error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrReadHTTPResponse(err)
	}

	result := &contracts.UploadResult{
		StatusCode:  resp.StatusCode,
		RawResponse: string(bodyBytes),
	}

	reply := new(uploadReply)
	if len(bodyBytes) > 0 {
		// The proxy replies JSON on the happy path but may send plain text
		// on errors; a decode failure is not itself an upload failure.
		_ = json.Unmarshal(bodyBytes, reply)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		result.ErrorMessage = reply.Error
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("proxy returned status %d", resp.StatusCode)
		}
		c.Log.Error("clearinghouseClient.Upload proxy rejected upload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("status_code", resp.StatusCode),
		)
		return result, nil
	}

	result.Success = true
	result.TransmissionReference = reply.Reference
	return result, nil
}

func (c *clearinghouseClient) buildMultipartBody(input contracts.UploadInput) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", input.Filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(input.Content); err != nil {
		return nil, "", err
	}

	source := input.Source
	if source == "" {
		source = c.Source
	}
	fields := map[string]string{
		"source":        source,
		"invoiceNumber": input.InvoiceNumber,
		"senderGln":     input.SenderGLN,
		"receiverGln":   input.ReceiverGLN,
		"lawType":       string(input.LawType),
		"billingType":   string(input.BillingType),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
