package docengine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

type generateRequest struct {
	Invoice        *models.CanonicalInvoice `json:"invoice"`
	GeneratePDF    bool                     `json:"generatePdf"`
	RequestSubtype string                   `json:"requestSubtype"`
}

var (
	docEngineClientInstance contracts.DocumentEngineClient
	onceDocEngineClient     sync.Once
)

type docEngineClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewDocumentEngineClient(cfg config.DocumentEngine, logger *zap.Logger) contracts.DocumentEngineClient {
	onceDocEngineClient.Do(func() {
		timeout := time.Duration(cfg.RequestTimeoutInSeconds) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		docEngineClientInstance = &docEngineClient{
			BaseUrl:    cfg.BaseUrl + "/generate",
			HTTPClient: &http.Client{Timeout: timeout},
			Log:        logger,
		}
	})
	return docEngineClientInstance
}

func (c *docEngineClient) Generate(ctx context.Context, invoice *models.CanonicalInvoice, opts contracts.GenerateOptions) (*contracts.GenerateResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("docEngineClient.Generate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceNoKey, invoice.InvoiceNumber),
		zap.String("request_subtype", string(opts.RequestSubtype)),
	)

	subtype := opts.RequestSubtype
	if subtype == "" {
		subtype = contracts.GenerateSubtypeOriginal
	}

	requestJSON, err := json.Marshal(generateRequest{
		Invoice:        invoice,
		GeneratePDF:    opts.GeneratePDF,
		RequestSubtype: string(subtype),
	})
	if err != nil {
		c.Log.Error("docEngineClient.Generate error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("docEngineClient.Generate error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("docEngineClient.Generate error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("docEngineClient.Generate error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrReadHTTPResponse(err)
	}

	if resp.StatusCode != constvars.StatusOK {
		statusErr := fmt.Errorf("document engine returned status %d", resp.StatusCode)
		c.Log.Error("docEngineClient.Generate non-OK status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, exceptions.ErrDocumentGenerationFailed(statusErr, snippet(bodyBytes))
	}

	result := new(contracts.GenerateResult)
	if err := json.Unmarshal(bodyBytes, result); err != nil {
		c.Log.Error("docEngineClient.Generate error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrReadHTTPResponse(err)
	}
	if result.UsedFormatVersion == "" {
		result.UsedFormatVersion = constvars.InvoiceRequestVersionDefault
	}
	return result, nil
}

func snippet(body []byte) string {
	const max = 512
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
