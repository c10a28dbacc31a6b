package contracts

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
)

type GenerateRequestSubtype string

const (
	GenerateSubtypeOriginal GenerateRequestSubtype = "original"
	GenerateSubtypeCopy     GenerateRequestSubtype = "copy"
)

type GenerateOptions struct {
	GeneratePDF    bool
	RequestSubtype GenerateRequestSubtype
}

// GenerateResult mirrors the document engine's reply. Success=false is fatal
// for the submission attempt and is never retried.
type GenerateResult struct {
	Success           bool   `json:"success"`
	GeneratedContent  string `json:"generatedContent,omitempty"`
	RenderedDocument  []byte `json:"renderedDocument,omitempty"`
	UsedFormatVersion string `json:"usedFormatVersion,omitempty"`
	ValidationError   string `json:"validationError,omitempty"`
	AbortInfo         string `json:"abortInfo,omitempty"`
	Error             string `json:"error,omitempty"`
}

// DocumentEngineClient calls the external invoice document engine.
type DocumentEngineClient interface {
	Generate(ctx context.Context, invoice *models.CanonicalInvoice, opts GenerateOptions) (*GenerateResult, error)
}
