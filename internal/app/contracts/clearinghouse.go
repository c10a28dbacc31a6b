package contracts

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
)

type UploadInput struct {
	Content       []byte
	Filename      string
	Source        string
	InvoiceNumber string
	SenderGLN     string
	ReceiverGLN   string
	LawType       models.LawType
	BillingType   models.BillingType
}

type UploadResult struct {
	Success               bool   `json:"success"`
	StatusCode            int    `json:"statusCode"`
	TransmissionReference string `json:"transmissionReference,omitempty"`
	ErrorMessage          string `json:"errorMessage,omitempty"`
	RawResponse           string `json:"rawResponse,omitempty"`
}

// ClearinghouseClient delivers generated content to the clearinghouse proxy.
// One call performs at most one upload attempt; retrying is the caller's
// decision. Enabled reports whether proxy credentials are configured;
// a disabled client is a valid configuration, not an error.
type ClearinghouseClient interface {
	Enabled() bool
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}
