package contracts

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
)

// InvoiceRepository reads the upstream billing records. Both the structured
// invoice and the legacy free-text record can act as a submission source.
type InvoiceRepository interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*models.Invoice, error)
	FindRecordByID(ctx context.Context, recordID string) (*models.Record, error)
}
