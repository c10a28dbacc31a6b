package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
)

// GenerateRequestID issues the service-scoped correlation id attached to
// every request without a client-supplied one.
func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateInvoiceNumber builds a time-based token used when the caller and
// the source record both supply no invoice number.
func GenerateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s", now.Format("20060102-150405.000"))
}

// GenerateSubmissionFilename names the wire-format file sent to the
// clearinghouse proxy.
func GenerateSubmissionFilename(invoiceNumber, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s%s", invoiceNumber, timestamp, extension)
}
