// Package routing derives the transport identifiers an invoice message is
// addressed with. All routing constants live here so the third-party-payer
// exception stays auditable in one place.
package routing

import (
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
)

const (
	// IntermediateGLN is the clearinghouse's fixed routing identifier; every
	// invoice message passes through it.
	IntermediateGLN = "7601001304307"

	// NoDirectTransmissionGLN addresses the clearinghouse itself. TG
	// invoices must never reach the insurer directly, so their receiver is
	// overridden to this identifier unconditionally.
	NoDirectTransmissionGLN = "7601999999999"

	// PlaceholderReceiverGLN is the documented fallback when an insurer has
	// neither an explicit receiver identifier nor a general one.
	PlaceholderReceiverGLN = "7601003000000"
)

// Route computes {sender, receiver, intermediary} from the billing context.
// It is pure: same inputs, same routing.
func Route(lawType models.LawType, billingType models.BillingType, insurer *models.Insurer, clinic *models.ClinicSettings, billing config.Billing) models.Routing {
	sender := clinic.GLN
	if billing.SenderGLN != "" {
		sender = billing.SenderGLN
	}

	receiver := PlaceholderReceiverGLN
	if insurer != nil {
		switch {
		case insurer.ReceiverGLN != "":
			receiver = insurer.ReceiverGLN
		case insurer.GLN != "":
			receiver = insurer.GLN
		}
	}

	// TG invoices are addressed to the clearinghouse, never to the insurer,
	// regardless of any insurer override.
	if billingType == models.BillingTypeTG {
		receiver = NoDirectTransmissionGLN
	}

	return models.Routing{
		SenderGLN:       sender,
		ReceiverGLN:     receiver,
		IntermediateGLN: IntermediateGLN,
	}
}
