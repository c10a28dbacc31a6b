package routing

import (
	"testing"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestRoute_ReceiverFallbackChain(t *testing.T) {
	clinic := &models.ClinicSettings{GLN: "7601000000001"}

	routing := Route(models.LawTypeHealth, models.BillingTypeTP, &models.Insurer{
		ReceiverGLN: "7601000000100",
		GLN:         "7601000000200",
	}, clinic, config.Billing{})
	assert.Equal(t, "7601000000100", routing.ReceiverGLN)

	routing = Route(models.LawTypeHealth, models.BillingTypeTP, &models.Insurer{
		GLN: "7601000000200",
	}, clinic, config.Billing{})
	assert.Equal(t, "7601000000200", routing.ReceiverGLN)

	routing = Route(models.LawTypeHealth, models.BillingTypeTP, &models.Insurer{}, clinic, config.Billing{})
	assert.Equal(t, PlaceholderReceiverGLN, routing.ReceiverGLN)

	routing = Route(models.LawTypeHealth, models.BillingTypeTP, nil, clinic, config.Billing{})
	assert.Equal(t, PlaceholderReceiverGLN, routing.ReceiverGLN)
}

func TestRoute_TGOverridesAnyReceiver(t *testing.T) {
	clinic := &models.ClinicSettings{GLN: "7601000000001"}
	insurer := &models.Insurer{ReceiverGLN: "7601000000100", GLN: "7601000000200"}

	routing := Route(models.LawTypeAccident, models.BillingTypeTG, insurer, clinic, config.Billing{})

	assert.Equal(t, NoDirectTransmissionGLN, routing.ReceiverGLN)
	assert.Equal(t, IntermediateGLN, routing.IntermediateGLN)
}

func TestRoute_SenderPrefersConfiguredOverride(t *testing.T) {
	clinic := &models.ClinicSettings{GLN: "7601000000001"}

	routing := Route(models.LawTypeHealth, models.BillingTypeTP, nil, clinic, config.Billing{})
	assert.Equal(t, "7601000000001", routing.SenderGLN)

	routing = Route(models.LawTypeHealth, models.BillingTypeTP, nil, clinic, config.Billing{SenderGLN: "7601000000999"})
	assert.Equal(t, "7601000000999", routing.SenderGLN)
}

func TestRoute_IntermediaryIsConstant(t *testing.T) {
	clinic := &models.ClinicSettings{GLN: "7601000000001"}

	for _, billingType := range []models.BillingType{models.BillingTypeTP, models.BillingTypeTG} {
		routing := Route(models.LawTypeOther, billingType, nil, clinic, config.Billing{})
		assert.Equal(t, IntermediateGLN, routing.IntermediateGLN)
	}
}
