package assembler

import (
	"strings"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
)

// classifyTariff resolves the tariff type of a stored line item. An explicit
// tariff type always wins; otherwise the catalog name decides, and anything
// unrecognized falls through to the unclassified tariff.
func classifyTariff(item models.InvoiceLineItem) models.TariffType {
	if item.TariffType != "" {
		return item.TariffType
	}
	switch strings.ToUpper(strings.TrimSpace(item.CatalogName)) {
	case constvars.TariffCatalogTarmed:
		return models.TariffTypeTarmed
	case constvars.TariffCatalogLab:
		return models.TariffTypeLab
	default:
		return models.TariffTypeUnclassified
	}
}

// mapLineItems converts stored line items to canonical service lines,
// filling per-line defaults from the resolved invoice context.
func mapLineItems(items []models.InvoiceLineItem, defaultDate time.Time, providerGLN string) []models.ServiceLine {
	lines := make([]models.ServiceLine, 0, len(items))
	for _, item := range items {
		line := models.ServiceLine{
			TariffType:     classifyTariff(item),
			Code:           item.Code,
			RefCode:        item.RefCode,
			Quantity:       item.Quantity,
			Session:        item.Session,
			DateOfService:  defaultDate,
			ProviderGLN:    providerGLN,
			ResponsibleGLN: providerGLN,
			BodyLocation:   item.BodyLocation,
			UnitPrice:      item.UnitPrice,
			Scale:          item.Scale,
			Amount:         item.Amount,
			Description:    item.Description,
		}
		if item.Quantity == 0 {
			line.Quantity = 1
		}
		if item.DateOfService != nil && !item.DateOfService.IsZero() {
			line.DateOfService = *item.DateOfService
		}
		if item.ProviderGLN != "" {
			line.ProviderGLN = item.ProviderGLN
		}
		if item.ResponsibleGLN != "" {
			line.ResponsibleGLN = item.ResponsibleGLN
		} else if item.ProviderGLN != "" {
			line.ResponsibleGLN = item.ProviderGLN
		}
		if line.Scale == 0 {
			line.Scale = 1
		}
		if line.Amount == 0 {
			line.Amount = line.ComputedAmount()
		}
		lines = append(lines, line)
	}
	return lines
}

// Consultation codes and per-unit prices used by the default generator.
const (
	consultationFirstCode      = "00.0010"
	consultationFollowUpCode   = "00.0020"
	consultationUnitMinutes    = 5
	consultationFirstUnitPrice = 27.90
	consultationUnitPrice      = 17.76
)

// DefaultLineGenerator derives consultation service lines from a duration.
// The first five minutes bill at the base consultation code, every further
// started five-minute unit at the follow-up code. It is the generator wired
// in when no custom one is configured.
func DefaultLineGenerator(durationMinutes int, date time.Time, providerGLN string) []models.ServiceLine {
	if durationMinutes <= 0 {
		return nil
	}

	first := models.ServiceLine{
		TariffType:     models.TariffTypeTarmed,
		Code:           consultationFirstCode,
		Quantity:       1,
		Session:        1,
		DateOfService:  date,
		ProviderGLN:    providerGLN,
		ResponsibleGLN: providerGLN,
		UnitPrice:      consultationFirstUnitPrice,
		Scale:          1,
		Description:    "Consultation, first 5 min",
	}
	first.Amount = first.ComputedAmount()
	lines := []models.ServiceLine{first}

	extraUnits := (durationMinutes - consultationUnitMinutes + consultationUnitMinutes - 1) / consultationUnitMinutes
	if extraUnits > 0 {
		followUp := models.ServiceLine{
			TariffType:     models.TariffTypeTarmed,
			Code:           consultationFollowUpCode,
			Quantity:       float64(extraUnits),
			Session:        1,
			DateOfService:  date,
			ProviderGLN:    providerGLN,
			ResponsibleGLN: providerGLN,
			UnitPrice:      consultationUnitPrice,
			Scale:          1,
			Description:    "Consultation, every further 5 min",
		}
		followUp.Amount = followUp.ComputedAmount()
		lines = append(lines, followUp)
	}
	return lines
}
