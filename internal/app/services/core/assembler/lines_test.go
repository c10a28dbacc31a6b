package assembler

import (
	"testing"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTariff(t *testing.T) {
	assert.Equal(t, models.TariffTypeLab, classifyTariff(models.InvoiceLineItem{
		TariffType:  models.TariffTypeLab,
		CatalogName: "TARMED",
	}), "explicit tariff type wins over catalog name")

	assert.Equal(t, models.TariffTypeTarmed, classifyTariff(models.InvoiceLineItem{CatalogName: "tarmed"}))
	assert.Equal(t, models.TariffTypeLab, classifyTariff(models.InvoiceLineItem{CatalogName: " EAL "}))
	assert.Equal(t, models.TariffTypeUnclassified, classifyTariff(models.InvoiceLineItem{CatalogName: "MiGeL"}))
	assert.Equal(t, models.TariffTypeUnclassified, classifyTariff(models.InvoiceLineItem{}))
}

func TestMapLineItems_Defaults(t *testing.T) {
	invoiceDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	lines := mapLineItems([]models.InvoiceLineItem{
		{Code: "00.0010", UnitPrice: 27.90},
	}, invoiceDate, "7601000000001")

	assert.Len(t, lines, 1)
	line := lines[0]
	assert.Equal(t, float64(1), line.Quantity)
	assert.Equal(t, float64(1), line.Scale)
	assert.Equal(t, invoiceDate, line.DateOfService)
	assert.Equal(t, "7601000000001", line.ProviderGLN)
	assert.Equal(t, "7601000000001", line.ResponsibleGLN)
	assert.InDelta(t, 27.90, line.Amount, 0.0001)
}

func TestMapLineItems_ExplicitValuesKept(t *testing.T) {
	invoiceDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	serviceDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	lines := mapLineItems([]models.InvoiceLineItem{
		{
			Code:          "1234",
			Quantity:      2,
			UnitPrice:     50,
			Scale:         0.5,
			Amount:        42,
			DateOfService: &serviceDate,
			ProviderGLN:   "7601000000111",
		},
	}, invoiceDate, "7601000000001")

	line := lines[0]
	assert.Equal(t, float64(2), line.Quantity)
	assert.Equal(t, 0.5, line.Scale)
	assert.Equal(t, float64(42), line.Amount, "explicit amount wins over the computed one")
	assert.Equal(t, serviceDate, line.DateOfService)
	assert.Equal(t, "7601000000111", line.ProviderGLN)
	assert.Equal(t, "7601000000111", line.ResponsibleGLN, "responsible falls back to the line provider")
}

func TestDefaultLineGenerator(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, DefaultLineGenerator(0, date, "7601000000001"))
	assert.Nil(t, DefaultLineGenerator(-5, date, "7601000000001"))

	lines := DefaultLineGenerator(5, date, "7601000000001")
	assert.Len(t, lines, 1)
	assert.Equal(t, "00.0010", lines[0].Code)
	assert.InDelta(t, 27.90, lines[0].Amount, 0.0001)

	// 15 minutes: first 5 plus two further units.
	lines = DefaultLineGenerator(15, date, "7601000000001")
	assert.Len(t, lines, 2)
	assert.Equal(t, "00.0020", lines[1].Code)
	assert.Equal(t, float64(2), lines[1].Quantity)
	assert.InDelta(t, 2*17.76, lines[1].Amount, 0.0001)

	// A started unit bills fully: 16 minutes means three further units.
	lines = DefaultLineGenerator(16, date, "7601000000001")
	assert.Equal(t, float64(3), lines[1].Quantity)
}
