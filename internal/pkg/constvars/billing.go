package constvars

// Billing defaults used by the assembler's layered field resolution.
const (
	DefaultCurrency             = "CHF"
	DefaultCanton               = "ZH"
	DefaultPaymentPeriodDays    = 30
	DefaultConsultationDuration = 15
	DefaultInsurerGLN           = "7601003000001"
)

// Tariff catalog names recognized by the line-item heuristic.
const (
	TariffCatalogTarmed = "TARMED"
	TariffCatalogLab    = "EAL"
)

// Wire format versions the document engine may report.
const (
	InvoiceRequestVersionDefault = "4.5"
)

const (
	GeneratedContentFileExtension = ".xml"
	RenderedDocumentFileExtension = ".pdf"
)
