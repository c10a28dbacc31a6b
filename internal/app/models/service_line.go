package models

import "time"

type TariffType string

const (
	TariffTypeTarmed       TariffType = "001"
	TariffTypeLab          TariffType = "317"
	TariffTypeUnclassified TariffType = "999"
)

type ServiceLine struct {
	TariffType     TariffType `json:"tariffType"`
	Code           string     `json:"code"`
	RefCode        string     `json:"refCode,omitempty"`
	Quantity       float64    `json:"quantity"`
	Session        int        `json:"session"`
	DateOfService  time.Time  `json:"dateOfService"`
	ProviderGLN    string     `json:"providerGln"`
	ResponsibleGLN string     `json:"responsibleGln"`
	BodyLocation   string     `json:"bodyLocation,omitempty"`
	UnitPrice      float64    `json:"unitPrice"`
	Scale          float64    `json:"scale"`
	Amount         float64    `json:"amount"`
	Description    string     `json:"description,omitempty"`
}

// ComputedAmount is quantity x unit price x scale factor, the amount used
// when the upstream record carries none.
func (l *ServiceLine) ComputedAmount() float64 {
	scale := l.Scale
	if scale == 0 {
		scale = 1
	}
	return l.Quantity * l.UnitPrice * scale
}
