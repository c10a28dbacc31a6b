package models

// ClinicSettings is the biller-side configuration read model: the clinic's
// registered routing identifier, its address and the billing defaults the
// assembler falls back to.
type ClinicSettings struct {
	ID                string `json:"id" bson:"_id"`
	Name              string `json:"name" bson:"name"`
	GLN               string `json:"gln" bson:"gln"`
	Street            string `json:"street,omitempty" bson:"street,omitempty"`
	ZIP               string `json:"zip,omitempty" bson:"zip,omitempty"`
	City              string `json:"city,omitempty" bson:"city,omitempty"`
	Canton            string `json:"canton,omitempty" bson:"canton,omitempty"`
	Phone             string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email             string `json:"email,omitempty" bson:"email,omitempty"`
	ProviderGLN       string `json:"providerGln,omitempty" bson:"providerGln,omitempty"`
	ProviderName      string `json:"providerName,omitempty" bson:"providerName,omitempty"`
	PaymentPeriodDays int    `json:"paymentPeriodDays,omitempty" bson:"paymentPeriodDays,omitempty"`
	TimeModel         `json:",inline" bson:",inline"`
}
