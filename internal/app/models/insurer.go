package models

// Insurer read model. GLN addresses the insurer generally; ReceiverGLN is
// the explicit electronic receiver identifier when the insurer registered
// one with the clearinghouse.
type Insurer struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	GLN         string `json:"gln,omitempty" bson:"gln,omitempty"`
	ReceiverGLN string `json:"receiverGln,omitempty" bson:"receiverGln,omitempty"`
	Street      string `json:"street,omitempty" bson:"street,omitempty"`
	ZIP         string `json:"zip,omitempty" bson:"zip,omitempty"`
	City        string `json:"city,omitempty" bson:"city,omitempty"`
	TimeModel   `json:",inline" bson:",inline"`
}
