package models

import "time"

// Patient read model, consumed from the record store.
type Patient struct {
	ID         string    `json:"id" bson:"_id"`
	GivenName  string    `json:"givenName" bson:"givenName"`
	FamilyName string    `json:"familyName" bson:"familyName"`
	Street     string    `json:"street,omitempty" bson:"street,omitempty"`
	ZIP        string    `json:"zip,omitempty" bson:"zip,omitempty"`
	City       string    `json:"city,omitempty" bson:"city,omitempty"`
	Canton     string    `json:"canton,omitempty" bson:"canton,omitempty"`
	BirthDate  time.Time `json:"birthDate" bson:"birthDate"`
	Sex        string    `json:"sex,omitempty" bson:"sex,omitempty"`
	SSN        string    `json:"ssn,omitempty" bson:"ssn,omitempty"`
	InsurerID  string    `json:"insurerId,omitempty" bson:"insurerId,omitempty"`
	TimeModel  `json:",inline" bson:",inline"`
}
