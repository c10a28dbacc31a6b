package contracts

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
)

type PatientRepository interface {
	FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
}
