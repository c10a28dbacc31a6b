package contracts

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
)

// ClinicRepository reads the single clinic/biller configuration document.
type ClinicRepository interface {
	GetClinicSettings(ctx context.Context) (*models.ClinicSettings, error)
}
