package contracts

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/models"
)

type InsurerRepository interface {
	FindInsurerByID(ctx context.Context, insurerID string) (*models.Insurer, error)
}
