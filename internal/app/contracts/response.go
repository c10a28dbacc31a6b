package contracts

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/responses"
)

// ResponseUsecase decodes inbound clearinghouse content, correlates the
// submission and applies the outcome through the lifecycle manager.
type ResponseUsecase interface {
	ProcessInbound(ctx context.Context, content []byte) (*responses.InboundResponseResult, error)
}
