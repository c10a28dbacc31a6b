package copyqueue

import (
	"context"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"

	"github.com/google/uuid"
)

type dispatcher struct {
	svc *Service
}

// NewDispatcher exposes the queue service behind the dispatch contract the
// submission pipeline depends on.
func NewDispatcher(svc *Service) contracts.CopyDispatcher {
	return &dispatcher{svc: svc}
}

func (d *dispatcher) Dispatch(ctx context.Context, job contracts.PatientCopyJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	return d.svc.Enqueue(ctx, job)
}
