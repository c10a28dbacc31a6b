package patientcopy

import (
	"context"
	"fmt"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/routing"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/shared/copyqueue"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"

	"go.uber.org/zap"
)

const workerLockKey = "patientcopy:worker:lock"

// Queue is the slice of the copy queue the worker drains.
type Queue interface {
	FetchN(ctx context.Context, n int) ([]copyqueue.QueuedItem, error)
	Ack(deliveryTag uint64) error
	Reenqueue(ctx context.Context, job contracts.PatientCopyJob) error
	EnqueueToDeadQueue(ctx context.Context, job contracts.PatientCopyJob) error
}

// Worker drains the patient-copy queue: for each job it regenerates the
// submission's document with the copy subtype and delivers it. Failures are
// re-queued and dead-lettered after the configured attempts; nothing here
// ever touches the primary submission's state.
type Worker struct {
	log           *zap.Logger
	cfg           *config.InternalConfig
	locker        contracts.LockerService
	queue         Queue
	assembler     contracts.InvoiceAssembler
	docEngine     contracts.DocumentEngineClient
	clearinghouse contracts.ClearinghouseClient
	stop          chan struct{}
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue Queue,
	assembler contracts.InvoiceAssembler,
	docEngine contracts.DocumentEngineClient,
	clearinghouse contracts.ClearinghouseClient,
) *Worker {
	return &Worker{
		log:           log,
		cfg:           cfg,
		locker:        lockerSvc,
		queue:         queue,
		assembler:     assembler,
		docEngine:     docEngine,
		clearinghouse: clearinghouse,
		stop:          make(chan struct{}),
	}
}

// Start begins the ticker loop and returns a stop function.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	tick := time.Duration(w.cfg.CopyWorker.TickSeconds) * time.Second
	if tick <= 0 {
		tick = time.Minute
	}
	ticker := time.NewTicker(tick)
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case <-ticker.C:
				w.runOnce(ctx, tick)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, tick time.Duration) {
	ttl := tick - time.Second
	if ttl < time.Second {
		ttl = time.Second
	}
	acquired, lockVal, err := w.locker.TryLock(ctx, workerLockKey, ttl)
	if err != nil {
		w.log.Error("patientcopy.worker lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, workerLockKey, lockVal); err != nil {
			w.log.Error("patientcopy.worker unlock failed", zap.Error(err))
		}
	}()

	items, err := w.queue.FetchN(ctx, w.cfg.CopyWorker.Prefetch)
	if err != nil {
		w.log.Error("patientcopy.worker fetch failed", zap.Error(err))
		return
	}

	for _, item := range items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item copyqueue.QueuedItem) {
	job := item.Job
	w.log.Info("patientcopy.worker processing job",
		zap.String(constvars.LoggingSubmissionIDKey, job.SubmissionID),
		zap.Int(constvars.LoggingAttemptKey, job.FailedCount),
	)

	if err := w.deliverCopy(ctx, job); err != nil {
		w.log.Error("patientcopy.worker delivery failed",
			zap.String(constvars.LoggingSubmissionIDKey, job.SubmissionID),
			zap.Error(err),
		)
		w.retryOrPark(ctx, item)
		return
	}

	if err := w.queue.Ack(item.DeliveryTag); err != nil {
		w.log.Error("patientcopy.worker ack failed",
			zap.String(constvars.LoggingSubmissionIDKey, job.SubmissionID),
			zap.Error(err),
		)
	}
}

// deliverCopy reassembles the invoice, regenerates with the copy subtype
// and uploads the copy document.
func (w *Worker) deliverCopy(ctx context.Context, job contracts.PatientCopyJob) error {
	assembled, err := w.assembler.Assemble(ctx, contracts.AssembleInput{
		InvoiceID: job.InvoiceID,
		RecordID:  job.RecordID,
		PatientID: job.PatientID,
	})
	if err != nil {
		return err
	}

	invoice := assembled.Invoice
	invoice.Routing = routing.Route(invoice.LawType, invoice.BillingType, assembled.Insurer, assembled.Clinic, w.cfg.Billing)

	result, err := w.docEngine.Generate(ctx, invoice, contracts.GenerateOptions{
		GeneratePDF:    true,
		RequestSubtype: contracts.GenerateSubtypeCopy,
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("copy generation failed: %s", result.Error)
	}

	upload, err := w.clearinghouse.Upload(ctx, contracts.UploadInput{
		Content:       []byte(result.GeneratedContent),
		Filename:      job.Filename,
		InvoiceNumber: invoice.InvoiceNumber,
		SenderGLN:     invoice.Routing.SenderGLN,
		ReceiverGLN:   invoice.Routing.ReceiverGLN,
		LawType:       invoice.LawType,
		BillingType:   invoice.BillingType,
	})
	if err != nil {
		return err
	}
	if !upload.Success {
		return fmt.Errorf("copy upload rejected: %s", upload.ErrorMessage)
	}
	return nil
}

func (w *Worker) retryOrPark(ctx context.Context, item copyqueue.QueuedItem) {
	job := item.Job
	job.FailedCount++

	maxAttempts := w.cfg.CopyWorker.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	if err := w.queue.Ack(item.DeliveryTag); err != nil {
		w.log.Error("patientcopy.worker ack before requeue failed", zap.Error(err))
		return
	}

	if job.FailedCount >= maxAttempts {
		if err := w.queue.EnqueueToDeadQueue(ctx, job); err != nil {
			w.log.Error("patientcopy.worker dead-letter enqueue failed", zap.Error(err))
		}
		return
	}

	if err := w.queue.Reenqueue(ctx, job); err != nil {
		w.log.Error("patientcopy.worker reenqueue failed", zap.Error(err))
	}
}
