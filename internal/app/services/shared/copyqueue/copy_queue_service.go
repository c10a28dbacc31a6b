package copyqueue

import (
	"context"
	"fmt"
	"sync"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"

	json "github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	StandardQueueName   = "patient_copy_queue"
	DeadLetterQueueName = "patient_copy_dlq"
)

// Service manages the durable patient-copy queue and its dead-letter queue.
// Publishes wait for broker confirms so an accepted dispatch survives a
// broker restart.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	prefetch int
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, queue := range []string{StandardQueueName, DeadLetterQueueName} {
		_, err = ch.QueueDeclare(
			queue,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		prefetch: prefetch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// QueuedItem is one fetched delivery with its decoded job.
type QueuedItem struct {
	DeliveryTag uint64
	Job         contracts.PatientCopyJob
}

// Enqueue publishes a job to the standard queue with persistence and waits
// for the broker confirm.
func (s *Service) Enqueue(ctx context.Context, job contracts.PatientCopyJob) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("copyQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, job.SubmissionID),
	)
	return s.publish(ctx, StandardQueueName, job)
}

// Reenqueue puts a failed job back at the tail of the standard queue with
// its incremented failure count.
func (s *Service) Reenqueue(ctx context.Context, job contracts.PatientCopyJob) error {
	return s.publish(ctx, StandardQueueName, job)
}

// EnqueueToDeadQueue parks a job that exhausted its attempts.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, job contracts.PatientCopyJob) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Warn("copyQueue.EnqueueToDeadQueue parking job",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, job.SubmissionID),
		zap.Int(constvars.LoggingAttemptKey, job.FailedCount),
	)
	return s.publish(ctx, DeadLetterQueueName, job)
}

// FetchN retrieves up to max jobs using basic.get without auto-ack. Poison
// payloads are acked and moved to the dead-letter queue directly.
func (s *Service) FetchN(ctx context.Context, max int) ([]QueuedItem, error) {
	if max <= 0 {
		max = 1
	}
	items := make([]QueuedItem, 0, max)

	for i := 0; i < max; i++ {
		d, ok, err := s.ch.Get(StandardQueueName, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var job contracts.PatientCopyJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			_ = d.Ack(false)
			_ = s.publishRaw(ctx, DeadLetterQueueName, d.Body)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Job: job})
	}

	return items, nil
}

// Ack removes a delivered job from the queue.
func (s *Service) Ack(deliveryTag uint64) error {
	return s.ch.Ack(deliveryTag, false)
}

func (s *Service) publish(ctx context.Context, queue string, job contracts.PatientCopyJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishRaw(ctx, queue, body)
}

func (s *Service) publishRaw(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueueConfirm(fmt.Errorf("message not confirmed"))
		}
	case <-ctx.Done():
		return exceptions.ErrQueueConfirm(ctx.Err())
	}
	return nil
}
