package queue

import (
	"context"
	"errors"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	// Ping reports whether the broker can still accept messages.
	Ping(ctx context.Context) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueOrderFinalized = "order-finalized"
	QueueMediaCleanup   = "media-cleanup"
)

// Queues lists every work queue the service consumes. Each one gets a
// companion dead-letter queue named by DLQ.
var Queues = []string{QueueOrderFinalized, QueueMediaCleanup}

func DLQ(queueName string) string {
	return queueName + "-dlq"
}

var ErrBrokerClosed = errors.New("broker connection is closed")

// ErrPermanent marks a handler failure that retrying cannot fix, such as a
// malformed message. Brokers send it straight to the dead-letter queue.
var ErrPermanent = errors.New("permanent failure")

// Permanent wraps err so that errors.Is(err, ErrPermanent) holds.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() []error { return []error{ErrPermanent, e.err} }
