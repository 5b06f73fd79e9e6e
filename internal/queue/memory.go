package queue

import (
	"context"
	"errors"
	"sync"
)

// MemoryBroker delivers messages in process. It backs local runs without
// RabbitMQ and tests. Failed messages are retried up to MaxRetries times and
// then parked on the queue's DLQ, which Messages exposes.
type MemoryBroker struct {
	MaxRetries int

	mu       sync.Mutex
	handlers map[string]MessageHandler
	parked   map[string][][]byte
	closed   bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		MaxRetries: 3,
		handlers:   make(map[string]MessageHandler),
		parked:     make(map[string][][]byte),
	}
}

// Publish runs the subscribed handler synchronously. Messages for a queue
// nobody consumes are parked.
func (b *MemoryBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	handler, ok := b.handlers[queueName]
	b.mu.Unlock()

	if !ok {
		b.park(queueName, message)
		return nil
	}

	var err error
	for attempt := 0; attempt <= b.MaxRetries; attempt++ {
		if err = handler(ctx, message); err == nil || errors.Is(err, ErrPermanent) {
			break
		}
	}
	if err != nil {
		b.park(DLQ(queueName), message)
	}

	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[queueName] = handler
	return nil
}

// Messages returns what was parked on queueName.
func (b *MemoryBroker) Messages(queueName string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([][]byte(nil), b.parked[queueName]...)
}

func (b *MemoryBroker) Ping(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}
	return nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	return nil
}

func (b *MemoryBroker) park(queueName string, message []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.parked[queueName] = append(b.parked[queueName], message)
}
