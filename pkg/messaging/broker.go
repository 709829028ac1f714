package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NoopBroker discards everything; used when no broker is configured.
type NoopBroker struct{}

func (NoopBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (NoopBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (NoopBroker) Close() error { return nil }
