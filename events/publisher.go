// Package events publishes catalog change notifications to a topic exchange.
//
// Every successful write produces one message routed as
// model.<entity>.<created|updated|deleted>. Subscribers bind by pattern,
// e.g. "model.video.*" or "model.*.deleted".
package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/catalog-admin/logging"
)

// Publisher delivers one serialized event to the exchange
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// PublishError reports a change event that could not be delivered.
// The entity write it describes has already been committed.
type PublishError struct {
	RoutingKey string
	Err        error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s: %v", e.RoutingKey, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// LogPublisher writes events to the log instead of a broker.
// It is used when no broker URL is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	logging.Debug().
		Str("routing_key", routingKey).
		RawJSON("body", body).
		Msg("change event (broker disabled)")
	return nil
}

// Message is an event captured by MemoryPublisher
type Message struct {
	RoutingKey string
	Body       []byte
}

// MemoryPublisher records events in memory. Set Err to simulate an unavailable broker.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

func (p *MemoryPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.messages = append(p.messages, Message{RoutingKey: routingKey, Body: append([]byte(nil), body...)})
	return nil
}

// Messages returns a copy of everything published so far
func (p *MemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message(nil), p.messages...)
}

// RoutingKeys returns the routing keys published so far, in order
func (p *MemoryPublisher) RoutingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		keys = append(keys, m.RoutingKey)
	}
	return keys
}

// Reset drops the recorded messages
func (p *MemoryPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = nil
}
