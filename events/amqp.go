package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/catalog-admin/logging"
	"github.com/catalog-admin/metrics"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	gobreaker "github.com/sony/gobreaker/v2"
)

// AMQPConfig configures the broker publisher
type AMQPConfig struct {
	URL      string
	Exchange string

	// FailureThreshold consecutive failures open the circuit for BreakerTimeout.
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

// DefaultAMQPConfig publishes to amq.topic with a 5-failure / 30s breaker
func DefaultAMQPConfig(url string) AMQPConfig {
	return AMQPConfig{
		URL:              url,
		Exchange:         "amq.topic",
		FailureThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// ErrPublisherClosed is returned by Publish after Close
var ErrPublisherClosed = errors.New("publisher is closed")

// AMQPPublisher publishes persistent JSON messages to a topic exchange.
// The connection and channel are opened on first use and reopened after a drop.
type AMQPPublisher struct {
	cfg     AMQPConfig
	breaker *gobreaker.CircuitBreaker[interface{}]

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// NewAMQPPublisher creates a publisher. No connection is made until Connect or the first Publish.
func NewAMQPPublisher(cfg AMQPConfig) *AMQPPublisher {
	if cfg.Exchange == "" {
		cfg.Exchange = "amq.topic"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "amqp-publisher",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BrokerCircuitState.Set(float64(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("broker circuit breaker state changed")
		},
	}

	return &AMQPPublisher{
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker[interface{}](settings),
	}
}

// Connect opens the connection eagerly so misconfiguration shows up at boot
func (p *AMQPPublisher) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.channel()
	return err
}

// Publish sends body to the configured exchange under routingKey
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publish(ctx, routingKey, body)
	})
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, p.cfg.Exchange, routingKey, false, false, msg); err != nil {
		p.resetChannel()
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// channel returns an open channel, dialing and declaring as needed. Caller holds mu.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("amqp dial: %w", err)
		}
		p.conn = conn
		logging.Info().Str("exchange", p.cfg.Exchange).Msg("connected to broker")
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	// amq.* exchanges are predeclared by the broker and may not be redeclared
	if !strings.HasPrefix(p.cfg.Exchange, "amq.") {
		if err := ch.ExchangeDeclare(p.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("declare exchange %s: %w", p.cfg.Exchange, err)
		}
	}

	p.ch = ch
	return ch, nil
}

func (p *AMQPPublisher) resetChannel() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
}

// State reports the circuit breaker state
func (p *AMQPPublisher) State() string {
	return p.breaker.State().String()
}

// Close shuts the channel and connection down
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.resetChannel()
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
