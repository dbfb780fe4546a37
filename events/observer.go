package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/catalog-admin/logging"
	"github.com/catalog-admin/metrics"
	"github.com/catalog-admin/models"
	"github.com/rs/zerolog"
)

// Observer is notified after an entity write has been committed
type Observer interface {
	Created(ctx context.Context, model models.Model) error
	Updated(ctx context.Context, model models.Model) error
	Deleted(ctx context.Context, modelName, id string) error
}

// Lifecycle actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RoutingKey builds model.<entity>.<action>
func RoutingKey(modelName, action string) string {
	return "model." + modelName + "." + action
}

// SyncModelObserver publishes the entity state on create and update, and only the id on delete
type SyncModelObserver struct {
	publisher Publisher
	strict    bool
	logger    zerolog.Logger
}

// NewSyncModelObserver creates an observer. With strict set, publish failures are
// returned to the caller as *PublishError; otherwise they are logged and dropped.
func NewSyncModelObserver(publisher Publisher, strict bool) *SyncModelObserver {
	return &SyncModelObserver{
		publisher: publisher,
		strict:    strict,
		logger:    logging.With().Str("component", "events").Logger(),
	}
}

func (o *SyncModelObserver) Created(ctx context.Context, model models.Model) error {
	return o.publishModel(ctx, model, ActionCreated)
}

func (o *SyncModelObserver) Updated(ctx context.Context, model models.Model) error {
	return o.publishModel(ctx, model, ActionUpdated)
}

func (o *SyncModelObserver) Deleted(ctx context.Context, modelName, id string) error {
	body, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", modelName, err)
	}
	return o.publish(ctx, RoutingKey(modelName, ActionDeleted), body)
}

func (o *SyncModelObserver) publishModel(ctx context.Context, model models.Model, action string) error {
	body, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", model.ModelName(), err)
	}
	return o.publish(ctx, RoutingKey(model.ModelName(), action), body)
}

func (o *SyncModelObserver) publish(ctx context.Context, routingKey string, body []byte) error {
	err := o.publisher.Publish(ctx, routingKey, body)
	metrics.RecordEventPublished(routingKey, err)
	if err == nil {
		o.logger.Debug().Str("routing_key", routingKey).Msg("change event published")
		return nil
	}

	o.logger.Error().Err(err).Str("routing_key", routingKey).Msg("change event not published")
	if o.strict {
		return &PublishError{RoutingKey: routingKey, Err: err}
	}
	return nil
}
