package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
	"github.com/healthvault/health-api/pkg/logger"
	"github.com/healthvault/health-api/pkg/messaging"
	"github.com/healthvault/health-api/pkg/metrics"
)

const eventsChannel = "health.events"

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

// OutboxProcessor drains pending outbox events to the message broker.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  log,
		metrics: m,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error(err, "failed to process outbox events")
			}
		}
	}
}

func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxQueueLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.PendingEvents(ctx, p.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending events: %w", err)
	}

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.metrics.OutboxEventsFailed.Inc()
			p.logger.WithFields(map[string]interface{}{
				"event_id":   event.ID,
				"event_type": event.EventType,
			}).Error(err, "failed to publish event")
			if markErr := p.repo.MarkFailed(ctx, event.ID); markErr != nil {
				p.logger.Error(markErr, "failed to mark event failed")
			}
			continue
		}

		p.metrics.OutboxEventsProcessed.Inc()
		if err := p.repo.MarkPublished(ctx, event.ID); err != nil {
			p.logger.Error(err, "failed to mark event published")
		}
	}
	return nil
}

func (p *OutboxProcessor) publish(ctx context.Context, event *model.OutboxEvent) error {
	msg := messaging.Message{
		Type:    event.EventType,
		Payload: event.Payload,
	}
	return p.broker.Publish(ctx, eventsChannel, msg)
}
