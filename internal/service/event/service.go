package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
	"github.com/healthvault/health-api/pkg/metrics"
)

// Service records entity mutations into the outbox for asynchronous
// publication. Recording failures are surfaced to callers but never
// block the mutation itself.
type Service struct {
	repo repository.OutboxRepository
	m    *metrics.Metrics
}

func NewService(repo repository.OutboxRepository) *Service {
	return &Service{repo: repo}
}

// WithMetrics enables per-entity operation counters. Event types follow
// the "entity.action" convention.
func (s *Service) WithMetrics(m *metrics.Metrics) *Service {
	s.m = m
	return s
}

func (s *Service) Record(ctx context.Context, eventType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	if s.m != nil {
		if entity, action, ok := strings.Cut(eventType, "."); ok {
			s.m.EntityOperations.WithLabelValues(entity, action).Inc()
		}
	}

	return s.repo.Append(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   raw,
	})
}
