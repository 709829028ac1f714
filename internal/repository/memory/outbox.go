package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
)

type outboxRepository struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func NewOutboxRepository() repository.OutboxRepository {
	return &outboxRepository{}
}

func (r *outboxRepository) Append(ctx context.Context, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	r.events = append(r.events, event.Clone())
	return nil
}

func (r *outboxRepository) PendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.OutboxEvent
	for _, e := range r.events {
		if e.Status != model.OutboxStatusPending {
			continue
		}
		out = append(out, e.Clone())
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *outboxRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			now := time.Now()
			e.Status = model.OutboxStatusPublished
			e.PublishedAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			e.Attempts++
			e.Status = model.OutboxStatusFailed
			return nil
		}
	}
	return repository.ErrNotFound
}
