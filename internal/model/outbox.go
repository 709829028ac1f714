package model

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxEvent records an entity mutation for asynchronous publication.
// Events live in memory only, alongside the entities they describe.
type OutboxEvent struct {
	ID          uuid.UUID       `json:"id"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
	Status      OutboxStatus    `json:"status"`
	Attempts    int             `json:"attempts"`
	CreatedAt   time.Time       `json:"created_at"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
}

// Clone returns a deep copy sharing no state with the receiver.
func (e *OutboxEvent) Clone() *OutboxEvent {
	out := *e
	out.Payload = slices.Clone(e.Payload)
	if e.PublishedAt != nil {
		at := *e.PublishedAt
		out.PublishedAt = &at
	}
	return &out
}
