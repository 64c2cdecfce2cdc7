// Package events publishes entity lifecycle events after successful writes.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/logging"
)

const (
	EntityProject = "project"
	EntityTask    = "task"
	EntityUser    = "user"
)

const (
	ProjectCreated  = "project.created"
	ProjectUpdated  = "project.updated"
	ProjectArchived = "project.archived"
	ProjectDeleted  = "project.deleted"

	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDone    = "task.done"
	TaskDeleted = "task.deleted"

	UserCreated     = "user.created"
	UserUpdated     = "user.updated"
	UserDeactivated = "user.deactivated"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Emit publishes an event for entity/id that occurred at the given time.
// Failures are logged and swallowed: the write that produced the event has
// already been committed.
func Emit(ctx context.Context, p Publisher, eventType, entity string, id int64, at time.Time) {
	if p == nil {
		return
	}

	e := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Entity:     entity,
		EntityID:   id,
		OccurredAt: at.UTC(),
		RequestID:  logging.RequestID(ctx),
	}
	if err := p.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("event publish failed",
			"event_type", eventType,
			"entity_id", id,
			"error", err,
		)
	}
}
