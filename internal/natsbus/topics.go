package natsbus

import (
	"time"

	"github.com/google/uuid"
)

// Topic layout for lifecycle events. Subscribers filter with NATS wildcards.

const (
	TopicEventsAll      = "events.>"
	TopicEventsScaffold = "events.scaffold.*"
	TopicEventsGoal     = "events.goal.*"
	TopicEventsRecipe   = "events.recipe.*"

	TopicScaffoldCompleted = "events.scaffold.completed"
	TopicScaffoldFailed    = "events.scaffold.failed"
	TopicGoalPromoted      = "events.goal.promoted"
	TopicGoalUpdated       = "events.goal.updated"
	TopicGoalDeleted       = "events.goal.deleted"
	TopicRecipeDeleted     = "events.recipe.deleted"
)

// Event is the envelope published on all events.* topics.
type Event struct {
	ID      string         `json:"id"`
	Topic   string         `json:"topic"`
	At      time.Time      `json:"at"`
	Subject string         `json:"subject,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// NewEvent builds an envelope with a fresh id and the current time.
func NewEvent(topic, subject string, detail map[string]any) Event {
	return Event{
		ID:      uuid.NewString(),
		Topic:   topic,
		At:      time.Now().UTC(),
		Subject: subject,
		Detail:  detail,
	}
}

// PublishEvent wraps subject and detail in an envelope and publishes it.
func (c *Client) PublishEvent(topic, subject string, detail map[string]any) error {
	return c.PublishJSON(topic, NewEvent(topic, subject, detail))
}
