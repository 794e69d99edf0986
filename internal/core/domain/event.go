package domain

import "time"

// EventType names a domain event published after a successful write.
type EventType string

const (
	EventUserCreated EventType = "user.created"
	EventPlanCreated EventType = "plan.created"
	EventLogCreated  EventType = "log.created"
)

// Event is a fire-and-forget notification. OwnerID doubles as the ordering key.
type Event struct {
	Type       EventType         `json:"type"`
	OwnerID    string            `json:"user_id"`
	ResourceID string            `json:"resource_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
