package live

import (
	"context"
	"time"

	"example.com/scoreboard/internal/scoreboard"
)

type EventType string

const (
	EventMatchStarted  EventType = "match_started"
	EventScoreUpdated  EventType = "score_updated"
	EventMatchFinished EventType = "match_finished"
)

// Event describes one accepted change to the board. Match holds the state
// after the change (for match_finished, the final state).
type Event struct {
	Type  EventType        `json:"type"`
	Match scoreboard.Match `json:"match"`
	At    time.Time        `json:"at"`
}

// Publisher delivers board events to downstream consumers.
// Delivery is best effort: the board logs failures and carries on.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
