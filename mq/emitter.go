package mq

import (
	"context"
	"encoding/json"
	"log"

	"verdia/models"
	"verdia/rdx"
)

// EventChannel is the redis pub/sub channel carrying storefront events.
const EventChannel = "storefront-events"

// Event is the envelope published on cart and catalog mutations.
type Event struct {
	Name    string       `json:"name"`
	Content models.Index `json:"content"`
}

// Emit publishes a mutation event to Redis. Fire-and-forget: a publish
// failure is logged, never surfaced to the request that caused it.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(Event{Name: eventName, Content: content})
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), EventChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s to Redis: %v", eventName, err)
	}
}
