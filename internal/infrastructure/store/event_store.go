package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultRetention is the number of events kept per session.
const DefaultRetention = 200

// Event is one recorded storefront activity
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
}

// EventStore keeps a bounded in-memory journal per visitor session and
// forwards every event to an optional publisher.
type EventStore struct {
	mu        sync.RWMutex
	events    map[string][]Event // sessionID -> events
	versions  map[string]int
	retention int
	publisher Publisher
}

func NewEventStore(publisher Publisher) *EventStore {
	return &EventStore{
		events:    make(map[string][]Event),
		versions:  make(map[string]int),
		retention: DefaultRetention,
		publisher: publisher,
	}
}

// WithRetention changes how many events are kept per session.
func (es *EventStore) WithRetention(n int) *EventStore {
	if n > 0 {
		es.retention = n
	}
	return es
}

// Append records an event and publishes it.
func (es *EventStore) Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", eventType, err)
	}

	es.mu.Lock()
	es.versions[aggregateID]++
	event := Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       es.versions[aggregateID],
	}
	events := append(es.events[aggregateID], event)
	if len(events) > es.retention {
		events = append([]Event(nil), events[len(events)-es.retention:]...)
	}
	es.events[aggregateID] = events
	es.mu.Unlock()

	if es.publisher != nil {
		if err := es.publisher.Publish(ctx, aggregateID, event); err != nil {
			return &event, fmt.Errorf("publish %s: %w", eventType, err)
		}
	}

	return &event, nil
}

// GetEvents returns a copy of the events kept for a session
func (es *EventStore) GetEvents(aggregateID string) []Event {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return append([]Event(nil), es.events[aggregateID]...)
}

// Forget drops everything recorded for a session.
func (es *EventStore) Forget(aggregateID string) {
	es.mu.Lock()
	defer es.mu.Unlock()
	delete(es.events, aggregateID)
	delete(es.versions, aggregateID)
}
