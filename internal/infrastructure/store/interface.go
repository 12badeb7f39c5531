package store

import "context"

// EventStoreInterface defines the interface for the session journal
type EventStoreInterface interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error)
	GetEvents(aggregateID string) []Event
	Forget(aggregateID string)
}

// Publisher forwards appended events to an external sink
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}
