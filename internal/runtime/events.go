package runtime

import (
	"time"

	"github.com/google/uuid"
)

// Event names published by the Container.
const (
	EventInstalled   = "installed"
	EventWaiting     = "waiting"
	EventActivated   = "activated"
	EventRedundant   = "redundant"
	EventFallback    = "fetch.fallback"
	EventFetchFailed = "fetch.failed"
)

// Event represents a runtime lifecycle event.
// Minimal and stable: name + worker version and optional fields.
type Event struct {
	ID      string
	Name    string
	Version string
	Time    time.Time
	Fields  map[string]any
}

func newEvent(name, version string, fields map[string]any) Event {
	return Event{ID: uuid.NewString(), Name: name, Version: version, Time: time.Now(), Fields: fields}
}

// EventPublisher receives events from the Container. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
