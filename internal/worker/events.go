package worker

import (
	"net/http"
	"sync"
)

// Handler reacts to the three lifecycle signals delivered by the hosting runtime.
type Handler interface {
	OnInstall(e *InstallEvent)
	OnActivate(e *ActivateEvent)
	OnFetch(e *FetchEvent)
}

// InstallEvent is delivered once per install signal.
type InstallEvent struct {
	skipWaiting func()
}

// NewInstallEvent builds an install event whose SkipWaiting calls fn.
func NewInstallEvent(fn func()) *InstallEvent {
	return &InstallEvent{skipWaiting: fn}
}

// SkipWaiting asks the runtime to activate this worker immediately,
// preempting any previously active version.
func (e *InstallEvent) SkipWaiting() {
	if e.skipWaiting != nil {
		e.skipWaiting()
	}
}

// ActivateEvent is delivered once per activate signal.
type ActivateEvent struct{}

// FetchEvent wraps one intercepted request.
type FetchEvent struct {
	Request *http.Request

	mu        sync.Mutex
	responded bool
	future    *Future
}

// NewFetchEvent builds a fetch event for req.
func NewFetchEvent(req *http.Request) *FetchEvent {
	return &FetchEvent{Request: req}
}

// RespondWith hands the runtime the eventual response for this request.
// Only the first call counts; later calls return ErrAlreadyResponded.
func (e *FetchEvent) RespondWith(f *Future) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.responded {
		return ErrAlreadyResponded
	}
	e.responded = true
	e.future = f
	return nil
}

// Response returns the future passed to RespondWith, or nil if the handler never responded.
func (e *FetchEvent) Response() *Future {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.future
}
