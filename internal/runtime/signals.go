package runtime

import (
	"fmt"

	"offlined/internal/worker"
)

// Signal names delivered to a worker. They match the browser service-worker
// event names so handlers written against that contract map one to one.
const (
	SignalInstall  = "install"
	SignalActivate = "activate"
	SignalFetch    = "fetch"
)

// Dispatch delivers the named signal to h. event must be the matching
// *worker.InstallEvent, *worker.ActivateEvent or *worker.FetchEvent.
func Dispatch(h worker.Handler, signal string, event any) error {
	if h == nil {
		return fmt.Errorf("dispatch %s: nil handler", signal)
	}
	switch signal {
	case SignalInstall:
		e, ok := event.(*worker.InstallEvent)
		if !ok || e == nil {
			return eventTypeError(signal, event)
		}
		h.OnInstall(e)
	case SignalActivate:
		e, ok := event.(*worker.ActivateEvent)
		if !ok || e == nil {
			return eventTypeError(signal, event)
		}
		h.OnActivate(e)
	case SignalFetch:
		e, ok := event.(*worker.FetchEvent)
		if !ok || e == nil {
			return eventTypeError(signal, event)
		}
		h.OnFetch(e)
	default:
		return fmt.Errorf("dispatch: unknown signal %q", signal)
	}
	return nil
}

func eventTypeError(signal string, event any) error {
	return fmt.Errorf("dispatch %s: unexpected event type %T", signal, event)
}
