// Package runtime is the hosting side of a fetch interceptor: it owns the
// worker lifecycle, delivers the install, activate and fetch signals, and
// serves inbound HTTP traffic through the active worker.
//
//   - signals.go: signal names and Dispatch, the name-to-method adapter.
//   - container.go: Container, registration, activation and Snapshot.
//   - serve.go: ServeHTTP, request rewriting and response copying.
//   - events.go / eventpub_memory.go: lifecycle event publishing.
//   - metrics.go: Prometheus counters.
//
// A version that calls SkipWaiting during install preempts the active one.
// Otherwise it waits until Release is called.
package runtime
