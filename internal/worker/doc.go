// Package worker holds the fetch interceptor and the event types it reacts to.
// It is structured into small files by concern:
//
//   - events.go: InstallEvent, ActivateEvent, FetchEvent and the Handler interface.
//   - future.go: Result and Future, the asynchronous outcome of a network attempt.
//   - errors.go: NetworkFailure and ErrAlreadyResponded helpers.
//   - fetch.go: Fetch, the network attempt over an http.RoundTripper.
//   - interceptor.go: Interceptor, the offline-fallback Handler.
//
// The hosting side (signal dispatch, activation, serving HTTP) lives in
// package runtime. Handlers never see it directly; they only get the
// primitives carried on each event.
package worker
