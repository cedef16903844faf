package worker

import "net/http"

// Result is the settled outcome of a network attempt: a response or an error.
type Result struct {
	Response *http.Response
	Err      error
}

// Ok reports whether the result carries a response.
func (r Result) Ok() bool { return r.Err == nil }

// UnwrapOr returns the response on success, otherwise fallback().
func (r Result) UnwrapOr(fallback func() *http.Response) *http.Response {
	if r.Err == nil {
		return r.Response
	}
	return fallback()
}

// Future is a Result that settles exactly once, possibly in the future.
type Future struct {
	done chan struct{}
	res  Result
}

// Go runs fn on its own goroutine and returns a future for its outcome.
func Go(fn func() (*http.Response, error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if p := recover(); p != nil {
				f.res = Result{Err: panicError{p}}
			}
		}()
		resp, err := fn()
		f.res = Result{Response: resp, Err: err}
	}()
	return f
}

// Resolved returns a future already settled with resp.
func Resolved(resp *http.Response) *Future {
	f := &Future{done: make(chan struct{}), res: Result{Response: resp}}
	close(f.done)
	return f
}

// Rejected returns a future already settled with err.
func Rejected(err error) *Future {
	f := &Future{done: make(chan struct{}), res: Result{Err: err}}
	close(f.done)
	return f
}

// Await blocks until the future settles and returns its result.
// It may be called any number of times from any goroutine.
func (f *Future) Await() Result {
	<-f.done
	return f.res
}

// Done is closed once the future has settled.
func (f *Future) Done() <-chan struct{} { return f.done }

// Recover returns a future that settles with f's response, or with
// fallback(err) when f fails. The derived future never fails.
func (f *Future) Recover(fallback func(error) *http.Response) *Future {
	return Go(func() (*http.Response, error) {
		res := f.Await()
		return res.UnwrapOr(func() *http.Response { return fallback(res.Err) }), nil
	})
}

type panicError struct{ v any }

func (e panicError) Error() string { return "panic in future" }
