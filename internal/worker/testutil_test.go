package worker

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"syscall"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func respond(status int, body string) roundTripFunc {
	return func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    r,
		}, nil
	}
}

func refuse() roundTripFunc {
	return func(r *http.Request) (*http.Response, error) {
		return nil, &netError{errors.New("dial tcp 127.0.0.1:80: connect: connection refused"), syscall.ECONNREFUSED}
	}
}

type netError struct {
	msg   error
	cause error
}

func (e *netError) Error() string { return e.msg.Error() }
func (e *netError) Unwrap() error { return e.cause }

func readBody(r *http.Response) string {
	b, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	return string(b)
}
