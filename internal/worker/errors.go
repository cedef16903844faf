package worker

import "errors"

// networkFailure signals that the outgoing request could not complete.
// The cause is kept for logging only; callers never branch on it.
type networkFailure struct {
	url string
	err error
}

func (e networkFailure) Error() string {
	if e.err == nil {
		return "network failure: " + e.url
	}
	return "network failure: " + e.url + ": " + e.err.Error()
}

func (e networkFailure) Unwrap() error { return e.err }

// ErrNetworkFailure constructs a networkFailure for url.
func ErrNetworkFailure(url string, cause error) error {
	return networkFailure{url: url, err: cause}
}

// IsNetworkFailure reports whether err (or anything it wraps) is a network failure.
func IsNetworkFailure(err error) bool {
	var nf networkFailure
	return errors.As(err, &nf)
}

// ErrAlreadyResponded is returned by FetchEvent.RespondWith on every call after the first.
var ErrAlreadyResponded = errors.New("respondWith already called for this fetch event")
