package worker

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// OfflineBody is the body of the synthesized fallback response.
const OfflineBody = "Offline"

// Interceptor forwards every fetch to the network and answers with
// OfflineResponse when the network attempt fails.
type Interceptor struct {
	network http.RoundTripper
	log     zerolog.Logger
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithNetwork sets the transport used for network attempts (default http.DefaultTransport).
func WithNetwork(rt http.RoundTripper) Option {
	return func(i *Interceptor) { i.network = rt }
}

// WithLogger sets the diagnostic logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(i *Interceptor) { i.log = l }
}

// New returns an Interceptor. It holds no per-event state and is safe for
// concurrent fetches.
func New(opts ...Option) *Interceptor {
	i := &Interceptor{network: http.DefaultTransport, log: zerolog.Nop()}
	for _, o := range opts {
		o(i)
	}
	return i
}

var _ Handler = (*Interceptor)(nil)

func (i *Interceptor) OnInstall(e *InstallEvent) {
	i.log.Info().Str("event", "install").Msg("installed")
	e.SkipWaiting()
}

func (i *Interceptor) OnActivate(e *ActivateEvent) {
	i.log.Info().Str("event", "activate").Msg("activated")
}

func (i *Interceptor) OnFetch(e *FetchEvent) {
	req := e.Request
	f := Fetch(i.network, req).Recover(func(err error) *http.Response {
		i.log.Warn().Err(err).Str("method", req.Method).Str("url", requestURL(req)).Msg("network failed, serving offline fallback")
		return OfflineResponse(req)
	})
	// The event is fresh from the runtime, so this is the first call.
	_ = e.RespondWith(f)
}

// OfflineResponse builds the fallback: a 200 text/plain response with body "Offline".
func OfflineResponse(req *http.Request) *http.Response {
	h := make(http.Header)
	h.Set("Content-Type", "text/plain;charset=UTF-8")
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          offlineBody{strings.NewReader(OfflineBody)},
		ContentLength: int64(len(OfflineBody)),
		Request:       req,
	}
}

// IsOffline reports whether resp was built by OfflineResponse.
func IsOffline(resp *http.Response) bool {
	if resp == nil {
		return false
	}
	_, ok := resp.Body.(offlineBody)
	return ok
}

type offlineBody struct{ *strings.Reader }

func (offlineBody) Close() error { return nil }
