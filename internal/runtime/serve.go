package runtime

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"offlined/internal/worker"
	"offlined/pkg/types"
)

// Hop-by-hop headers. These are removed when sent to the network and when
// copied back to the client.
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// ServeHTTP delivers r as a fetch signal to the active version and writes
// back whatever response it settles on. Without an active version, or when
// the reaction never calls RespondWith, the request goes to the network as is.
func (c *Container) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c.upstream == nil && !r.URL.IsAbs() {
		// Without an upstream the target must come from an absolute-form request line.
		writeJSONError(w, http.StatusBadRequest, "absolute URL required without upstream")
		return
	}
	out := c.outgoing(r)
	outcome := outcomePassthrough
	var f *worker.Future
	if v := c.controller(); v != nil {
		ev := worker.NewFetchEvent(out)
		if err := c.deliver(v, SignalFetch, ev); err != nil {
			c.log.Error().Err(err).Str("version", v.id).Msg("fetch dispatch failed")
		}
		f = ev.Response()
	}
	if f == nil {
		f = worker.Fetch(c.network, out)
	} else {
		outcome = outcomeNetwork
	}

	res := f.Await()
	if res.Err != nil || res.Response == nil {
		// An unhandled rejection surfaces as a network error, not as a fallback.
		fetchTotal.WithLabelValues(outcomeError).Inc()
		c.log.Warn().Err(res.Err).Str("method", r.Method).Str("url", out.URL.String()).Msg("fetch failed")
		c.publish(EventFetchFailed, c.controller(), map[string]any{"url": out.URL.String()})
		writeJSONError(w, http.StatusBadGateway, "network error")
		return
	}
	if worker.IsOffline(res.Response) {
		outcome = outcomeFallback
		c.publish(EventFallback, c.controller(), map[string]any{"url": out.URL.String()})
	}
	fetchTotal.WithLabelValues(outcome).Inc()
	copyResponse(w, res.Response)
}

// outgoing rewrites an inbound server request into a client request aimed at
// the upstream origin, or at its own absolute URL when no upstream is set.
func (c *Container) outgoing(r *http.Request) *http.Request {
	out := r.Clone(r.Context())
	out.RequestURI = ""
	if r.ContentLength == 0 {
		out.Body = nil
	}
	if c.upstream != nil {
		out.URL.Scheme = c.upstream.Scheme
		out.URL.Host = c.upstream.Host
		out.URL.Path = joinPath(c.upstream.Path, r.URL.Path)
		out.URL.RawPath = ""
		out.Host = c.upstream.Host
	}
	removeHopHeaders(out.Header)
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if prior := out.Header.Get("X-Forwarded-For"); prior != "" {
			ip = prior + ", " + ip
		}
		out.Header.Set("X-Forwarded-For", ip)
	}
	return out
}

func joinPath(a, b string) string {
	switch {
	case a == "" || a == "/":
		return b
	case strings.HasSuffix(a, "/") && strings.HasPrefix(b, "/"):
		return a + b[1:]
	case !strings.HasSuffix(a, "/") && !strings.HasPrefix(b, "/"):
		return a + "/" + b
	}
	return a + b
}

func removeHopHeaders(h http.Header) {
	for _, f := range h.Values("Connection") {
		for _, name := range strings.Split(f, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopHeaders {
		h.Del(name)
	}
}

func copyResponse(w http.ResponseWriter, resp *http.Response) {
	if resp.Body != nil {
		defer resp.Body.Close()
	}
	removeHopHeaders(resp.Header)
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if resp.Body != nil {
		_, _ = io.Copy(w, resp.Body)
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
