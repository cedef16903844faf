package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"offlined/internal/httpapi"
	"offlined/internal/runtime"
	"offlined/internal/worker"
	"offlined/pkg/types"
)

// origin is an upstream that can be switched off mid-test.
type origin struct {
	srv  *httptest.Server
	down atomic.Bool
}

func newOrigin(t *testing.T) *origin {
	t.Helper()
	o := &origin{}
	o.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if o.down.Load() {
			// Drop the connection without a response: a network-layer failure.
			hj, ok := w.(http.Hijacker)
			if !ok {
				panic("hijack unsupported")
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		switch r.URL.Path {
		case "/index.html":
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, "<html>...</html>")
		case "/api/data":
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"ok":true}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(o.srv.Close)
	return o
}

func (o *origin) url(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse(o.srv.URL)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return u
}

// newStack wires container + interceptor + mux the way cmd/offlined does.
func newStack(t *testing.T, upstream *url.URL, pub runtime.EventPublisher) (*httptest.Server, *runtime.Container) {
	t.Helper()
	// Fresh transport per test so pooled connections never outlive an origin.
	network := &http.Transport{DisableKeepAlives: true}
	c := runtime.New(runtime.Config{Upstream: upstream, Network: network, Publisher: pub})
	if _, err := c.Register(worker.New(worker.WithNetwork(network))); err != nil {
		t.Fatalf("register: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(c))
	t.Cleanup(srv.Close)
	return srv, c
}

func get(t *testing.T, u string) (int, string) {
	t.Helper()
	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("get %s: %v", u, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp.StatusCode, string(b)
}

func status(t *testing.T, base string) types.StatusResponse {
	t.Helper()
	code, body := get(t, base+"/_sw/status")
	if code != http.StatusOK {
		t.Fatalf("status code=%d body=%s", code, body)
	}
	var s types.StatusResponse
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("json: %v", err)
	}
	return s
}
