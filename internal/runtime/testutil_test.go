package runtime

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"offlined/internal/worker"
)

// stubHandler records signals. It calls SkipWaiting only when skip is set.
type stubHandler struct {
	skip bool

	mu        sync.Mutex
	installs  int
	activates int
	fetches   int
	onFetch   func(*worker.FetchEvent)
	install   *worker.InstallEvent
}

func (h *stubHandler) OnInstall(e *worker.InstallEvent) {
	h.mu.Lock()
	h.installs++
	h.install = e
	h.mu.Unlock()
	if h.skip {
		e.SkipWaiting()
	}
}

func (h *stubHandler) OnActivate(*worker.ActivateEvent) {
	h.mu.Lock()
	h.activates++
	h.mu.Unlock()
}

func (h *stubHandler) OnFetch(e *worker.FetchEvent) {
	h.mu.Lock()
	h.fetches++
	fn := h.onFetch
	h.mu.Unlock()
	if fn != nil {
		fn(e)
	}
}

func (h *stubHandler) counts() (int, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.installs, h.activates, h.fetches
}

// deadURL returns the URL of a server that has already been shut down,
// so connections to it are refused.
func deadURL(t *testing.T) *url.URL {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	srv.Close()
	return u
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}
