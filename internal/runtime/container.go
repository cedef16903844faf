package runtime

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"offlined/internal/worker"
	"offlined/pkg/types"
)

// State is the lifecycle state of a registered worker version.
type State string

const (
	StateInstalling State = "installing"
	StateWaiting    State = "waiting"
	StateActivating State = "activating"
	StateActive     State = "active"
	StateRedundant  State = "redundant"
)

// ErrNilHandler is returned by Register when given a nil handler.
var ErrNilHandler = errors.New("runtime: nil handler")

// Config encapsulates all tunables for Container construction.
type Config struct {
	// Upstream is the origin inbound requests are rewritten onto.
	// Nil means requests must carry an absolute URL (forward proxy).
	Upstream *url.URL
	// Network performs outgoing requests (default http.DefaultTransport).
	Network   http.RoundTripper
	Logger    *zerolog.Logger
	Publisher EventPublisher
}

type version struct {
	id          string
	handler     worker.Handler
	state       State
	skip        bool
	installedAt time.Time
	activatedAt time.Time
}

func (v *version) status() *types.VersionStatus {
	if v == nil {
		return nil
	}
	return &types.VersionStatus{ID: v.id, State: string(v.state), InstalledAt: v.installedAt, ActivatedAt: v.activatedAt}
}

// Container hosts worker versions: at most one active and one waiting.
type Container struct {
	upstream *url.URL
	network  http.RoundTripper
	log      zerolog.Logger
	pub      EventPublisher
	start    time.Time

	mu      sync.RWMutex
	active  *version
	waiting *version
}

// New constructs a Container from cfg, applying defaults for unset fields.
func New(cfg Config) *Container {
	c := &Container{
		upstream: cfg.Upstream,
		network:  cfg.Network,
		log:      zerolog.Nop(),
		pub:      cfg.Publisher,
		start:    time.Now(),
	}
	if c.network == nil {
		c.network = http.DefaultTransport
	}
	if cfg.Logger != nil {
		c.log = cfg.Logger.With().Str("component", "runtime").Logger()
	}
	if c.pub == nil {
		c.pub = noopPublisher{}
	}
	return c
}

// Register installs h as a new worker version and returns its id.
// The version is activated right away when its install reaction calls
// SkipWaiting or when nothing is active yet; otherwise it waits for Release.
// A previously waiting version is made redundant.
func (c *Container) Register(h worker.Handler) (string, error) {
	if h == nil {
		return "", ErrNilHandler
	}
	v := &version{id: uuid.NewString(), handler: h, state: StateInstalling, installedAt: time.Now()}
	if err := c.deliver(v, SignalInstall, worker.NewInstallEvent(func() { c.skipWaiting(v) })); err != nil {
		return "", err
	}
	c.publish(EventInstalled, v, nil)

	c.mu.Lock()
	if old := c.waiting; old != nil {
		old.state = StateRedundant
		defer c.publish(EventRedundant, old, nil)
	}
	v.state = StateWaiting
	c.waiting = v
	promote := v.skip || c.active == nil
	c.mu.Unlock()

	if promote {
		c.activate(v)
	} else {
		c.log.Info().Str("version", v.id).Msg("installed version waiting for release")
		c.publish(EventWaiting, v, nil)
	}
	return v.id, nil
}

// Release is the conventional handoff point: the waiting version, if any,
// takes over from the active one. It reports whether a handoff happened.
func (c *Container) Release() bool {
	c.mu.RLock()
	v := c.waiting
	c.mu.RUnlock()
	if v == nil {
		return false
	}
	return c.activate(v)
}

// skipWaiting is the primitive handed to install reactions. It may be called
// during install (recorded) or later while the version waits (activates now).
func (c *Container) skipWaiting(v *version) {
	c.mu.Lock()
	switch v.state {
	case StateInstalling:
		v.skip = true
		c.mu.Unlock()
	case StateWaiting:
		c.mu.Unlock()
		c.activate(v)
	default:
		c.mu.Unlock()
	}
}

func (c *Container) activate(v *version) bool {
	c.mu.Lock()
	if c.waiting != v {
		c.mu.Unlock()
		return false
	}
	c.waiting = nil
	v.state = StateActivating
	c.mu.Unlock()

	// Fetches keep going to the previous version until activate has run.
	if err := c.deliver(v, SignalActivate, &worker.ActivateEvent{}); err != nil {
		c.log.Error().Err(err).Str("version", v.id).Msg("activate failed")
	}

	c.mu.Lock()
	prev := c.active
	if prev != nil {
		prev.state = StateRedundant
	}
	v.state = StateActive
	v.activatedAt = time.Now()
	c.active = v
	c.mu.Unlock()

	activeWorker.Set(1)
	if prev != nil {
		c.publish(EventRedundant, prev, nil)
	}
	c.log.Info().Str("version", v.id).Bool("preempted", prev != nil).Msg("version active")
	c.publish(EventActivated, v, nil)
	return true
}

func (c *Container) deliver(v *version, signal string, event any) error {
	lifecycleEventsTotal.WithLabelValues(signal).Inc()
	return Dispatch(v.handler, signal, event)
}

// controller returns the active version, or nil.
func (c *Container) controller() *version {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Ready reports whether a worker version controls fetches.
func (c *Container) Ready() bool { return c.controller() != nil }

// Snapshot reports the active and waiting versions.
func (c *Container) Snapshot() types.StatusResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := types.StatusResponse{
		Active:        c.active.status(),
		Waiting:       c.waiting.status(),
		UptimeSeconds: int64(time.Since(c.start).Seconds()),
	}
	if c.upstream != nil {
		s.Upstream = c.upstream.String()
	}
	return s
}

func (c *Container) publish(name string, v *version, fields map[string]any) {
	id := ""
	if v != nil {
		id = v.id
	}
	c.pub.Publish(newEvent(name, id, fields))
}
