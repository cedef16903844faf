package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied by ApplyDefaults when the corresponding field is unset.
const (
	DefaultAddr                    = ":8080"
	DefaultLogLevel                = "info"
	DefaultDialTimeoutMS           = 5000
	DefaultResponseHeaderTimeoutMS = 30000
	DefaultMaxIdleConns            = 100
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr     string `json:"addr" yaml:"addr" toml:"addr"`
	Upstream string `json:"upstream" yaml:"upstream" toml:"upstream"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// Network-layer limits. A fetch that exceeds them fails and is answered offline.
	DialTimeoutMS           int `json:"dial_timeout_ms" yaml:"dial_timeout_ms" toml:"dial_timeout_ms"`
	ResponseHeaderTimeoutMS int `json:"response_header_timeout_ms" yaml:"response_header_timeout_ms" toml:"response_header_timeout_ms"`
	MaxIdleConns            int `json:"max_idle_conns" yaml:"max_idle_conns" toml:"max_idle_conns"`
	// CORS for the admin endpoints (opt-in).
	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := expandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.DialTimeoutMS <= 0 {
		c.DialTimeoutMS = DefaultDialTimeoutMS
	}
	if c.ResponseHeaderTimeoutMS <= 0 {
		c.ResponseHeaderTimeoutMS = DefaultResponseHeaderTimeoutMS
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
}

// UpstreamURL parses Upstream. An empty upstream yields nil (forward proxy mode).
func (c Config) UpstreamURL() (*url.URL, error) {
	if strings.TrimSpace(c.Upstream) == "" {
		return nil, nil
	}
	u, err := url.Parse(c.Upstream)
	if err != nil {
		return nil, fmt.Errorf("upstream: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("upstream: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("upstream: missing host in %q", c.Upstream)
	}
	return u, nil
}

// Transport builds the transport used for network attempts.
func (c Config) Transport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   time.Duration(c.DialTimeoutMS) * time.Millisecond,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          c.MaxIdleConns,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: time.Duration(c.ResponseHeaderTimeoutMS) * time.Millisecond,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
