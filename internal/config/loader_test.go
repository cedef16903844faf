package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nupstream: http://127.0.0.1:5000\nlog_level: debug\ndial_timeout_ms: 250\ncors_enabled: true\ncors_origins: [\"https://a\", \"https://b\"]\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":9999" || cfg.Upstream != "http://127.0.0.1:5000" || cfg.LogLevel != "debug" || cfg.DialTimeoutMS != 250 || !cfg.CORSEnabled || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","upstream":"https://origin.example","response_header_timeout_ms":42,"max_idle_conns":3}`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":7070" || cfg.Upstream != "https://origin.example" || cfg.ResponseHeaderTimeoutMS != 42 || cfg.MaxIdleConns != 3 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nupstream=\"http://x:1\"\nlog_level=\"warn\"\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":8081" || cfg.Upstream != "http://x:1" || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil { t.Fatalf("expected error on empty path") }
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil { t.Fatalf("expected unsupported extension error") }
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Addr != DefaultAddr || cfg.LogLevel != DefaultLogLevel || cfg.DialTimeoutMS != DefaultDialTimeoutMS ||
		cfg.ResponseHeaderTimeoutMS != DefaultResponseHeaderTimeoutMS || cfg.MaxIdleConns != DefaultMaxIdleConns {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	cfg = Config{Addr: ":1", DialTimeoutMS: 7}
	cfg.ApplyDefaults()
	if cfg.Addr != ":1" || cfg.DialTimeoutMS != 7 { t.Fatalf("defaults overrode explicit values: %+v", cfg) }
}

func TestUpstreamURL(t *testing.T) {
	cases := []struct {
		in      string
		wantNil bool
		wantErr bool
	}{
		{"", true, false},
		{"   ", true, false},
		{"http://127.0.0.1:5000", false, false},
		{"https://origin.example/app", false, false},
		{"ftp://origin", false, true},
		{"http://", false, true},
		{"://bad", false, true},
	}
	for _, tc := range cases {
		u, err := Config{Upstream: tc.in}.UpstreamURL()
		if (err != nil) != tc.wantErr { t.Fatalf("%q: err=%v", tc.in, err) }
		if !tc.wantErr && (u == nil) != tc.wantNil { t.Fatalf("%q: url=%v", tc.in, u) }
	}
}

func TestTransport(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	tr := cfg.Transport()
	if tr.ResponseHeaderTimeout != 30*time.Second { t.Fatalf("header timeout=%s", tr.ResponseHeaderTimeout) }
	if tr.MaxIdleConns != DefaultMaxIdleConns { t.Fatalf("max idle=%d", tr.MaxIdleConns) }
}
