package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveConfig_Precedence(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "cfg.yaml")
	if err := os.WriteFile(p, []byte("addr: :1111\nupstream: http://file:1\nlog_level: warn\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("OFFLINED_UPSTREAM", "http://env:2")
	t.Setenv("OFFLINED_ADDR", "")
	t.Setenv("OFFLINED_LOG_LEVEL", "")
	t.Setenv("OFFLINED_CORS_ORIGINS", "")

	cmd := newRootCmd()
	if err := cmd.Flags().Set("log-level", "debug"); err != nil { t.Fatalf("set: %v", err) }
	cfg, err := resolveConfig(cmd, p)
	if err != nil { t.Fatalf("resolve: %v", err) }
	if cfg.Addr != ":1111" { t.Fatalf("addr=%q, want file value", cfg.Addr) }
	if cfg.Upstream != "http://env:2" { t.Fatalf("upstream=%q, want env value", cfg.Upstream) }
	if cfg.LogLevel != "debug" { t.Fatalf("log level=%q, want flag value", cfg.LogLevel) }
}

// isolate keeps a real ~/.config/offlined from leaking into tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range flagEnv {
		t.Setenv(env, "")
	}
}

func TestResolveConfig_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := resolveConfig(newRootCmd(), "")
	if err != nil { t.Fatalf("resolve: %v", err) }
	if cfg.Addr != ":8080" || cfg.LogLevel != "info" || cfg.Upstream != "" || cfg.CORSEnabled {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestResolveConfig_CORSFlag(t *testing.T) {
	isolate(t)
	t.Setenv("OFFLINED_CORS_ORIGINS", "https://a, https://b")
	cfg, err := resolveConfig(newRootCmd(), "")
	if err != nil { t.Fatalf("resolve: %v", err) }
	if !cfg.CORSEnabled || len(cfg.CORSOrigins) != 2 { t.Fatalf("unexpected cfg: %+v", cfg) }
}

func TestResolveConfig_BadUpstream(t *testing.T) {
	isolate(t)
	cmd := newRootCmd()
	_ = cmd.Flags().Set("upstream", "ftp://nope")
	if _, err := resolveConfig(cmd, ""); err == nil { t.Fatalf("expected error for unsupported upstream scheme") }
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("INFO"); err != nil { t.Fatalf("info: %v", err) }
	if _, err := newLogger("loud"); err == nil { t.Fatalf("expected error for unknown level") }
}
