package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/session"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coffeetier.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvAddr, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvAddr, "")
	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9000"
read_timeout = "5s"

[session]
backend = "file"
ttl = "2h"
dir = "/tmp/sessions"

[page]
rules_html = "<ul><li>S: best</li></ul>"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Default()
	want.Server.Addr = "127.0.0.1:9000"
	want.Server.ReadTimeout = Duration{5 * time.Second}
	want.Session.Backend = "file"
	want.Session.TTL = Duration{2 * time.Hour}
	want.Session.Dir = "/tmp/sessions"
	want.Page.RulesHTML = "<ul><li>S: best</li></ul>"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(session.Options{
		Backend: "file",
		Dir:     "/tmp/sessions",
		Redis:   session.RedisConfig{Addr: "localhost:6379"},
	}, cfg.SessionOptions()); diff != "" {
		t.Errorf("session options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvAddr, ":7777")
	t.Setenv(EnvRedisPassword, "hunter2")
	path := writeConfig(t, "[server]\naddr = \":9000\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("Addr = %q, want env override", cfg.Server.Addr)
	}
	if cfg.Session.RedisPassword != "hunter2" {
		t.Errorf("RedisPassword not overridden")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvAddr, "")
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[server\naddr = 1"},
		{"unknown key", "[server]\nport = 80\n"},
		{"bad duration", "[session]\nttl = \"soon\"\n"},
		{"bad backend", "[session]\nbackend = \"mongo\"\n"},
		{"negative ttl", "[session]\nttl = \"-1h\"\n"},
		{"zero scale", "[render]\nscale = 0.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestRenderOptions(t *testing.T) {
	if got := len(Default().RenderOptions()); got != 2 {
		t.Errorf("RenderOptions() returned %d options", got)
	}
}
