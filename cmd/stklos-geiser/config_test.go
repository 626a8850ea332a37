package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xyproto/env/v2"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geiser.yaml")
	body := `
log: /tmp/proto.log
load-path:
  - /usr/share/stklos
  - /home/me/scheme
encoding: latin-1
prompt: false
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log != "/tmp/proto.log" {
		t.Errorf("Log = %q", cfg.Log)
	}
	want := []string{"/usr/share/stklos", "/home/me/scheme"}
	if !reflect.DeepEqual(cfg.LoadPath, want) {
		t.Errorf("LoadPath = %v, want %v", cfg.LoadPath, want)
	}
	if cfg.Encoding != "latin-1" {
		t.Errorf("Encoding = %q", cfg.Encoding)
	}
	if cfg.promptOn() {
		t.Error("prompt: false did not disable the prompt")
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config file reported %v", err)
	}
	if !reflect.DeepEqual(cfg, Config{}) {
		t.Errorf("missing config file produced %+v", cfg)
	}
	if !cfg.promptOn() {
		t.Error("prompt did not default to on")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("log: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed YAML did not fail")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEISER_STKLOS_LOG", "/tmp/env.log")
	t.Setenv("STKLOS_LOAD_PATH", "/a:/b")
	t.Setenv("STKLOS_PORT_ENCODING", "windows-1252")
	env.Load()
	cfg := applyEnv(Config{Log: "/tmp/file.log", Encoding: "utf-8"})
	if cfg.Log != "/tmp/env.log" {
		t.Errorf("Log = %q, want the environment to win over the file", cfg.Log)
	}
	if want := []string{"/a", "/b"}; !reflect.DeepEqual(cfg.LoadPath, want) {
		t.Errorf("LoadPath = %v, want %v", cfg.LoadPath, want)
	}
	if cfg.Encoding != "windows-1252" {
		t.Errorf("Encoding = %q", cfg.Encoding)
	}
}

func TestApplyEnvUnset(t *testing.T) {
	t.Setenv("GEISER_STKLOS_LOG", "")
	t.Setenv("STKLOS_LOAD_PATH", "")
	t.Setenv("STKLOS_PORT_ENCODING", "")
	env.Load()
	base := Config{Log: "/tmp/file.log", LoadPath: []string{"/x"}, Encoding: "latin-1"}
	if cfg := applyEnv(base); !reflect.DeepEqual(cfg, base) {
		t.Errorf("empty environment changed the config to %+v", cfg)
	}
}
