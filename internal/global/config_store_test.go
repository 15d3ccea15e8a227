package global

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todoapp/internal/todo"
)

func TestConfigStore_LoadOrInit_CreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	store := NewConfigStore(dir)

	cfg, err := store.LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	if cfg != DefaultClientConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	b, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("read config.toml failed: %v", err)
	}
	text := string(b)
	if !strings.Contains(text, "server_url = 'http://127.0.0.1:5000'") && !strings.Contains(text, `server_url = "http://127.0.0.1:5000"`) {
		t.Fatalf("expected server_url in toml, got: %s", text)
	}
	if !strings.Contains(text, "confirm_delete = true") {
		t.Fatalf("expected confirm_delete=true in toml, got: %s", text)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestConfigStore_SaveAndReload(t *testing.T) {
	store := NewConfigStore(t.TempDir())
	want := ClientConfig{ServerURL: "https://tasks.example.com", DefaultFilter: "completed", ConfirmDelete: false}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Filter() != todo.FilterCompleted {
		t.Fatalf("expected completed filter, got %q", got.Filter())
	}
}

func TestConfigStore_NormalizesInvalidValues(t *testing.T) {
	dir := t.TempDir()
	raw := "server_url = 'not a url'\ndefault_filter = 'someday'\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := NewConfigStore(dir).LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Fatalf("expected default server url, got %q", cfg.ServerURL)
	}
	if cfg.DefaultFilter != "all" {
		t.Fatalf("expected all filter, got %q", cfg.DefaultFilter)
	}
	if !cfg.ConfirmDelete {
		t.Fatal("missing confirm_delete should keep its default")
	}
}

func TestConfigStore_TrimsTrailingSlash(t *testing.T) {
	store := NewConfigStore(t.TempDir())
	if err := store.Save(ClientConfig{ServerURL: "http://localhost:5000/ ", DefaultFilter: "ACTIVE"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	cfg, err := store.LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit failed: %v", err)
	}
	if cfg.ServerURL != "http://localhost:5000" || cfg.DefaultFilter != "active" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
