package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TODOAPP_LOG_LEVEL",
		"TODOAPP_HOST",
		"PORT",
		"TODOAPP_DB_DSN",
		"TODOAPP_WEBUI_MODE",
		"TODOAPP_WEBUI_DEV_PROXY_URL",
		"TODOAPP_WEBUI_DIST_DIR",
		"TODOAPP_SERVER_URL",
		"TODOAPP_CONFIG_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig()
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if cfg.Host != "127.0.0.1" {
		t.Fatalf("unexpected host: %s", cfg.Host)
	}
	if cfg.Port != 5000 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.DBDSN != "todoapp.db" {
		t.Fatalf("unexpected db dsn: %s", cfg.DBDSN)
	}
	if cfg.WebUIMode != "off" {
		t.Fatalf("unexpected default web ui mode: %s", cfg.WebUIMode)
	}
	if cfg.WebUIDevProxyURL != "http://127.0.0.1:3000" {
		t.Fatalf("unexpected default web ui proxy: %s", cfg.WebUIDevProxyURL)
	}
	if cfg.WebUIDistDir != defaultWebUIDistDir() {
		t.Fatalf("unexpected default web ui dist: %s", cfg.WebUIDistDir)
	}
	if cfg.ServerURL != "" || cfg.ConfigDir != "" {
		t.Fatalf("client overrides should default empty, got server=%q dir=%q", cfg.ServerURL, cfg.ConfigDir)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("TODOAPP_HOST", "0.0.0.0")
	t.Setenv("TODOAPP_DB_DSN", "/var/lib/todoapp/tasks.db")
	t.Setenv("TODOAPP_LOG_LEVEL", "debug")
	t.Setenv("TODOAPP_WEBUI_MODE", "PROD")
	t.Setenv("TODOAPP_WEBUI_DIST_DIR", "/tmp/webui-dist")
	t.Setenv("TODOAPP_SERVER_URL", " http://tasks.internal:5000 ")

	cfg := LoadConfig()
	if cfg.Port != 8080 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.Host != "0.0.0.0" {
		t.Fatalf("unexpected host: %s", cfg.Host)
	}
	if cfg.DBDSN != "/var/lib/todoapp/tasks.db" {
		t.Fatalf("unexpected dsn: %s", cfg.DBDSN)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected level: %s", cfg.LogLevel)
	}
	if cfg.WebUIMode != "prod" {
		t.Fatalf("unexpected web ui mode: %s", cfg.WebUIMode)
	}
	if cfg.WebUIDistDir != "/tmp/webui-dist" {
		t.Fatalf("unexpected web ui dist dir: %s", cfg.WebUIDistDir)
	}
	if cfg.ServerURL != "http://tasks.internal:5000" {
		t.Fatalf("unexpected server url: %q", cfg.ServerURL)
	}
}

func TestLoadConfig_MalformedPortFallsBack(t *testing.T) {
	clearEnv(t)
	for _, raw := range []string{"abc", "-1", "0", "70000", "65536", "99999999999999999999999", "18446744073709551617"} {
		t.Setenv("PORT", raw)
		if cfg := LoadConfig(); cfg.Port != 5000 {
			t.Fatalf("PORT=%q: expected fallback 5000, got %d", raw, cfg.Port)
		}
	}
}

func TestLoadConfig_UnknownWebUIModeFallsBackToOff(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOAPP_WEBUI_MODE", "turbo")
	if cfg := LoadConfig(); cfg.WebUIMode != "off" {
		t.Fatalf("expected off, got %s", cfg.WebUIMode)
	}
}

func TestLoadConfig_DefaultPortFromBuildVariable(t *testing.T) {
	clearEnv(t)
	old := defaultPort
	defaultPort = "9001"
	t.Cleanup(func() {
		defaultPort = old
	})

	cfg := LoadConfig()
	if cfg.Port != 9001 {
		t.Fatalf("unexpected port from build variable: %d", cfg.Port)
	}
}
