package config

import (
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	LogLevel         string
	Host             string
	Port             int
	DBDSN            string
	WebUIMode        string
	WebUIDevProxyURL string
	WebUIDistDir     string
	ServerURL        string
	ConfigDir        string
}

// defaultPort may be overridden at build time with -ldflags "-X".
var defaultPort = "5000"

const (
	defaultDBDSN     = "todoapp.db"
	defaultWebUIMode = "off"
)

func LoadConfig() Config {
	level := os.Getenv("TODOAPP_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	host := os.Getenv("TODOAPP_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	fallbackPort := atoiOrDefault(defaultPort, 5000)
	port := fallbackPort
	if p := os.Getenv("PORT"); p != "" {
		// Keep parsing strict but fallback to default on malformed values.
		if n := atoiOrDefault(p, fallbackPort); n > 0 && n <= 65535 {
			port = n
		}
	}
	dsn := strings.TrimSpace(os.Getenv("TODOAPP_DB_DSN"))
	if dsn == "" {
		dsn = defaultDBDSN
	}
	webUIMode := strings.ToLower(strings.TrimSpace(os.Getenv("TODOAPP_WEBUI_MODE")))
	switch webUIMode {
	case "off", "dev", "prod":
	default:
		webUIMode = defaultWebUIMode
	}
	webUIDevProxyURL := os.Getenv("TODOAPP_WEBUI_DEV_PROXY_URL")
	if webUIDevProxyURL == "" {
		webUIDevProxyURL = "http://127.0.0.1:3000"
	}
	webUIDistDir := os.Getenv("TODOAPP_WEBUI_DIST_DIR")
	if webUIDistDir == "" {
		webUIDistDir = defaultWebUIDistDir()
	}

	return Config{
		LogLevel:         level,
		Host:             host,
		Port:             port,
		DBDSN:            dsn,
		WebUIMode:        webUIMode,
		WebUIDevProxyURL: webUIDevProxyURL,
		WebUIDistDir:     webUIDistDir,
		ServerURL:        strings.TrimSpace(os.Getenv("TODOAPP_SERVER_URL")),
		ConfigDir:        strings.TrimSpace(os.Getenv("TODOAPP_CONFIG_DIR")),
	}
}

func defaultWebUIDistDir() string {
	execPath, err := os.Executable()
	if err != nil || execPath == "" {
		return filepath.Clean("../webui/dist")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(execPath), "..", "webui", "dist"))
}

func atoiOrDefault(v string, fallback int) int {
	n := 0
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return fallback
		}
		n = n*10 + int(v[i]-'0')
		if n > 65535 {
			return fallback
		}
	}
	if n == 0 {
		return fallback
	}
	return n
}
