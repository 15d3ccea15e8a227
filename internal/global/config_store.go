package global

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"todoapp/internal/todo"
)

const (
	configTOMLFileName = "config.toml"

	DefaultServerURL = "http://127.0.0.1:5000"
)

// ClientConfig is the client side config.toml.
type ClientConfig struct {
	ServerURL     string `toml:"server_url"`
	DefaultFilter string `toml:"default_filter"`
	ConfirmDelete bool   `toml:"confirm_delete"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ServerURL:     DefaultServerURL,
		DefaultFilter: string(todo.FilterAll),
		ConfirmDelete: true,
	}
}

// Filter returns the parsed default filter.
func (c ClientConfig) Filter() todo.Filter {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return todo.FilterAll
	}
	return f
}

type ConfigStore struct {
	dir string
}

func NewConfigStore(dir string) *ConfigStore {
	return &ConfigStore{dir: dir}
}

func (s *ConfigStore) Path() string {
	return filepath.Join(s.dir, configTOMLFileName)
}

// LoadOrInit reads config.toml, writing the defaults first when the file
// does not exist yet. Keys missing from the file keep their defaults.
func (s *ConfigStore) LoadOrInit() (ClientConfig, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return ClientConfig{}, err
	}

	path := s.Path()
	if b, err := os.ReadFile(path); err == nil {
		cfg := DefaultClientConfig()
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return ClientConfig{}, err
		}
		return normalizeConfig(cfg), nil
	} else if !os.IsNotExist(err) {
		return ClientConfig{}, err
	}

	cfg := DefaultClientConfig()
	if err := writeTOMLAtomically(path, cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func (s *ConfigStore) Save(cfg ClientConfig) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return writeTOMLAtomically(s.Path(), normalizeConfig(cfg))
}

func normalizeConfig(cfg ClientConfig) ClientConfig {
	cfg.ServerURL = normalizeServerURL(cfg.ServerURL)
	cfg.DefaultFilter = string(cfg.Filter())
	return cfg
}

func normalizeServerURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return DefaultServerURL
	}
	return raw
}

func writeTOMLAtomically(path string, v any) error {
	b, err := toml.Marshal(v)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
