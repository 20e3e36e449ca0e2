package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wayfind.json"

	// DefaultPort is the default demo server port.
	DefaultPort = 3000

	// DefaultHost is the default demo server host.
	DefaultHost = "localhost"
)

// Config represents the complete wayfind.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Server contains demo server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Routes is the ordered route manifest. Order is match priority.
	Routes []RouteConfig `json:"routes"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// ServerConfig contains demo server settings.
type ServerConfig struct {
	// Host is the listen host.
	Host string `json:"host,omitempty"`

	// Port is the listen port.
	Port int `json:"port,omitempty"`
}

// RouteConfig is one manifest route. Exactly one of Component or
// Outlets must be set: Component declares a single default-outlet
// view, Outlets a named multi-outlet layout.
type RouteConfig struct {
	// Path is the route pattern.
	Path string `json:"path"`

	// End forces full-path matching; Prefix forces prefix matching.
	End    bool `json:"end,omitempty"`
	Prefix bool `json:"prefix,omitempty"`

	// Component is the client-side component name for a single-view
	// route.
	Component string `json:"component,omitempty"`

	// Props are passed to the component as-is.
	Props map[string]any `json:"props,omitempty"`

	// Outlets maps outlet names to views for multi-outlet routes.
	Outlets map[string]ViewConfig `json:"outlets,omitempty"`
}

// ViewConfig is one named view of a multi-outlet route.
type ViewConfig struct {
	Component string         `json:"component"`
	Props     map[string]any `json:"props,omitempty"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
	}
}

// Load reads wayfind.json from dir (or the working directory when dir
// is empty). A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.configPath = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the manifest for construction-time errors. Route
// pattern syntax is validated later by route.Build.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	for i, r := range c.Routes {
		if r.Path == "" {
			return fmt.Errorf("route %d: missing path", i)
		}
		hasComponent := r.Component != ""
		hasOutlets := len(r.Outlets) > 0
		if hasComponent == hasOutlets {
			return fmt.Errorf("route %d (%q): set exactly one of component or outlets", i, r.Path)
		}
		if r.End && r.Prefix {
			return fmt.Errorf("route %d (%q): end and prefix are mutually exclusive", i, r.Path)
		}
		for name, v := range r.Outlets {
			if v.Component == "" {
				return fmt.Errorf("route %d (%q): outlet %q missing component", i, r.Path, name)
			}
		}
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	host := c.Server.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Server.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// Path returns where the config was loaded from, empty for defaults.
func (c *Config) Path() string {
	return c.configPath
}
