// Package config loads flowdag settings from a TOML file.
//
// Configuration is entirely optional: every field has a working default and
// a missing config file is not an error. A partial file overrides only the
// fields it names.
//
//	[layout]
//	slot_width = 240.0
//	rank_spacing = 160.0
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/layout"
)

// Cache backend names accepted in [cache] backend.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Layout holds the geometry used when computing node positions.
type Layout struct {
	SlotWidth   float64 `toml:"slot_width"`
	RankSpacing float64 `toml:"rank_spacing"`
	NodeWidth   float64 `toml:"node_width"`
	NodeHeight  float64 `toml:"node_height"`
}

// Options converts the configured geometry to layout options.
func (l Layout) Options() layout.Options {
	return layout.Options{
		SlotWidth:   l.SlotWidth,
		RankSpacing: l.RankSpacing,
		NodeWidth:   l.NodeWidth,
		NodeHeight:  l.NodeHeight,
	}
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Server holds the API server settings.
type Server struct {
	Addr string `toml:"addr"`

	// CachePrefix namespaces cache keys when several deployments share
	// one Redis instance.
	CachePrefix string `toml:"cache_prefix"`
}

// Config is the root of the TOML file.
type Config struct {
	Layout Layout `toml:"layout"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: Layout{
			SlotWidth:   layout.DefaultSlotWidth,
			RankSpacing: layout.DefaultRankSpacing,
			NodeWidth:   layout.DefaultNodeWidth,
			NodeHeight:  layout.DefaultNodeHeight,
		},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the standard config location,
// $XDG_CONFIG_HOME/flowdag/config.toml or the platform equivalent.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "flowdag", "config.toml"), nil
}

// Load reads the config file at path, falling back to [DefaultPath] when
// path is empty. A missing file yields [Default] without error; a file that
// exists but cannot be parsed or validated is an error.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			// No resolvable home. Run on defaults.
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "read config %s", path)
	}

	// Unmarshal over the defaults so absent fields keep their values.
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeConfig,
			"unknown cache backend %q (want file, redis, or none)", c.Cache.Backend)
	}

	dims := map[string]float64{
		"slot_width":   c.Layout.SlotWidth,
		"rank_spacing": c.Layout.RankSpacing,
		"node_width":   c.Layout.NodeWidth,
		"node_height":  c.Layout.NodeHeight,
	}
	for _, name := range []string{"slot_width", "rank_spacing", "node_width", "node_height"} {
		if dims[name] <= 0 {
			return errors.New(errors.ErrCodeConfig, "layout %s must be positive", name)
		}
	}
	return nil
}
