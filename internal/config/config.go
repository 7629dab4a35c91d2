// Package config loads the wraplayout configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/wraplayout/config.toml
// (~/.config/wraplayout/config.toml when XDG_CONFIG_HOME is unset). Every
// key is optional; command-line flags take precedence over the file.
//
//	[layout]
//	width = 640
//	horizontal_spacing = 8
//	vertical_spacing = 8
//
//	[render]
//	style = "outline"
//	scale = 2
//
//	[cache]
//	backend = "redis"   # file (default), redis or none
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wraplayout/pkg/cache"
	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "wraplayout"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the default listen address of the API server.
const DefaultAddr = ":8080"

// Environment variables that override the file.
const (
	EnvRedisAddr = "WRAPLAYOUT_REDIS_ADDR"
	EnvMongoURI  = "WRAPLAYOUT_MONGO_URI"
)

// Config is the parsed configuration file.
type Config struct {
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Layout holds default layout overrides.
type Layout struct {
	Width             *float64 `toml:"width"`
	HorizontalSpacing *float64 `toml:"horizontal_spacing"`
	VerticalSpacing   *float64 `toml:"vertical_spacing"`
}

// Render holds default render options.
type Render struct {
	Style      string  `toml:"style"`
	Scale      float64 `toml:"scale"`
	Columns    int     `toml:"columns"`
	LineGuides bool    `toml:"line_guides"`
	EmbedFont  bool    `toml:"embed_font"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Redis   Redis  `toml:"redis"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Server configures the HTTP API.
type Server struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache:  Cache{Backend: BackendFile},
		Server: Server{Addr: DefaultAddr},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the default file cache directory.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the config at path. An empty path means the default
// location, where a missing file yields [Default]; an explicit path that
// does not exist is an error. Environment overrides are applied last.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return withEnv(Default()), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case os.IsNotExist(err) && !explicit:
		return withEnv(Default()), nil
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}

	cfg = withEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidInput), err, "config %s", path)
	}
	return cfg, nil
}

func withEnv(cfg Config) Config {
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		cfg.Server.MongoURI = v
	}
	return cfg
}

// Validate checks the values that can be checked without connecting to
// anything.
func (c Config) Validate() error {
	opts := c.Options()
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	if c.Render.Style != "" {
		if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
			return err
		}
	}
	if c.Render.Scale < 0 || c.Render.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render scale and columns must be positive")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs cache.redis.addr or %s", EnvRedisAddr)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (use file, redis or none)", c.Cache.Backend)
	}
	return nil
}

// Options returns pipeline options holding the configured defaults.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Width:             c.Layout.Width,
		HorizontalSpacing: c.Layout.HorizontalSpacing,
		VerticalSpacing:   c.Layout.VerticalSpacing,
		Style:             c.Render.Style,
		Scale:             c.Render.Scale,
		Columns:           c.Render.Columns,
		LineGuides:        c.Render.LineGuides,
		EmbedFont:         c.Render.EmbedFont,
	}
}

// NewCache opens the configured cache backend. disabled forces a
// [cache.NullCache].
func (c Config) NewCache(ctx context.Context, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
			Prefix:   c.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		dir := c.Cache.Dir
		if dir == "" {
			d, err := CacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}
