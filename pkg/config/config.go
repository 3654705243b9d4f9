// Package config loads coffeetier settings from a TOML file.
//
// Every setting has a default, so an empty path yields a working
// configuration for a local server:
//
//	[server]
//	addr = ":8501"
//	read_timeout = "15s"
//	write_timeout = "30s"
//
//	[session]
//	backend = "memory"   # memory, redis or file
//	ttl = "24h"
//	dir = ""             # file backend, defaults to ~/.config/coffeetier/sessions
//	redis_addr = "localhost:6379"
//	redis_password = ""
//	redis_db = 0
//
//	[page]
//	title = "Otterly Amazing Coffee Tier List of Greatness 2024"
//	intro_html = "..."
//	rules_html = ""      # empty lists the built-in category rules
//
//	[render]
//	scale = 2.0
//	font_size = 14.0
//
// COFFEETIER_ADDR and COFFEETIER_REDIS_PASSWORD override the file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/render"
	"github.com/matzehuels/coffeetier/pkg/session"
)

// Environment variables that take precedence over the file.
const (
	EnvAddr          = "COFFEETIER_ADDR"
	EnvRedisPassword = "COFFEETIER_REDIS_PASSWORD"
)

// DefaultTitle is the page headline.
const DefaultTitle = "Otterly Amazing Coffee Tier List of Greatness 2024"

// DefaultIntroHTML greets visitors above the form.
const DefaultIntroHTML = `<p><strong>Greetings, Fellow Cultists of Otters and NPR!</strong></p>
<p>As a fun little bonding activity (<em>kinky</em>), we'd like to offer you this fun tier list.
For each of the tiers, please input between <strong>1 and 5 coffees</strong>.
You will be able to save the results for sharing!</p>`

// Duration is a time.Duration written as a string such as "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the complete configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
	Page    PageConfig    `toml:"page"`
	Render  RenderConfig  `toml:"render"`
}

type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

type SessionConfig struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// PageConfig holds operator-provided page content. HTML fields are
// sanitised before they are shown.
type PageConfig struct {
	Title     string `toml:"title"`
	IntroHTML string `toml:"intro_html"`
	RulesHTML string `toml:"rules_html"`
}

type RenderConfig struct {
	Scale    float64 `toml:"scale"`
	FontSize float64 `toml:"font_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8501",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
		Session: SessionConfig{
			Backend:   session.BackendMemory,
			TTL:       Duration{session.DefaultTTL},
			RedisAddr: "localhost:6379",
		},
		Page: PageConfig{
			Title:     DefaultTitle,
			IntroHTML: DefaultIntroHTML,
		},
		Render: RenderConfig{
			Scale:    render.DefaultScale,
			FontSize: render.DefaultFontSize,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Session.RedisPassword = v
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.addr must not be empty")
	}
	switch c.Session.Backend {
	case session.BackendMemory, session.BackendFile:
	case session.BackendRedis:
		if c.Session.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "session.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "session.backend %q must be memory, redis or file", c.Session.Backend)
	}
	if c.Session.TTL.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "session.ttl must be positive")
	}
	if c.Render.Scale <= 0 || c.Render.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.scale and render.font_size must be positive")
	}
	return nil
}

// SessionOptions converts the session section for session.Open.
func (c Config) SessionOptions() session.Options {
	return session.Options{
		Backend: c.Session.Backend,
		Dir:     c.Session.Dir,
		Redis: session.RedisConfig{
			Addr:     c.Session.RedisAddr,
			Password: c.Session.RedisPassword,
			DB:       c.Session.RedisDB,
		},
	}
}

// RenderOptions converts the render section to renderer options.
func (c Config) RenderOptions() []render.Option {
	return []render.Option{
		render.WithScale(c.Render.Scale),
		render.WithFontSize(c.Render.FontSize),
	}
}

// String summarises the configuration without secrets.
func (c Config) String() string {
	return fmt.Sprintf("addr=%s session=%s ttl=%s", c.Server.Addr, c.Session.Backend, c.Session.TTL)
}
