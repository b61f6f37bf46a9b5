// Package config loads the gooeyswipe TOML configuration.
//
// Every section is optional; values missing from the file keep their
// defaults:
//
//	[effect]
//	gap_progress = 0.7
//	base_duration = "350ms"
//
//	[actions.left]
//	color = "#c0392b"
//	icon = "cross"
//	deleting = true
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gooeyswipe/pkg/cache"
	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/gooey"
	"github.com/matzehuels/gooeyswipe/pkg/render"
)

const appName = "gooeyswipe"

// Duration is a time.Duration written as a string such as "350ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	if d.Duration < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "negative duration %s", d.Duration)
	}
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

// Config is the whole configuration file.
type Config struct {
	Effect  Effect  `toml:"effect"`
	Canvas  Canvas  `toml:"canvas"`
	Actions Actions `toml:"actions"`
	Cache   Cache   `toml:"cache"`
	Server  Server  `toml:"server"`
}

// Effect holds the geometry and animation tuning.
type Effect struct {
	MaxWidth           float64  `toml:"max_width"`
	GapProgress        float64  `toml:"gap_progress"`
	CircleRadius       float64  `toml:"circle_radius"`
	MaxHeight          float64  `toml:"max_height"`
	EdgeWidthRate      float64  `toml:"edge_width_rate"`
	JointConstringency float64  `toml:"joint_constringency"`
	EasingBand         float64  `toml:"easing_band"`
	BaseDuration       Duration `toml:"base_duration"`
}

// Canvas sizes the demo row used by the renderers.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	FPS    int     `toml:"fps"`
	Scale  float64 `toml:"scale"`
	Row    int     `toml:"row"`
}

// FrameTime returns the duration of one frame at FPS.
func (c Canvas) FrameTime() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Action configures one swipe direction.
type Action struct {
	Enabled  bool   `toml:"enabled"`
	Color    string `toml:"color"`
	Icon     string `toml:"icon"`
	Deleting bool   `toml:"deleting"`
}

// Actions holds the action for each direction.
type Actions struct {
	Right Action `toml:"right"`
	Left  Action `toml:"left"`
}

// Cache selects the frame cache backend.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// Server configures the preview server.
type Server struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Default returns the built-in configuration: the stock tuning, a 375x88
// row and the demo actions (right marks with a check, left deletes with a
// cross).
func Default() *Config {
	p := gooey.DefaultParams()
	return &Config{
		Effect: Effect{
			MaxWidth:           p.MaxWidth,
			GapProgress:        p.GapProgress,
			CircleRadius:       p.CircleRadius,
			MaxHeight:          p.MaxHeight,
			EdgeWidthRate:      p.EdgeWidthRate,
			JointConstringency: p.JointConstringency,
			EasingBand:         p.EasingBand,
			BaseDuration:       Duration{p.BaseDuration},
		},
		Canvas: Canvas{Width: 375, Height: 88, FPS: 60, Scale: 2},
		Actions: Actions{
			Right: Action{Enabled: true, Color: "#4d7f64", Icon: render.IconCheck},
			Left:  Action{Enabled: true, Color: "#4d7f64", Icon: render.IconCross, Deleting: true},
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			Prefix:  appName + ":",
			TTL:     Duration{24 * time.Hour},
		},
		Server: Server{
			Addr:           "127.0.0.1:8080",
			RequestTimeout: Duration{30 * time.Second},
		},
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults; unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[effect]")
	}

	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "[canvas] width and height must be positive")
	case c.Canvas.FPS < 1 || c.Canvas.FPS > 240:
		return errors.New(errors.ErrCodeInvalidConfig, "[canvas] fps must be between 1 and 240, got %d", c.Canvas.FPS)
	case c.Canvas.Scale <= 0 || c.Canvas.Scale > 8:
		return errors.New(errors.ErrCodeInvalidConfig, "[canvas] scale must be in (0, 8], got %g", c.Canvas.Scale)
	}

	for name, a := range map[string]Action{"right": c.Actions.Right, "left": c.Actions.Left} {
		if _, err := render.ParseColor(a.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[actions.%s] color", name)
		}
		if a.Icon != "" && a.Icon != render.IconCheck && a.Icon != render.IconCross {
			if err := errors.ValidatePath(a.Icon); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[actions.%s] icon", name)
			}
		}
	}

	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if err := errors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[cache] redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] unknown backend %q (want none, file or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] ttl must not be negative")
	}

	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] addr cannot be empty")
	}
	return nil
}

// Params converts the effect section to kernel tuning.
func (c *Config) Params() gooey.Params {
	e := c.Effect
	return gooey.Params{
		MaxWidth:           e.MaxWidth,
		GapProgress:        e.GapProgress,
		CircleRadius:       e.CircleRadius,
		MaxHeight:          e.MaxHeight,
		EdgeWidthRate:      e.EdgeWidthRate,
		JointConstringency: e.JointConstringency,
		EasingBand:         e.EasingBand,
		BaseDuration:       e.BaseDuration.Duration,
	}
}

// CacheOptions returns the options for cache.Open. An empty dir falls back
// to CacheDir.
func (c *Config) CacheOptions() cache.Options {
	dir := c.Cache.Dir
	if dir == "" {
		dir = CacheDir()
	}
	return cache.Options{Backend: c.Cache.Backend, Dir: dir, RedisURL: c.Cache.RedisURL}
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// Save writes c to path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists", path)
		}
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create config dir")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
