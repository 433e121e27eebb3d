// Package config loads server and game settings.
//
// Sources, lowest precedence first:
//  1. DefaultConfig
//  2. a YAML (.yaml, .yml) or HCL (.hcl) file
//  3. ISOPUZZLE_* variables from a .env file, then from the process environment
//  4. command line flags (applied by the caller)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"svw.info/isopuzzle/internal/generator"
	"svw.info/isopuzzle/internal/host"
	"svw.info/isopuzzle/internal/level"
	"svw.info/isopuzzle/internal/session"
)

const EnvPrefix = "ISOPUZZLE_"

// minBoard keeps the random start region non-empty.
const minBoard = 120

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Game   GameConfig   `yaml:"game"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" hcl:"addr,optional"`
}

type LogConfig struct {
	Level  string `yaml:"level" hcl:"level,optional"`   // debug|info|warn|error
	Format string `yaml:"format" hcl:"format,optional"` // text|json
}

type GameConfig struct {
	BaseNodes    int     `yaml:"base_nodes" hcl:"base_nodes,optional"`
	Width        float64 `yaml:"width" hcl:"width,optional"`
	Height       float64 `yaml:"height" hcl:"height,optional"`
	NodeRadius   float64 `yaml:"node_radius" hcl:"node_radius,optional"`
	Tolerance    float64 `yaml:"tolerance" hcl:"tolerance,optional"`
	LayoutRadius float64 `yaml:"layout_radius" hcl:"layout_radius,optional"`
	FPS          int     `yaml:"fps" hcl:"fps,optional"`
	MaxAttempts  int     `yaml:"max_attempts" hcl:"max_attempts,optional"`
	Seed         int64   `yaml:"seed" hcl:"seed,optional"` // 0 picks a time based seed
}

func DefaultConfig() *Config {
	p := session.DefaultParams()
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
		Game: GameConfig{
			BaseNodes:    level.DefaultBaseNodes,
			Width:        p.Width,
			Height:       p.Height,
			NodeRadius:   p.NodeRadius,
			Tolerance:    p.Tolerance,
			LayoutRadius: p.LayoutRadius,
			FPS:          host.DefaultFPS,
			MaxAttempts:  generator.DefaultMaxAttempts,
		},
	}
}

// Params converts the game section into session parameters.
func (g GameConfig) Params() session.Params {
	return session.Params{
		Width:        g.Width,
		Height:       g.Height,
		NodeRadius:   g.NodeRadius,
		Tolerance:    g.Tolerance,
		LayoutRadius: g.LayoutRadius,
	}
}

// LoadFromPath reads path over the defaults. The format follows the file
// extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".hcl":
		if err := decodeHCL(path, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	return cfg, nil
}

// hclFile points its blocks at an existing Config so unset attributes keep
// their defaults.
type hclFile struct {
	Server *ServerConfig `hcl:"server,block"`
	Log    *LogConfig    `hcl:"log,block"`
	Game   *GameConfig   `hcl:"game,block"`
}

func decodeHCL(path string, cfg *Config) error {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	target := hclFile{Server: &cfg.Server, Log: &cfg.Log, Game: &cfg.Game}
	if diags := gohcl.DecodeBody(f.Body, nil, &target); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return nil
}

// EnvLookup resolves variables from the process environment first, then
// from the given .env file. A missing file is not an error. The process
// environment is never modified.
func EnvLookup(dotenv string) (func(string) (string, bool), error) {
	vars := map[string]string{}
	if dotenv != "" {
		m, err := godotenv.Read(dotenv)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", dotenv, err)
		}
		if m != nil {
			vars = m
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides fields from ISOPUZZLE_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = f
		}
	}

	str("ADDR", &c.Server.Addr)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	integer("BASE_NODES", &c.Game.BaseNodes)
	float("WIDTH", &c.Game.Width)
	float("HEIGHT", &c.Game.Height)
	float("NODE_RADIUS", &c.Game.NodeRadius)
	float("TOLERANCE", &c.Game.Tolerance)
	float("LAYOUT_RADIUS", &c.Game.LayoutRadius)
	integer("FPS", &c.Game.FPS)
	integer("MAX_ATTEMPTS", &c.Game.MaxAttempts)
	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Game.Seed = n
		}
	}
	return errors.Join(errs...)
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q: want debug|info|warn|error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want text|json", c.Log.Format))
	}
	g := c.Game
	if g.BaseNodes < generator.MinOrder {
		errs = append(errs, fmt.Errorf("game.base_nodes %d: need at least %d", g.BaseNodes, generator.MinOrder))
	}
	if g.Width < minBoard || g.Height < minBoard {
		errs = append(errs, fmt.Errorf("game board %gx%g: need at least %dx%d", g.Width, g.Height, minBoard, minBoard))
	}
	if g.NodeRadius <= 0 || g.Tolerance <= 0 || g.LayoutRadius <= 0 {
		errs = append(errs, errors.New("game.node_radius, game.tolerance and game.layout_radius must be positive"))
	}
	if g.LayoutRadius > 0 && g.Width > 0 && g.LayoutRadius*4 > g.Width {
		errs = append(errs, fmt.Errorf("game.layout_radius %g: circles overlap on a %g wide board", g.LayoutRadius, g.Width))
	}
	if g.FPS <= 0 || g.FPS > 1000 {
		errs = append(errs, fmt.Errorf("game.fps %d: want 1..1000", g.FPS))
	}
	if g.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("game.max_attempts %d: must be positive", g.MaxAttempts))
	}
	return errors.Join(errs...)
}
