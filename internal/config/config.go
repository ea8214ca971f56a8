package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"dconn.dev/dungeon/internal/generation"
	"dconn.dev/dungeon/internal/render"
)

const defaultConfigPath = "data/config.json"

// Config holds all application configuration
type Config struct {
	ServerAddr string
	ConfigPath string
	Profile    generation.ProfileType // used when a request names none
	CacheSize  int

	Profiles map[string]json.RawMessage // per-profile overrides, partial JSON
	Render   RenderConfig
}

// fileConfig is the layout of the config file
type fileConfig struct {
	Profile   string                     `json:"profile"`
	CacheSize int                        `json:"cache_size"`
	Profiles  map[string]json.RawMessage `json:"profiles"`
	Render    RenderConfig               `json:"render"`
}

// RenderConfig holds image settings
type RenderConfig struct {
	CellSize  int               `json:"cell_size"`
	EdgeWidth int               `json:"edge_width"`
	Tiles     map[string]string `json:"tiles"` // tile name -> color
	Edges     map[string]string `json:"edges"` // edge name -> color
	Text      map[string]string `json:"text"`  // tile name -> glyph, "" removes
}

// Load reads the optional config file named by DUNGEON_CONFIG (default
// data/config.json) and applies environment overrides
func Load() (*Config, error) {
	path := os.Getenv("DUNGEON_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.ServerAddr = addr
	}
	if profile := os.Getenv("DUNGEON_PROFILE"); profile != "" {
		cfg.Profile = generation.ProfileType(profile)
	}
	return cfg, nil
}

// LoadFile reads a config file. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{
		ServerAddr: ":8080",
		ConfigPath: path,
		Profile:    generation.ProfileCatacombs,
		CacheSize:  64,
		Profiles:   make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if fc.Profile != "" {
		cfg.Profile = generation.ProfileType(fc.Profile)
	}
	if fc.CacheSize > 0 {
		cfg.CacheSize = fc.CacheSize
	}
	if fc.Profiles != nil {
		cfg.Profiles = fc.Profiles
	}
	cfg.Render = fc.Render
	return cfg, nil
}

// Generation returns the generation settings for a profile: the built-in
// preset with any overrides from the config file applied. Names the config
// file defines but the generator does not know start from the default preset.
func (c *Config) Generation(name string) (generation.Config, error) {
	if name == "" {
		name = string(c.Profile)
	}

	gc := generation.GetProfile(generation.ProfileType(name))
	raw, custom := c.Profiles[name]
	if custom {
		if err := json.Unmarshal(raw, &gc); err != nil {
			return gc, fmt.Errorf("profile %s: %w", name, err)
		}
		gc.Profile = generation.ProfileType(name)
	}

	if err := gc.Validate(); err != nil {
		return gc, fmt.Errorf("profile %s: %w", name, err)
	}
	return gc, nil
}

// ProfileNames lists the built-in profiles followed by the ones only the
// config file defines, sorted
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(generation.Profiles)+len(c.Profiles))
	known := make(map[string]bool)
	for _, p := range generation.Profiles {
		names = append(names, string(p))
		known[string(p)] = true
	}

	var extra []string
	for name := range c.Profiles {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Palette builds the render palette: defaults plus configured overrides
func (c *Config) Palette() (*render.Palette, error) {
	p := render.DefaultPalette()
	if c.Render.CellSize > 0 {
		p.CellSize = c.Render.CellSize
	}
	if c.Render.EdgeWidth > 0 {
		p.EdgeWidth = c.Render.EdgeWidth
	}
	if err := p.Override(c.Render.Tiles, c.Render.Edges, c.Render.Text); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return p, nil
}
