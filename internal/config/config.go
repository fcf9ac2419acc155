// Package config loads the YAML configuration of the puzzled CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/puzzled"
	"github.com/SeamusWaldron/puzzled/internal/protocol"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "PUZZLED_CONFIG"

// Config is the on-disk configuration.
type Config struct {
	Topology     TopologyConfig    `yaml:"topology"`
	Colors       map[string]string `yaml:"colors"` // face id -> color name or #hex
	Limits       LimitsConfig      `yaml:"limits"`
	HistoryLimit int               `yaml:"history_limit"`
	GoCube       GoCubeConfig      `yaml:"gocube"`
}

// TopologyConfig declares the puzzle faces.
type TopologyConfig struct {
	Faces map[string]FaceConfig `yaml:"faces"`
}

// FaceConfig declares one face: its counter-clockwise neighbors as a
// string of face ids and its opposite face.
type FaceConfig struct {
	Neighbors string `yaml:"neighbors"`
	Opposite  string `yaml:"opposite"`
}

// LimitsConfig caps notation work. Zero fields take the defaults.
type LimitsConfig struct {
	MaxRepeat int `yaml:"max_repeat"`
	MaxDepth  int `yaml:"max_depth"`
	MaxTurns  int `yaml:"max_turns"`
}

// GoCubeConfig maps the cube's center colors to face ids.
type GoCubeConfig struct {
	Colors map[string]string `yaml:"colors"`
}

// Default returns the configuration of the standard cube.
func Default() *Config {
	return &Config{
		Topology: TopologyConfig{
			Faces: map[string]FaceConfig{
				"u": {Neighbors: "frbl", Opposite: "d"},
				"r": {Neighbors: "ufdb", Opposite: "l"},
				"f": {Neighbors: "uldr", Opposite: "b"},
				"d": {Neighbors: "flbr", Opposite: "u"},
				"l": {Neighbors: "ubdf", Opposite: "r"},
				"b": {Neighbors: "urdl", Opposite: "f"},
			},
		},
		Colors: map[string]string{
			"u": "white",
			"r": "green",
			"f": "red",
			"d": "yellow",
			"l": "blue",
			"b": "orange",
		},
		Limits: LimitsConfig{
			MaxRepeat: puzzled.DefaultMaxRepeat,
			MaxDepth:  puzzled.DefaultMaxDepth,
			MaxTurns:  puzzled.DefaultMaxTurns,
		},
		GoCube: GoCubeConfig{
			Colors: map[string]string{
				"white":  "u",
				"green":  "r",
				"red":    "f",
				"yellow": "d",
				"blue":   "l",
				"orange": "b",
			},
		},
	}
}

// Path resolves the config file location: the explicit path if given,
// then $PUZZLED_CONFIG, then ~/.puzzled/config.yaml.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".puzzled", "config.yaml"), nil
}

// Load reads the configuration. A missing file at an implicit location
// yields the defaults; an explicit path must exist.
func Load(explicit string) (*Config, error) {
	path, err := Path(explicit)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && explicit == "" {
		slog.Debug("no config file, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read the config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("loaded config", "path", path, "faces", len(cfg.Topology.Faces))
	return cfg, nil
}

// Parse decodes YAML and fills every section left empty with the
// defaults. A declared topology replaces the standard cube entirely.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", puzzled.ErrConfiguration, err)
	}

	def := Default()
	if len(cfg.Topology.Faces) == 0 {
		cfg.Topology = def.Topology
	}
	if cfg.Colors == nil {
		cfg.Colors = make(map[string]string)
	}
	for face, color := range def.Colors {
		if _, ok := cfg.Colors[face]; !ok {
			cfg.Colors[face] = color
		}
	}
	if cfg.Limits.MaxRepeat <= 0 {
		cfg.Limits.MaxRepeat = def.Limits.MaxRepeat
	}
	if cfg.Limits.MaxDepth <= 0 {
		cfg.Limits.MaxDepth = def.Limits.MaxDepth
	}
	if cfg.Limits.MaxTurns <= 0 {
		cfg.Limits.MaxTurns = def.Limits.MaxTurns
	}
	if len(cfg.GoCube.Colors) == 0 {
		cfg.GoCube = def.GoCube
	}
	if cfg.HistoryLimit < 0 {
		return nil, fmt.Errorf("%w: history_limit must not be negative", puzzled.ErrConfiguration)
	}
	return &cfg, nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildTopology validates the declared faces and builds the topology.
// Errors wrap puzzled.ErrConfiguration.
func (c *Config) BuildTopology() (*puzzled.Topology, error) {
	adjacency := make(map[puzzled.Face][]puzzled.Face, len(c.Topology.Faces))
	opposites := make(map[puzzled.Face]puzzled.Face, len(c.Topology.Faces))

	for _, id := range sortedKeys(c.Topology.Faces) {
		fc := c.Topology.Faces[id]
		face, err := faceID(id)
		if err != nil {
			return nil, err
		}
		opp, err := faceID(fc.Opposite)
		if err != nil {
			return nil, fmt.Errorf("face %s opposite: %w", id, err)
		}

		neighbors := make([]puzzled.Face, 0, len(fc.Neighbors))
		for i := 0; i < len(fc.Neighbors); i++ {
			neighbors = append(neighbors, puzzled.Face(fc.Neighbors[i]))
		}
		adjacency[face] = neighbors
		opposites[face] = opp
	}

	return puzzled.NewTopology(adjacency, opposites)
}

// Options converts the configuration into session options.
func (c *Config) Options(logger *slog.Logger) ([]puzzled.Option, error) {
	topo, err := c.BuildTopology()
	if err != nil {
		return nil, err
	}
	return []puzzled.Option{
		puzzled.WithTopology(topo),
		puzzled.WithLogger(logger),
		puzzled.WithLimits(puzzled.Limits{
			MaxRepeat: c.Limits.MaxRepeat,
			MaxDepth:  c.Limits.MaxDepth,
			MaxTurns:  c.Limits.MaxTurns,
		}),
		puzzled.WithHistoryLimit(c.HistoryLimit),
	}, nil
}

// FaceColors returns the configured color of every face.
func (c *Config) FaceColors() map[puzzled.Face]string {
	out := make(map[puzzled.Face]string, len(c.Colors))
	for id, color := range c.Colors {
		if len(id) == 1 {
			out[puzzled.Face(id[0])] = color
		}
	}
	return out
}

// ColorFaces returns the GoCube color to face mapping.
func (c *Config) ColorFaces() (protocol.ColorFaces, error) {
	out := make(protocol.ColorFaces, len(c.GoCube.Colors))
	for color, id := range c.GoCube.Colors {
		face, err := faceID(id)
		if err != nil {
			return nil, fmt.Errorf("gocube color %s: %w", color, err)
		}
		out[color] = face
	}
	return out, nil
}

func faceID(s string) (puzzled.Face, error) {
	if len(s) != 1 || s[0] < 'a' || s[0] > 'z' {
		return 0, fmt.Errorf("%w: face id %q is not a single lowercase letter", puzzled.ErrConfiguration, s)
	}
	return puzzled.Face(s[0]), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
