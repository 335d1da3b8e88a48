// Package config handles reading and writing the echoes configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pharloom/echoes/internal/domain"
)

// Config is the top-level structure for config.yaml in the state directory.
type Config struct {
	StateDir    string        `yaml:"stateDir"`
	DefaultArea string        `yaml:"defaultArea"`
	Timer       TimerConfig   `yaml:"timer"`
	Media       MediaConfig   `yaml:"media"`
	API         APIConfig     `yaml:"api"`
	Areas       []domain.Area `yaml:"areas"`
}

// TimerConfig holds the default session shape.
type TimerConfig struct {
	DefaultDurationSec int `yaml:"defaultDurationSec"`
	BreakDurationSec   int `yaml:"breakDurationSec"`
}

// MediaConfig holds playback settings.
type MediaConfig struct {
	MpvPath         string  `yaml:"mpvPath"`
	Volume          float64 `yaml:"volume"`
	BreakChime      string  `yaml:"breakChime"`
	CompletionChime string  `yaml:"completionChime"`
	AssetDir        string  `yaml:"assetDir"`
}

// APIConfig holds the optional remote backend. The app is fully functional
// with both fields empty.
type APIConfig struct {
	BaseURL string `yaml:"baseURL"`
	Token   string `yaml:"token"`
}

const configFile = "config.yaml"

// DefaultConfig returns a Config with the built-in area catalog and
// sensible defaults.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	stateDir := filepath.Join(homeDir, ".echoes")
	assetDir := filepath.Join(stateDir, "assets")

	return &Config{
		StateDir:    stateDir,
		DefaultArea: "bonebottom",
		Timer: TimerConfig{
			DefaultDurationSec: 1800,
			BreakDurationSec:   300,
		},
		Media: MediaConfig{
			MpvPath:         "mpv",
			Volume:          0.7,
			AssetDir:        assetDir,
			BreakChime:      filepath.Join(assetDir, "sounds", "bell_break.mp3"),
			CompletionChime: filepath.Join(assetDir, "sounds", "bell_complete.mp3"),
		},
		Areas: []domain.Area{
			{
				ID:          "bonebottom",
				DisplayName: "Bone Bottom",
				AudioPath:   filepath.Join(assetDir, "sounds", "bone_bottom.mp3"),
				VideoPath:   filepath.Join(assetDir, "video", "bone_bottom.mp4"),
			},
			{
				ID:          "choralchambers",
				DisplayName: "Choral Chambers",
				AudioPath:   filepath.Join(assetDir, "sounds", "choral_chambers.mp3"),
				VideoPath:   filepath.Join(assetDir, "video", "choral_chambers.mp4"),
			},
			{
				ID:          "farfields",
				DisplayName: "Far Fields",
				AudioPath:   filepath.Join(assetDir, "sounds", "farfields.mp3"),
				VideoPath:   filepath.Join(assetDir, "video", "farfields.mp4"),
			},
			{
				ID:          "hunterspath",
				DisplayName: "Hunter's Path",
				AudioPath:   filepath.Join(assetDir, "sounds", "hunters_path.mp3"),
				VideoPath:   filepath.Join(assetDir, "video", "hunters_path.mp4"),
			},
		},
	}
}

// Load reads config.yaml from dir. A missing file is not an error: defaults
// are returned. A present but malformed file is an error. Zero-valued fields
// in the file are filled from defaults so partial configs stay valid.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()
	if dir != "" {
		cfg.StateDir = dir
	}

	path := filepath.Join(cfg.StateDir, configFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	merge(cfg, &file)
	return cfg, nil
}

// Save writes the config to the state directory, creating it if needed.
func Save(cfg *Config) error {
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := filepath.Join(cfg.StateDir, configFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func merge(dst, src *Config) {
	if src.DefaultArea != "" {
		dst.DefaultArea = src.DefaultArea
	}
	if src.Timer.DefaultDurationSec > 0 {
		dst.Timer.DefaultDurationSec = src.Timer.DefaultDurationSec
	}
	if src.Timer.BreakDurationSec >= 0 && src.Timer.BreakDurationSec != 0 {
		dst.Timer.BreakDurationSec = src.Timer.BreakDurationSec
	}
	if src.Media.MpvPath != "" {
		dst.Media.MpvPath = src.Media.MpvPath
	}
	if src.Media.Volume > 0 {
		dst.Media.Volume = src.Media.Volume
	}
	if src.Media.BreakChime != "" {
		dst.Media.BreakChime = src.Media.BreakChime
	}
	if src.Media.CompletionChime != "" {
		dst.Media.CompletionChime = src.Media.CompletionChime
	}
	if src.Media.AssetDir != "" {
		dst.Media.AssetDir = src.Media.AssetDir
	}
	if src.API.BaseURL != "" {
		dst.API.BaseURL = src.API.BaseURL
	}
	if src.API.Token != "" {
		dst.API.Token = src.API.Token
	}
	if len(src.Areas) > 0 {
		dst.Areas = src.Areas
	}
}

// AreaByID looks an area up in the catalog.
func (c *Config) AreaByID(id string) (domain.Area, bool) {
	for _, a := range c.Areas {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Area{}, false
}

// AreaIDs returns the catalog's ids in order.
func (c *Config) AreaIDs() []string {
	ids := make([]string, len(c.Areas))
	for i, a := range c.Areas {
		ids[i] = a.ID
	}
	return ids
}
