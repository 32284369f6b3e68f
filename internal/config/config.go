package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Display DisplayConfig
	Save    SaveConfig
	Debug   DebugConfig
}

// maxScrollbackLines caps the display panel. The event log is unbounded
// regardless.
const maxScrollbackLines = 1_000_000

type DisplayConfig struct {
	ScrollbackLines int `toml:"scrollback_lines"`
	PanelHeight     int `toml:"panel_height"`
	InputHeight     int `toml:"input_height"`
}

func (c *DisplayConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ScrollbackLines, validation.Required, validation.Min(1), validation.Max(maxScrollbackLines)),
		validation.Field(&c.PanelHeight, validation.Required, validation.Min(3), validation.Max(200)),
		validation.Field(&c.InputHeight, validation.Required, validation.Min(1), validation.Max(200)),
	)
}

type SaveConfig struct {
	DefaultFilename  string `toml:"default_filename"`
	DefaultExtension string `toml:"default_extension"`
	Directory        string `toml:"directory"`
}

func (c *SaveConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultFilename, validation.Required, validation.By(plainFilename)),
		validation.Field(&c.DefaultExtension, validation.Required, validation.By(dotExtension)),
	)
}

type DebugConfig struct {
	LogPath string `toml:"log_path"`
}

func plainFilename(value any) error {
	s, _ := value.(string)
	if strings.ContainsRune(s, filepath.Separator) {
		return errors.New("must be a file name without directories")
	}
	return nil
}

func dotExtension(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, ".") || len(s) < 2 {
		return errors.New(`must start with "." and name an extension`)
	}
	return nil
}

type LoadResult struct {
	Config   Config
	Warnings []string
}

func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			ScrollbackLines: 10000,
			PanelHeight:     8,
			InputHeight:     12,
		},
		Save: SaveConfig{
			DefaultFilename:  "key_events_log.txt",
			DefaultExtension: ".txt",
		},
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keyrec", "config.toml")
}

func Load() (*LoadResult, error) {
	return LoadFrom(defaultConfigPath())
}

func LoadFrom(path string) (*LoadResult, error) {
	if path == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	result, err := LoadFromString(string(data))
	if err != nil {
		return nil, err
	}
	return result, nil
}

type tomlFile struct {
	Display *DisplayConfig `toml:"display"`
	Save    *SaveConfig    `toml:"save"`
	Debug   *DebugConfig   `toml:"debug"`
}

var knownKeys = map[string]map[string]bool{
	"display": {"scrollback_lines": true, "panel_height": true, "input_height": true},
	"save":    {"default_filename": true, "default_extension": true, "directory": true},
	"debug":   {"log_path": true},
}

func LoadFromString(data string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}

	if data == "" {
		return result, nil
	}

	var raw map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	for key, val := range raw {
		fields, ok := knownKeys[key]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key))
			continue
		}
		section, ok := val.(map[string]any)
		if !ok {
			continue
		}
		for field := range section {
			if !fields[field] {
				result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key+"."+field))
			}
		}
	}

	var tf tomlFile
	if _, err := toml.Decode(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	mergeFromRaw(&result.Config, &tf, raw)

	if err := validate(&result.Config); err != nil {
		return nil, err
	}

	return result, nil
}

// mergeFromRaw copies only the keys present in the file so that absent keys
// keep their defaults.
func mergeFromRaw(cfg *Config, tf *tomlFile, raw map[string]any) {
	if tf.Display != nil {
		if section, ok := rawSection(raw, "display"); ok {
			if _, exists := section["scrollback_lines"]; exists {
				cfg.Display.ScrollbackLines = tf.Display.ScrollbackLines
			}
			if _, exists := section["panel_height"]; exists {
				cfg.Display.PanelHeight = tf.Display.PanelHeight
			}
			if _, exists := section["input_height"]; exists {
				cfg.Display.InputHeight = tf.Display.InputHeight
			}
		}
	}
	if tf.Save != nil {
		if section, ok := rawSection(raw, "save"); ok {
			if _, exists := section["default_filename"]; exists {
				cfg.Save.DefaultFilename = tf.Save.DefaultFilename
			}
			if _, exists := section["default_extension"]; exists {
				cfg.Save.DefaultExtension = tf.Save.DefaultExtension
			}
			if _, exists := section["directory"]; exists {
				cfg.Save.Directory = expandTilde(tf.Save.Directory)
			}
		}
	}
	if tf.Debug != nil {
		if section, ok := rawSection(raw, "debug"); ok {
			if _, exists := section["log_path"]; exists {
				cfg.Debug.LogPath = expandTilde(tf.Debug.LogPath)
			}
		}
	}
}

func rawSection(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func validate(cfg *Config) error {
	var errs []string

	if err := cfg.Display.Validate(); err != nil {
		errs = append(errs, "display: "+err.Error())
	}
	if err := cfg.Save.Validate(); err != nil {
		errs = append(errs, "save: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation error: %s", strings.Join(errs, "; "))
	}
	return nil
}
