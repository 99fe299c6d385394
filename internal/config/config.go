// Package config loads evaluation settings from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-seqeval/iob"
	"github.com/jamesainslie/go-seqeval/reshape"
)

// Environment variables read by FromEnv.
const (
	EnvConfig   = "SEQEVAL_CONFIG"
	EnvWindow   = "SEQEVAL_WINDOW"
	EnvLanguage = "SEQEVAL_LANGUAGE"
)

// Languages lists the tokenizer languages the TEI converter understands.
var Languages = []string{"German", "English", "Multilingual", "French", "Spanish"}

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("config: invalid value")

// ReaderConfig controls how a TEI document is read before conversion.
type ReaderConfig struct {
	ExcludeTags []string `yaml:"exclude_tags"`
	NoteTags    []string `yaml:"note_tags"`
	Name        string   `yaml:"name"`
	UseNotes    bool     `yaml:"use_notes"`
	Template    bool     `yaml:"template"`
}

// Config holds all evaluation settings.
type Config struct {
	Window   int          `yaml:"window"`
	Language string       `yaml:"language"`
	Reader   ReaderConfig `yaml:"reader"`
	Entities EntityDict   `yaml:"entity_dict"`
}

// Default returns the CANSpiN defaults.
func Default() *Config {
	return &Config{
		Window:   reshape.DefaultWindow,
		Language: "German",
		Reader: ReaderConfig{
			ExcludeTags: []string{},
			NoteTags:    []string{},
			Name:        "CANSpiN_Reader-Config",
		},
		Entities: DefaultEntities(),
	}
}

// Load reads a YAML file on top of the defaults. Keys absent from the file
// keep their default values. A present entity_dict replaces the default
// dictionary entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv is Resolve with no explicit config path.
func FromEnv() (*Config, error) {
	return Resolve("")
}

// Resolve loads .env if present and reads one config file: path if given,
// else the file named by SEQEVAL_CONFIG, else the defaults. SEQEVAL_WINDOW
// and SEQEVAL_LANGUAGE are applied last.
func Resolve(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvWindow); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvWindow, v)
		}
		c.Window = n
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	return c.Validate()
}

// Validate checks ranges and the entity dictionary.
func (c *Config) Validate() error {
	if c.Window < 1 {
		return fmt.Errorf("%w: window %d, must be at least 1", ErrInvalid, c.Window)
	}
	if !slices.Contains(Languages, c.Language) {
		return fmt.Errorf("%w: language %q, want one of %v", ErrInvalid, c.Language, Languages)
	}
	if len(c.Entities) == 0 {
		return fmt.Errorf("%w: entity_dict is empty", ErrInvalid)
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// Catalog returns the entity labels in dictionary order. Tags carry the
// label, not the display name, so a name mapped to a different label is
// counted under the label. Names sharing a label share one entry.
func (c *Config) Catalog() (iob.Catalog, error) {
	return iob.NewCatalog(c.Entities.Tags()...)
}
