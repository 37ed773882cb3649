package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ian-shakespeare/tapevm/internal/interpret"
)

// Config holds the optional settings of a run, read from a YAML file:
//
//	tape_size: 1000
//	log:
//	  level: debug
//	  file: run.log
type Config struct {
	TapeSize int `yaml:"tape_size"`
	Log      Log `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() Config {
	return Config{
		TapeSize: interpret.DefaultTapeSize,
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the configuration at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a YAML document over the defaults. Unknown keys are errors.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TapeSize < 1 || c.TapeSize > interpret.MaxTapeSize {
		return fmt.Errorf("tape_size must be between 1 and %d, got %d", interpret.MaxTapeSize, c.TapeSize)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
