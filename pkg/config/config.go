// Package config reads the runner configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runner settings. Command line flags override the
// values loaded from a file.
type Config struct {
	// BootROM is the path of an optional boot ROM image.
	BootROM string `yaml:"boot_rom"`
	// SaveDir is where battery saves are kept. Empty disables saves.
	SaveDir string `yaml:"save_dir"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// Cycles limits the run to this many machine cycles; 0 runs until a
	// breakpoint or the serial debugger stops the machine.
	Cycles uint64 `yaml:"cycles"`
	// Debug enables the LD B, B breakpoint.
	Debug bool `yaml:"debug"`
	// Serial prints the bytes sent over the serial port.
	Serial bool `yaml:"serial"`
	// Cheats is the path of an optional Game Genie cheat file.
	Cheats string `yaml:"cheats"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SaveDir:  "saves",
		LogLevel: "info",
		Serial:   true,
	}
}

// Load reads the configuration at path on top of Default. A missing file
// is not an error.
func Load(path string) (Config, error) {
	c := Default()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	defer f.Close()

	if err := Decode(f, &c); err != nil {
		return c, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Decode reads YAML from r into c. Unknown keys are rejected.
func Decode(r io.Reader, c *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Save writes c as YAML to path.
func (c Config) Save(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
