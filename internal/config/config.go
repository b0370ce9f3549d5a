// Package config loads course-ical settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// COURSE_ICAL_* environment variables (which may come from a .env file
// loaded by the binary). Command-line flags are applied last by the cli
// package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/course-ical/internal/calendar"
	"github.com/pfrederiksen/course-ical/internal/scraper"
)

// Environment variables read by ApplyEnv.
const (
	EnvTimezone    = "COURSE_ICAL_TIMEZONE"
	EnvOutputDir   = "COURSE_ICAL_OUTPUT_DIR"
	EnvUserAgent   = "COURSE_ICAL_USER_AGENT"
	EnvConcurrency = "COURSE_ICAL_CONCURRENCY"
)

const defaultFilePrefix = "berkeley-classes"

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the TZID written on every DTSTART/DTEND.
	Timezone string `yaml:"timezone"`

	// OutputDir receives the generated .ics file.
	OutputDir string `yaml:"output_dir"`

	// FilePrefix starts every generated file name.
	FilePrefix string `yaml:"file_prefix"`

	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:    calendar.DefaultZone,
		OutputDir:   ".",
		FilePrefix:  defaultFilePrefix,
		UserAgent:   scraper.DefaultUserAgent,
		Timeout:     scraper.DefaultTimeout,
		Concurrency: scraper.DefaultConcurrency,
	}
}

// Normalize fills empty string fields with their defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.FilePrefix == "" {
		c.FilePrefix = def.FilePrefix
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
}

// Validate rejects settings the run cannot work with.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Timezone == "" {
		return errors.New("timezone is empty")
	}
	if _, err := calendar.LoadZone(c.Timezone); err != nil {
		return err
	}
	return nil
}

// Load returns the defaults overlaid with the YAML file at path (when path
// is not empty) and the environment. Unknown YAML keys are an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// ApplyEnv overrides fields from COURSE_ICAL_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvTimezone); ok {
		c.Timezone = v
	}
	if v, ok := os.LookupEnv(EnvOutputDir); ok {
		c.OutputDir = v
	}
	if v, ok := os.LookupEnv(EnvUserAgent); ok {
		c.UserAgent = v
	}
	if v, ok := os.LookupEnv(EnvConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvConcurrency, err)
		}
		c.Concurrency = n
	}
	return nil
}
