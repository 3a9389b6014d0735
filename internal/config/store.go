package config

import (
	"log/slog"

	"github.com/davecgh/go-spew/spew"
)

// Store loads and saves the configuration file. CLI overrides are applied
// on every load so that they survive edits to the file.
type Store struct {
	path      string
	overrides []Option
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string, overrides ...Option) *Store {
	return &Store{
		path:      path,
		overrides: overrides,
	}
}

// Path returns the location of the configuration file.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the configuration file.
func (s *Store) Load() (*Config, error) {
	opts := append([]Option{WithViperConfig(s.path)}, s.overrides...)

	cfg, err := New(opts...)
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	slog.Debug("config loaded", slog.String("path", s.path), slog.String("config", spew.Sdump(cfg)))

	return cfg, nil
}

// Save validates cfg and writes it to the configuration file.
func (s *Store) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return ErrConfig.Wrap(err)
	}

	if err := writeViperConfig(s.path, cfg); err != nil {
		return ErrConfig.Wrap(err)
	}

	return nil
}

// Update applies fn to the configuration file as written on disk, without
// the CLI overrides, and saves the result.
func (s *Store) Update(fn func(*Config) error) error {
	cfg, err := New(WithViperConfig(s.path))
	if err != nil {
		return ErrConfig.Wrap(err)
	}

	if err := fn(cfg); err != nil {
		return err
	}

	return s.Save(cfg)
}
