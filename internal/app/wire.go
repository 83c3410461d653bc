package app

import (
	"fmt"
	"slices"

	"diddir/internal/config"
	"diddir/internal/domain"
	"diddir/internal/logger"
	"diddir/internal/store"
)

// Wire bundles the store and its locations for the CLI.
type Wire struct {
	Settings *config.Settings
	Paths    domain.Locations
	Store    domain.Store
}

// NewWire configures logging and opens the store described by cfg.
func NewWire(cfg Config) (*Wire, error) {
	settings := cfg.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if err := logger.Init(logger.Config{
		Level:  settings.Logging.Level,
		Format: settings.Logging.Format,
		Output: settings.Logging.Output,
	}); err != nil {
		return nil, err
	}

	var (
		paths config.Paths
		err   error
	)
	if cfg.Root != "" {
		paths = config.PathsFrom(cfg.Root)
	} else if paths, err = settings.Paths(); err != nil {
		return nil, err
	}

	var s *store.Store
	switch cfg.Mode {
	case ModeInit:
		s, err = store.Init(paths)
	case ModeOpenOrInit:
		s, err = store.OpenOrInit(paths)
	default:
		s, err = store.Open(paths)
	}
	if err != nil {
		return nil, err
	}
	return &Wire{Settings: settings, Paths: paths, Store: s}, nil
}

// Resolve maps ref to a pkid. A stored pkid wins over an alias of the same name.
func (w *Wire) Resolve(ref string) (string, error) {
	if ids, ok := w.Store.GetIdentities(); ok && slices.Contains(ids, ref) {
		return ref, nil
	}
	pkid, err := w.Store.GetPKIDFromAlias(ref)
	if err != nil {
		return "", fmt.Errorf("%q is neither a pkid nor an alias: %w", ref, err)
	}
	return pkid, nil
}
