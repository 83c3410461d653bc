package app

import "diddir/internal/config"

// Mode selects how NewWire obtains the store.
type Mode int

const (
	// ModeOpen requires an existing store.
	ModeOpen Mode = iota
	// ModeOpenOrInit creates the store if it does not exist yet.
	ModeOpenOrInit
	// ModeInit creates a new store; existing non-empty directories are an error.
	ModeInit
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Settings *config.Settings // loaded settings; defaults when nil
	Root     string           // overrides Settings.Root when set
	Mode     Mode
}
