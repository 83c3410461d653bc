// Package config resolves where a store lives and loads CLI settings.
//
// Paths is the location provider: it derives the root, aliases and tmp
// directories either from the platform's per-user data directory or from an
// explicit root. Settings are read by viper from an optional YAML file and
// DIDDIR_* environment variables, with defaults applied and validated.
package config
