package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for a missing identity, alias or store directory.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists is returned by Init when a store directory is not empty.
	ErrAlreadyExists = errors.New("store: directory already exists and is not empty")

	// ErrNameSpaceExhausted is returned when no unused temp name was found.
	ErrNameSpaceExhausted = errors.New("store: could not find a unique temp file name")

	// ErrNoEntry is returned when the file a remove call targets is not on disk.
	// It also matches ErrNotFound.
	ErrNoEntry = fmt.Errorf("store: file does not exist: %w", ErrNotFound)

	// ErrInvalidName is returned for a pkid or alias that is not a single path element.
	ErrInvalidName = errors.New("store: invalid entry name")
)
