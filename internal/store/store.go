package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"diddir/internal/domain"
	"diddir/internal/logger"
	"diddir/internal/perm"
)

// Store is an opened identity store and its in-memory index.
type Store struct {
	locs     domain.Locations
	enforcer perm.Enforcer
	suffix   func() (string, error)

	ids     map[string]string // pkid -> path under root
	aliases map[string]string // alias -> pkid
}

// Option customises a Store.
type Option func(*Store)

// WithEnforcer replaces the platform permission enforcer.
func WithEnforcer(e perm.Enforcer) Option {
	return func(s *Store) { s.enforcer = e }
}

// WithSuffixFunc replaces the random temp-name suffix generator.
func WithSuffixFunc(fn func() (string, error)) Option {
	return func(s *Store) { s.suffix = fn }
}

func newStore(locs domain.Locations, opts []Option) *Store {
	s := &Store{
		locs:     locs,
		enforcer: perm.Default(),
		suffix:   randomSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens an existing store. All three directories must exist and every
// entry beneath them must carry exactly the strict mode.
func Open(locs domain.Locations, opts ...Option) (*Store, error) {
	s := newStore(locs, opts)

	if err := s.checkDirsExist(); err != nil {
		return nil, err
	}
	for _, d := range s.treeRoots() {
		if err := perm.CheckTree(s.enforcer, d); err != nil {
			return nil, err
		}
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	logger.Debug("store opened", "root", locs.RootDir(), "ids", len(s.ids), "aliases", len(s.aliases))
	return s, nil
}

// Init creates an empty store and opens it. Existing directories are
// adopted only when empty.
func Init(locs domain.Locations, opts ...Option) (*Store, error) {
	s := newStore(locs, opts)

	for _, d := range s.dirs() {
		entries, err := os.ReadDir(d)
		switch {
		case err == nil:
			if len(entries) > 0 {
				return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, d)
			}
		case errors.Is(err, fs.ErrNotExist):
			if err := os.MkdirAll(d, perm.DirMode); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	for _, d := range s.treeRoots() {
		if err := perm.SetTree(s.enforcer, d); err != nil {
			return nil, err
		}
	}
	logger.Info("store initialised", "root", locs.RootDir())
	return Open(locs, opts...)
}

// OpenOrInit opens the store, or initialises it when it does not exist yet.
// Permission mismatches and other failures from Open are returned as is.
func OpenOrInit(locs domain.Locations, opts ...Option) (*Store, error) {
	s, err := Open(locs, opts...)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return Init(locs, opts...)
}

// Locations returns the directories backing s.
func (s *Store) Locations() domain.Locations { return s.locs }

func (s *Store) dirs() []string {
	return []string{s.locs.RootDir(), s.locs.AliasesDir(), s.locs.TmpDir()}
}

// treeRoots returns root plus any store directory not already beneath it.
func (s *Store) treeRoots() []string {
	root := s.locs.RootDir()
	out := []string{root}
	for _, d := range []string{s.locs.AliasesDir(), s.locs.TmpDir()} {
		if !within(root, d) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) checkDirsExist() error {
	for _, d := range s.dirs() {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: no store directory at %s", ErrNotFound, d)
		}
	}
	return nil
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Compile-time assertion that Store implements domain.Store.
var _ domain.Store = (*Store)(nil)
