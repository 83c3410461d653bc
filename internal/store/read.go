package store

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"diddir/internal/logger"
)

// Reload rebuilds both indexes from a full scan of root and aliases. The
// previous index is kept if either scan fails.
func (s *Store) Reload() error {
	ids, err := readIDs(s.locs.RootDir())
	if err != nil {
		return err
	}
	aliases, err := readAliases(s.locs.AliasesDir())
	if err != nil {
		return err
	}
	s.ids, s.aliases = ids, aliases
	logger.Debug("store index reloaded", "ids", len(ids), "aliases", len(aliases))
	return nil
}

// GetIdentity returns the document stored under pkid.
func (s *Store) GetIdentity(pkid string) (string, error) {
	path, ok := s.ids[pkid]
	if !ok {
		return "", fmt.Errorf("%w: no identity file for %s", ErrNotFound, pkid)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetIdentities returns every known pkid in sorted order, or ok=false if
// there are none.
func (s *Store) GetIdentities() ([]string, bool) {
	if len(s.ids) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(s.ids))
	for pkid := range s.ids {
		out = append(out, pkid)
	}
	slices.Sort(out)
	return out, true
}

// GetPKIDFromAlias resolves alias to its pkid.
func (s *Store) GetPKIDFromAlias(alias string) (string, error) {
	pkid, ok := s.aliases[alias]
	if !ok {
		return "", fmt.Errorf("%w: no identity for alias %s", ErrNotFound, alias)
	}
	return pkid, nil
}

// GetAliases returns the aliases that resolve to pkid in sorted order, or
// ok=false if there are none.
func (s *Store) GetAliases(pkid string) ([]string, bool) {
	var out []string
	for alias, id := range s.aliases {
		if id == pkid {
			out = append(out, alias)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	slices.Sort(out)
	return out, true
}

// readIDs maps each regular file directly inside dir to its path.
func readIDs(dir string) (map[string]string, error) {
	ids := make(map[string]string)
	err := scanFiles(dir, func(name, path string) error {
		ids[name] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// readAliases maps each regular file directly inside dir to its trimmed content.
func readAliases(dir string) (map[string]string, error) {
	aliases := make(map[string]string)
	err := scanFiles(dir, func(name, path string) error {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		aliases[name] = strings.TrimSpace(string(b))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return aliases, nil
}

// scanFiles calls fn for each regular file directly inside dir. Directories
// and other non-regular entries are skipped; symlinks are followed.
func scanFiles(dir string, fn func(name, path string) error) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: no store directory at %s", ErrNotFound, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if err := fn(e.Name(), path); err != nil {
			return err
		}
	}
	return nil
}
