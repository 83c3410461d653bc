package store

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"diddir/internal/logger"
	"diddir/internal/perm"
)

const (
	suffixLen = 6

	// maxTmpAttempts bounds the temp-name collision retries.
	maxTmpAttempts = 99

	// deleteMarker is the base name of entries renamed into tmp for removal.
	deleteMarker = ".deleted"

	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// randomSuffix returns suffixLen random alphanumeric characters.
func randomSuffix() (string, error) {
	out := make([]byte, 0, suffixLen)
	buf := make([]byte, 2*suffixLen)
	for len(out) < suffixLen {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			// reject the tail of the byte range so every character is equally likely
			if int(b) >= 256-256%len(alphanumeric) {
				continue
			}
			out = append(out, alphanumeric[int(b)%len(alphanumeric)])
			if len(out) == suffixLen {
				break
			}
		}
	}
	return string(out), nil
}

// tmpPath returns an unused path "<tmp>/<base>-XXXXXX".
func (s *Store) tmpPath(base string) (string, error) {
	for i := 0; i < maxTmpAttempts; i++ {
		sfx, err := s.suffix()
		if err != nil {
			return "", err
		}
		p := filepath.Join(s.locs.TmpDir(), base+"-"+sfx)
		_, err = os.Lstat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s-* in %s after %d attempts",
		ErrNameSpaceExhausted, base, s.locs.TmpDir(), maxTmpAttempts)
}

// stage writes b to a fresh temp file with strict permissions and returns its path.
func (s *Store) stage(base string, b []byte) (string, error) {
	tmp, err := s.tmpPath(base)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm.FileMode)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}

	if err := s.enforcer.SetStrict(tmp); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

// put stages b and publishes it as dir/name, then reloads the index.
// A failed rename leaves the staged file in tmp.
func (s *Store) put(dir, name string, b []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	tmp, err := s.stage(name, b)
	if err != nil {
		return err
	}
	dst := filepath.Join(dir, name)
	if err := os.Rename(tmp, dst); err != nil {
		return err
	}
	logger.Debug("store file published", "path", dst)
	return s.Reload()
}

// unlink removes dir/name: the entry is first renamed into tmp, which drops
// it from dir atomically, and only then deleted. The index is reloaded.
func (s *Store) unlink(dir, name string) error {
	target, err := existingFile(dir, name)
	if err != nil {
		return err
	}
	del, err := s.tmpPath(deleteMarker)
	if err != nil {
		return err
	}
	if err := os.Rename(target, del); err != nil {
		return err
	}
	if err := os.Remove(del); err != nil {
		return err
	}
	logger.Debug("store file removed", "path", target)
	return s.Reload()
}

// existingFile returns dir/name if it is present on disk and not a directory.
func existingFile(dir, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	target := filepath.Join(dir, name)
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", fmt.Errorf("%w: %s", ErrNoEntry, target)
	}
	if err != nil {
		return "", err
	}
	return target, nil
}

// checkName rejects names that would escape or alias a store directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
