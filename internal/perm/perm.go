package perm

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

const (
	// DirMode is the strict mode for directories (owner read/write/execute).
	DirMode = 0o700

	// FileMode is the strict mode for regular files (owner read/write).
	FileMode = 0o600

	// modeMask selects the permission bits compared by CheckStrict.
	modeMask = 0o777
)

// ErrPermissionMismatch is matched by every *PermissionError.
var ErrPermissionMismatch = errors.New("perm: permission mismatch")

// Enforcer sets and checks the strict mode of a single filesystem entry.
type Enforcer interface {
	SetStrict(path string) error
	CheckStrict(path string) error
}

// PermissionError reports an entry whose mode bits differ from the strict mode.
type PermissionError struct {
	Path string
	Got  uint32
	Want uint32
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("perm: invalid permissions %#o (want %#o) on %s", e.Got, e.Want, e.Path)
}

// Is reports whether target is ErrPermissionMismatch.
func (e *PermissionError) Is(target error) bool { return target == ErrPermissionMismatch }

// SetTree applies e.SetStrict to root and to every entry beneath it.
func SetTree(e Enforcer, root string) error {
	return walk(root, e.SetStrict)
}

// CheckTree applies e.CheckStrict to root and to every entry beneath it.
func CheckTree(e Enforcer, root string) error {
	return walk(root, e.CheckStrict)
}

// walk visits root before its contents. The directory itself is handled
// before it is read so a freshly tightened directory is still listable.
func walk(root string, fn func(string) error) error {
	return filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return fn(path)
	})
}
