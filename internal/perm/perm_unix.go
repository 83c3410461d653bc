//go:build unix

package perm

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

type modeEnforcer struct{}

// Default returns the Enforcer for this platform.
func Default() Enforcer { return modeEnforcer{} }

// SetStrict forces path to DirMode or FileMode depending on its type.
func (modeEnforcer) SetStrict(path string) error {
	want, _, err := strictMode(path)
	if err != nil {
		return err
	}
	if err := unix.Chmod(path, want); err != nil {
		return &fs.PathError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

// CheckStrict fails with a *PermissionError when the mode bits of path are
// not exactly DirMode or FileMode.
func (modeEnforcer) CheckStrict(path string) error {
	want, got, err := strictMode(path)
	if err != nil {
		return err
	}
	if got&modeMask != want {
		return &PermissionError{Path: path, Got: got & modeMask, Want: want}
	}
	return nil
}

// strictMode stats path and returns the mode it should have and the mode it has.
func strictMode(path string) (want, got uint32, err error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, 0, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	got = uint32(st.Mode)
	if got&unix.S_IFMT == unix.S_IFDIR {
		return DirMode, got, nil
	}
	return FileMode, got, nil
}
