package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"diddir/internal/domain"
)

const (
	qualifier    = "org"
	organization = "linuxfoundation"
	application  = "diddir"

	aliasesDirName = "aliases"
	tmpDirName     = "tmp"
)

// Paths holds the three store directories.
type Paths struct {
	root    string
	aliases string
	tmp     string
}

// PathsFrom returns Paths rooted at root, with aliases and tmp nested inside.
func PathsFrom(root string) Paths {
	return Paths{
		root:    root,
		aliases: filepath.Join(root, aliasesDirName),
		tmp:     filepath.Join(root, tmpDirName),
	}
}

// DefaultPaths returns Paths rooted at the platform data directory.
func DefaultPaths() (Paths, error) {
	root, err := defaultRoot()
	if err != nil {
		return Paths{}, err
	}
	return PathsFrom(root), nil
}

func (p Paths) RootDir() string    { return p.root }
func (p Paths) AliasesDir() string { return p.aliases }
func (p Paths) TmpDir() string     { return p.tmp }

// defaultRoot follows the XDG base directory layout on Unix, Application
// Support on macOS and LocalAppData on Windows.
func defaultRoot() (string, error) {
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			return "", errors.New("config: %LOCALAPPDATA% is not set")
		}
		return filepath.Join(base, organization, application, "data"), nil
	case "darwin", "ios":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support",
			qualifier+"."+organization+"."+application), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(xdg) {
			return filepath.Join(xdg, application), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", application), nil
	}
}

// Compile-time assertion that Paths implements domain.Locations.
var _ domain.Locations = Paths{}
