// Package paths resolves where the drills CLI keeps its configuration, its
// database and its JSONL dumps.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/ormdrills/pkg/types"
)

// appDir is the directory name used under the platform config and data
// roots.
const appDir = "ormdrills"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".drills"
	DefaultDataDirName   = ".drills-db"
	DumpDirName          = "dumps"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "DRILLS_CONFIG_DIR"
	EnvDataDir   = "DRILLS_DATA_DIR"
)

// platformDir holds platform lookups that tests can override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/ormdrills (fallback ~/.config/ormdrills)
// macOS:   ~/Library/Application Support/ormdrills
// Windows: %APPDATA%/ormdrills
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform data directory.
//
// Linux:   $XDG_DATA_HOME/ormdrills (fallback ~/.local/share/ormdrills)
// macOS and Windows share the config location.
func DefaultDataDir() (string, error) {
	return platformPath("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func platformPath(xdgVar, homeRel string) (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, appDir), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, homeRel, appDir), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir), nil
}

// ResolveConfigDir applies the precedence flag > DRILLS_CONFIG_DIR >
// $(CWD)/.drills when it exists > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	if info, err := os.Stat(DefaultConfigDirName); err == nil && info.IsDir() {
		return filepath.Abs(DefaultConfigDirName)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies the precedence flag > config.yaml data_dir >
// DRILLS_DATA_DIR > $(CWD)/.drills-db. The in-memory marker ":memory:" is
// passed through untouched.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	for _, v := range []string{flag, configYAMLValue, os.Getenv(EnvDataDir)} {
		if v == "" {
			continue
		}
		if v == types.MemoryDataDir {
			return v, nil
		}
		return filepath.Abs(v)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// DumpDir returns the default JSONL directory for an exercise:
// <dataDir>/dumps/<exercise>. An in-memory store dumps under the working
// directory.
func DumpDir(dataDir, exercise string) string {
	if dataDir == "" || dataDir == types.MemoryDataDir {
		dataDir = DefaultDataDirName
	}
	return filepath.Join(dataDir, DumpDirName, exercise)
}
