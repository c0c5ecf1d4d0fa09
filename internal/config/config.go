package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.gutview)
	ConfigDir string

	// ModelsDir holds user model files
	ModelsDir string

	// SettingsFile is the viewer preferences file
	SettingsFile string

	// KeybindsFile holds keybinding overrides (JSON with comments)
	KeybindsFile string

	// DatabaseFile is the SQLite database of saved marker sets
	DatabaseFile string

	// LogFile receives debug logs when the TUI runs with --debug
	LogFile string
)

// Initialize sets up the configuration directories.
// It creates ~/.gutview/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".gutview"))
}

// InitializeAt sets the global paths under dir and creates the directory tree.
func InitializeAt(dir string) error {
	ConfigDir = dir
	ModelsDir = filepath.Join(ConfigDir, "models")
	SettingsFile = filepath.Join(ConfigDir, "settings.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	DatabaseFile = filepath.Join(ConfigDir, "gutview.db")
	LogFile = filepath.Join(ConfigDir, "debug.log")

	for _, d := range []string{ConfigDir, ModelsDir} {
		if err := os.MkdirAll(d, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return nil
}

// ResolveModelPath finds a model file. Absolute paths and paths that exist
// relative to the working directory are used as is; otherwise the name is
// looked up in ModelsDir. A leading ~/ is expanded.
func ResolveModelPath(name string) (string, error) {
	if name == "" {
		return "", nil
	}

	if strings.HasPrefix(name, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		name = filepath.Join(homeDir, name[2:])
	}

	if filepath.IsAbs(name) {
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	if ModelsDir != "" {
		candidate := filepath.Join(ModelsDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("model file not found: %s", name)
}
