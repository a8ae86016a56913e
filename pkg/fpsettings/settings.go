package fpsettings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/datatug/filepane/pkg/fsutils"
)

// DefaultEditableExtensions are the file extensions offered for text editing.
var DefaultEditableExtensions = []string{".txt", ".md", ".py", ".log"}

type Settings struct {
	EditableExtensions []string      `yaml:"editable_extensions,omitempty"`
	Log                LogSettings   `yaml:"log"`
	LockDir            string        `yaml:"lock_dir,omitempty"`
	LockTimeout        time.Duration `yaml:"lock_timeout,omitempty"`
}

type LogSettings struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

func Default() Settings {
	return Settings{
		EditableExtensions: append([]string(nil), DefaultEditableExtensions...),
		Log: LogSettings{
			Level: "warn",
		},
		LockTimeout: 5 * time.Second,
	}
}

var readYAML = fsutils.ReadYAMLFile

// DefaultFilePath is the settings file inside the user dir.
func DefaultFilePath() (string, error) {
	userDir, err := GetUserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, SettingsFileName), nil
}

// Load reads settings from filePath on top of the defaults.
// An empty filePath means the default location; a missing file yields the defaults.
func Load(filePath string) (Settings, error) {
	settings := Default()
	required := filePath != ""
	if filePath == "" {
		var err error
		if filePath, err = DefaultFilePath(); err != nil {
			return settings, nil
		}
	}
	if err := readYAML(fsutils.ExpandHome(filePath), required, &settings); err != nil {
		return settings, fmt.Errorf("failed to read settings file %s: %w", filePath, err)
	}

	if level := os.Getenv("FILEPANE_LOG_LEVEL"); level != "" {
		settings.Log.Level = level
	}
	settings.Log.File = fsutils.ExpandHome(settings.Log.File)
	settings.LockDir = fsutils.ExpandHome(settings.LockDir)
	settings.EditableExtensions = normalizeExtensions(settings.EditableExtensions)

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func (s Settings) Validate() error {
	switch s.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", s.Log.Level)
	}
	for _, ext := range s.EditableExtensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("editable extension %q must look like .ext", ext)
		}
	}
	if s.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must not be negative")
	}
	return nil
}

// normalizeExtensions lower-cases extensions and adds a missing leading dot.
func normalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}
