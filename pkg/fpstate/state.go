// Package fpstate remembers where the user was between runs.
package fpstate

import (
	"log/slog"
	"path/filepath"

	"github.com/datatug/filepane/pkg/fpsettings"
	"github.com/datatug/filepane/pkg/fsutils"
)

const stateFileName = "filepane-state.yaml"

type State struct {
	CurrentDir string `yaml:"current_dir,omitempty"`
}

var getUserDir = fpsettings.GetUserDir
var readYAML = fsutils.ReadYAMLFile
var writeYAML = fsutils.WriteYAMLFile

func getStateFilePath() (string, error) {
	userDir, err := getUserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, stateFileName), nil
}

func GetState() (*State, error) {
	var state State
	filePath, err := getStateFilePath()
	if err != nil {
		return &state, err
	}
	return &state, readYAML(filePath, false, &state)
}

// GetCurrentDir returns the last listed directory, or "" if none was saved.
func GetCurrentDir() string {
	state, err := GetState()
	if err != nil {
		slog.Debug("failed to read state", "err", err)
	}
	return state.CurrentDir
}

func SaveCurrentDir(currentDir string) error {
	return saveStateValue(func(state *State) {
		state.CurrentDir = currentDir
	})
}

func saveStateValue(f func(state *State)) error {
	filePath, err := getStateFilePath()
	if err != nil {
		return err
	}
	var state State
	if err = readYAML(filePath, false, &state); err != nil {
		slog.Warn("failed to read state file, overwriting", "path", filePath, "err", err)
		state = State{}
	}
	f(&state)
	return writeYAML(filePath, state)
}
