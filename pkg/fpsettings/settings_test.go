package fpsettings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserDir_Success(t *testing.T) {
	withTestGlobalLock(t)
	oldOsUserHomeDir := osUserHomeDir
	t.Cleanup(func() {
		osUserHomeDir = oldOsUserHomeDir
	})

	osUserHomeDir = func() (string, error) {
		return "/tmp/home", nil
	}

	userDir, err := GetUserDir()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/home", ".filepane"), userDir)

	filePath, err := DefaultFilePath()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/home", ".filepane", SettingsFileName), filePath)
}

func TestGetUserDir_Error(t *testing.T) {
	withTestGlobalLock(t)
	oldOsUserHomeDir := osUserHomeDir
	t.Cleanup(func() {
		osUserHomeDir = oldOsUserHomeDir
	})

	wantErr := errors.New("home dir error")
	osUserHomeDir = func() (string, error) {
		return "", wantErr
	}

	userDir, err := GetUserDir()
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, UserDir, userDir)

	settings, err := Load("")
	assert.NoError(t, err, "unknown home dir falls back to defaults")
	assert.Equal(t, Default(), settings)
}

func TestLoad(t *testing.T) {
	withTestGlobalLock(t)
	t.Setenv("FILEPANE_LOG_LEVEL", "")

	t.Run("missing_default_file", func(t *testing.T) {
		oldOsUserHomeDir := osUserHomeDir
		t.Cleanup(func() { osUserHomeDir = oldOsUserHomeDir })
		home := t.TempDir()
		osUserHomeDir = func() (string, error) { return home, nil }

		settings, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, []string{".txt", ".md", ".py", ".log"}, settings.EditableExtensions)
		assert.Equal(t, "warn", settings.Log.Level)
		assert.Equal(t, 5*time.Second, settings.LockTimeout)
	})

	t.Run("missing_explicit_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
	})

	t.Run("from_file", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), SettingsFileName)
		content := "editable_extensions: [TXT, .Go, \"\"]\n" +
			"log:\n  level: debug\n  file: /tmp/filepane.log\n" +
			"lock_dir: /tmp/locks\nlock_timeout: 250ms\n"
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))

		settings, err := Load(filePath)
		require.NoError(t, err)
		assert.Equal(t, []string{".txt", ".go"}, settings.EditableExtensions)
		assert.Equal(t, "debug", settings.Log.Level)
		assert.Equal(t, "/tmp/filepane.log", settings.Log.File)
		assert.Equal(t, "/tmp/locks", settings.LockDir)
		assert.Equal(t, 250*time.Millisecond, settings.LockTimeout)
	})

	t.Run("env_override", func(t *testing.T) {
		t.Setenv("FILEPANE_LOG_LEVEL", "debug")
		filePath := filepath.Join(t.TempDir(), SettingsFileName)
		require.NoError(t, os.WriteFile(filePath, []byte("log:\n  level: error\n"), 0o644))

		settings, err := Load(filePath)
		require.NoError(t, err)
		assert.Equal(t, "debug", settings.Log.Level)
	})

	t.Run("invalid_level", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), SettingsFileName)
		require.NoError(t, os.WriteFile(filePath, []byte("log:\n  level: loud\n"), 0o644))

		_, err := Load(filePath)
		assert.ErrorContains(t, err, "log.level")
	})
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	s := Default()
	s.EditableExtensions = []string{"./x"}
	assert.Error(t, s.Validate())

	s = Default()
	s.LockTimeout = -time.Second
	assert.Error(t, s.Validate())
}
