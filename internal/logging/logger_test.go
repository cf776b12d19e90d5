package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l, err := New("info", dir)
	require.NoError(t, err)
	l.Info("file stored", "id", 7)
	l.Debug("below level")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "file stored")
	assert.Contains(t, string(data), "id=7")
	assert.NotContains(t, string(data), "below level")
}

func TestNewAppendsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()

	for _, msg := range []string{"first run", "second run"} {
		l, err := New("info", dir)
		require.NoError(t, err)
		l.Info(msg)
		require.NoError(t, l.Close())
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestNewWithoutDirOwnsNoFile(t *testing.T) {
	l, err := New("warn", "")
	require.NoError(t, err)
	assert.Nil(t, l.file)
	assert.NoError(t, l.Close())
	assert.Same(t, l.Logger, l.BaseLogger())
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	dir := t.TempDir()

	l, err := New("verbose", dir)
	require.Error(t, err)
	assert.Nil(t, l)
	assert.Contains(t, err.Error(), "invalid log level")

	_, statErr := os.Stat(filepath.Join(dir, logFileName))
	assert.True(t, os.IsNotExist(statErr), "no log file on a bad level")
}
