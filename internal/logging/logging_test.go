package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "studytrackr.log")
	logger, err := New("debug", file)
	require.NoError(t, err)

	logger.Debug("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNewLevelFilters(t *testing.T) {
	file := filepath.Join(t.TempDir(), "studytrackr.log")
	logger, err := New("warn", file)
	require.NoError(t, err)

	logger.Info("quiet")
	require.NoError(t, logger.Sync())

	data, _ := os.ReadFile(file)
	assert.NotContains(t, string(data), "quiet")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New("loud", filepath.Join(t.TempDir(), "x.log"))
	assert.Error(t, err)
}
