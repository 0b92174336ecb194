package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/simplega/parameter"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, closeLog, err := setupLogging(dir, false)
	require.NoError(t, err)
	defer closeLog()

	logger.Info("discarded")
	assert.NoDirExists(t, dir, "no log directory without debug")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, closeLog, err := setupLogging(dir, true)
	require.NoError(t, err)

	logger.Debug("generation evaluated")
	closeLog()

	data, err := os.ReadFile(filepath.Join(dir, parameter.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"generation evaluated"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}
