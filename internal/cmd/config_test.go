package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitals-cli/vitals/internal/config"
	"github.com/vitals-cli/vitals/internal/testutil"
)

func TestConfigShow(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := config.Config{
		Threshold: 75,
		Output:    "json",
		UI:        config.UIConfig{Color: "never", Unicode: false},
	}
	err := config.Save(&cfg, configPath)
	require.NoError(t, err)

	cmd := newConfigShowCmd()
	cmd.SetArgs([]string{"--config", configPath})

	capture := testutil.CaptureOutput()
	err = cmd.Execute()
	require.NoError(t, err)
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()

	assert.Contains(t, stdout, "Current Configuration:")
	assert.Contains(t, stdout, "75%")
	assert.Contains(t, stdout, "json")
	assert.Contains(t, stdout, "never")
	assert.Contains(t, stdout, configPath)
	assert.NotContains(t, stdout, "no config file found")
}

func TestConfigShow_MissingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	cmd := newConfigShowCmd()
	cmd.SetArgs([]string{"--config", configPath})

	capture := testutil.CaptureOutput()
	err := cmd.Execute()
	require.NoError(t, err)
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()

	assert.Contains(t, stdout, "no config file found")
	assert.Contains(t, stdout, "60%", "defaults should be shown")
}

func TestConfigInit(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".vitals", "config.yaml")

	cmd := newConfigInitCmd()
	cmd.SetArgs([]string{"--config", configPath})

	capture := testutil.CaptureOutput()
	err := cmd.Execute()
	require.NoError(t, err)
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()

	assert.Contains(t, stdout, "Default configuration written to:")
	require.FileExists(t, configPath)

	loadedCfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 60, loadedCfg.Threshold)
	assert.Equal(t, "table", loadedCfg.Output)
	assert.Equal(t, "auto", loadedCfg.UI.Color)
	assert.True(t, loadedCfg.UI.Unicode)
}

func TestConfigInit_ExistingFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := config.Config{Threshold: 80, Output: "yaml"}
	err := config.Save(&cfg, configPath)
	require.NoError(t, err)

	cmd := newConfigInitCmd()
	cmd.SetArgs([]string{"--config", configPath})

	capture := testutil.CaptureOutput()
	err = cmd.Execute()
	require.NoError(t, err)
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()

	assert.Contains(t, stdout, "already exists")

	// Existing settings must survive
	loadedCfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 80, loadedCfg.Threshold)
}

func TestConfigSetThreshold(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := config.Config{Threshold: 60, Output: "json"}
	err := config.Save(&cfg, configPath)
	require.NoError(t, err)

	cmd := newConfigSetThresholdCmd()
	cmd.SetArgs([]string{"75", "--config", configPath})

	capture := testutil.CaptureOutput()
	err = cmd.Execute()
	require.NoError(t, err)
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()

	assert.Contains(t, stdout, "75%")

	loadedCfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 75, loadedCfg.Threshold)
	assert.Equal(t, "json", loadedCfg.Output, "other settings should be preserved")
}

func TestConfigSetThreshold_CreatesMissingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".vitals", "config.yaml")

	cmd := newConfigSetThresholdCmd()
	cmd.SetArgs([]string{"80", "--config", configPath})

	capture := testutil.CaptureOutput()
	err := cmd.Execute()
	capture.Restore()
	require.NoError(t, err)

	loadedCfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 80, loadedCfg.Threshold)
	assert.Equal(t, "table", loadedCfg.Output, "remaining settings take defaults")
}

func TestConfigSetThreshold_Validation(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"zero", "0"},
		{"too large", "101"},
		{"not a number", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")

			cmd := newConfigSetThresholdCmd()
			cmd.SetArgs([]string{tt.arg, "--config", configPath})

			capture := testutil.CaptureOutput()
			err := cmd.Execute()
			capture.Restore()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid threshold")

			_, statErr := os.Stat(configPath)
			assert.True(t, os.IsNotExist(statErr), "no config file should be written")
		})
	}
}
