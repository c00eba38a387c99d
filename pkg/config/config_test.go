package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadSettings(t *testing.T) {
	// Create a temporary config file for testing
	testConfigContent := `
log_level: debug
config_path: /tmp/ossec-test/ossec.conf
backup_dir: /tmp/ossec-test/backups
watch:
  enabled: true
  debounce_seconds: 5
`

	err := os.WriteFile("ossecconf.yaml", []byte(testConfigContent), 0644)
	assert.NoError(t, err)
	defer os.Remove("ossecconf.yaml") // Clean up the test config file

	settings, err := LoadSettings()
	assert.NoError(t, err)
	assert.NotNil(t, settings)

	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, "/tmp/ossec-test/ossec.conf", settings.ConfigPath)
	assert.Equal(t, "/tmp/ossec-test/backups", settings.BackupDir)
	assert.True(t, settings.Watch.Enabled)
	assert.Equal(t, 5, settings.Watch.DebounceSeconds)

	// Keys absent from the file keep their defaults
	assert.True(t, settings.CreateBackups)
	assert.Equal(t, 10, settings.KeepBackups)

	// Test with environment variable override
	os.Setenv("OSSECCONF_KEEP_BACKUPS", "3")
	defer os.Unsetenv("OSSECCONF_KEEP_BACKUPS")

	settings, err = LoadSettings()
	assert.NoError(t, err)
	assert.Equal(t, 3, settings.KeepBackups)
}

func TestLoadSettingsNestedEnvOverride(t *testing.T) {
	os.Setenv("OSSECCONF_WATCH_DEBOUNCE_SECONDS", "9")
	defer os.Unsetenv("OSSECCONF_WATCH_DEBOUNCE_SECONDS")

	settings, err := LoadSettings()
	assert.NoError(t, err)
	assert.Equal(t, 9, settings.Watch.DebounceSeconds)
}
