package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAllFields(t *testing.T) {
	path := writeConfig(t, `
serial_number: "ABC123"
delay: 2000
verbose: true
require_device: true
back_light: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ABC123", cfg.SerialNumber)
	require.NotNil(t, cfg.Delay)
	assert.Equal(t, uint64(2000), *cfg.Delay)
	require.NotNil(t, cfg.Verbose)
	assert.True(t, *cfg.Verbose)
	require.NotNil(t, cfg.RequireDevice)
	assert.True(t, *cfg.RequireDevice)
	require.NotNil(t, cfg.BackLight)
	assert.True(t, *cfg.BackLight)
}

func TestLoadDeviceTypes(t *testing.T) {
	for _, deviceType := range []string{"glow", "beam", "beam_lx"} {
		cfg, err := Load(writeConfig(t, "device_type: "+deviceType+"\n"))
		require.NoError(t, err)
		assert.Equal(t, deviceType, cfg.DeviceType)
	}
}

func TestLoadDevicePath(t *testing.T) {
	cfg, err := Load(writeConfig(t, `device_path: "/dev/hidraw0"`))
	require.NoError(t, err)
	assert.Equal(t, "/dev/hidraw0", cfg.DevicePath)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadWithComments(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
# targeting
device_type: "glow"  # inline comment
delay: 2000
`))
	require.NoError(t, err)
	assert.Equal(t, "glow", cfg.DeviceType)
	require.NotNil(t, cfg.Delay)
	assert.Equal(t, uint64(2000), *cfg.Delay)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, `
device_type: "glow"
unknown_field: "value"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_field")
}

func TestLoadRejectsInvalidDeviceType(t *testing.T) {
	_, err := Load(writeConfig(t, `device_type: "invalid_type"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_type")
}

func TestLoadRejectsMultipleFilters(t *testing.T) {
	_, err := Load(writeConfig(t, `
serial_number: "ABC123"
device_type: "glow"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one filter")
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "device_type: [invalid\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestMergeFlagsTakePrecedence(t *testing.T) {
	serial := "FILE"
	requireDevice := true
	verbose := true
	file := &Config{
		SerialNumber:  serial,
		RequireDevice: &requireDevice,
		Verbose:       &verbose,
	}

	opts := Merge(Options{SerialNumber: "FLAG"}, false, file)
	assert.Equal(t, "FLAG", opts.SerialNumber)
	assert.True(t, opts.RequireDevice)
	assert.True(t, opts.Verbose)
}

func TestMergeFillsUnsetFields(t *testing.T) {
	backLight := true
	delay := uint64(2000)
	file := &Config{
		DevicePath:  "/dev/hidraw0",
		VideoDevice: "/dev/video1",
		BackLight:   &backLight,
		Delay:       &delay,
	}

	opts := Merge(Options{Delay: 1500 * time.Millisecond}, false, file)
	assert.Equal(t, "/dev/hidraw0", opts.DevicePath)
	assert.Equal(t, "/dev/video1", opts.VideoDevice)
	assert.True(t, opts.BackLight)
	assert.Equal(t, 2*time.Second, opts.Delay)
}

func TestMergeKeepsExplicitDelay(t *testing.T) {
	delay := uint64(2000)
	file := &Config{Delay: &delay}

	// The flag was given explicitly, even though it equals the default.
	opts := Merge(Options{Delay: 1500 * time.Millisecond}, true, file)
	assert.Equal(t, 1500*time.Millisecond, opts.Delay)
}

func TestMergeNilFile(t *testing.T) {
	opts := Merge(Options{SerialNumber: "FLAG"}, false, nil)
	assert.Equal(t, "FLAG", opts.SerialNumber)
}
