package conf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openudpt/udptd/conf"
)

// clearDaemonEnv unsets every UDPTD_* variable for the duration of the test.
// t.Setenv registers the restore; the explicit Unsetenv leaves the variable
// absent while the test runs.
func clearDaemonEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"UDPTD_LOG_FILE", "UDPTD_LOG_LEVEL", "UDPTD_BIND_ADDR"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "udptd.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	clearDaemonEnv(t)
	path := writeConfigFile(t, "UDPTD_LOG_FILE=/var/log/udptd.log\nUDPTD_LOG_LEVEL=debug\n")

	cfg, err := conf.Load(path)
	require.NoError(t, err)

	file, err := cfg.Get(conf.LogFilename)
	require.NoError(t, err)
	require.Equal(t, "/var/log/udptd.log", file)

	level, err := cfg.Get(conf.LogLevel)
	require.NoError(t, err)
	require.Equal(t, "debug", level)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearDaemonEnv(t)
	t.Setenv("UDPTD_LOG_LEVEL", "w")
	t.Setenv("UDPTD_BIND_ADDR", "127.0.0.1:8000")

	cfg, err := conf.Load("")
	require.NoError(t, err)

	level, err := cfg.Get(conf.LogLevel)
	require.NoError(t, err)
	require.Equal(t, "w", level)

	addr, err := cfg.Get(conf.BindAddress)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8000", addr)

	// Nothing set the log file, so it stays missing.
	_, err = cfg.Get(conf.LogFilename)
	require.ErrorIs(t, err, conf.ErrMissing)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	clearDaemonEnv(t)
	t.Setenv("UDPTD_LOG_LEVEL", "info")
	path := writeConfigFile(t, "UDPTD_LOG_LEVEL=debug\n")

	cfg, err := conf.Load(path)
	require.NoError(t, err)

	level, err := cfg.Get(conf.LogLevel)
	require.NoError(t, err)
	require.Equal(t, "info", level)
}

func TestLoadMissingFile(t *testing.T) {
	clearDaemonEnv(t)
	_, err := conf.Load(filepath.Join(t.TempDir(), "no-such-file.env"))
	require.Error(t, err)
}

func TestGetMissing(t *testing.T) {
	cfg := conf.New()
	_, err := cfg.Get(conf.LogLevel)
	require.ErrorIs(t, err, conf.ErrMissing)
}

func TestSetOverrides(t *testing.T) {
	clearDaemonEnv(t)
	t.Setenv("UDPTD_LOG_LEVEL", "debug")

	cfg, err := conf.Load("")
	require.NoError(t, err)

	cfg.Set(conf.LogLevel, "warning")
	level, err := cfg.Get(conf.LogLevel)
	require.NoError(t, err)
	require.Equal(t, "warning", level)
}

func TestGetDefault(t *testing.T) {
	cfg := conf.New()
	require.Equal(t, ":6969", cfg.GetDefault(conf.BindAddress, ":6969"))

	cfg.Set(conf.BindAddress, ":7000")
	require.Equal(t, ":7000", cfg.GetDefault(conf.BindAddress, ":6969"))
}
