package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pageconv/core/fetch"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pageconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("readable", false, "")
	fs.String("output_dir", "", "")
	fs.String("log-level", "info", "")
	fs.String("extractor", "readability", "")
	fs.Duration("timeout", fetch.DefaultTimeout, "")
	fs.String("user-agent", "", "")
	fs.Bool("strict-images", false, "")
	fs.Bool("truncate", true, "")
	return fs
}

func TestLoad_EmptyPathDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, fetch.DefaultTimeout, cfg.Fetch.Timeout)
	assert.True(t, cfg.Blocks.Truncate)
	assert.False(t, cfg.Blocks.StrictImageURLs)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("PAGECONV_TEST_DIR", "/tmp/out")
	path := writeConfig(t, `
readable: true
output_dir: ${PAGECONV_TEST_DIR}
log_level: debug
fetch:
  timeout: 5s
  user_agent: bot/2
blocks:
  truncate: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Readable)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "bot/2", cfg.Fetch.UserAgent)
	assert.False(t, cfg.Blocks.Truncate)
	assert.Equal(t, "readability", cfg.Extractor)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "readable: true\ncolour: blue\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: loud\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "extractor: magic\n"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyFlags_OnlyChanged(t *testing.T) {
	cfg, err := Load(writeConfig(t, "readable: true\noutput_dir: from-file\n"))
	require.NoError(t, err)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--output_dir", "from-flag", "--strict-images"}))
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.True(t, cfg.Readable, "unset flag keeps file value")
	assert.Equal(t, "from-flag", cfg.OutputDir)
	assert.True(t, cfg.Blocks.StrictImageURLs)
	assert.True(t, cfg.BlockOptions().StrictImageURLs)
}

func TestApplyFlags_ExplicitFalseOverridesFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "readable: true\n"))
	require.NoError(t, err)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--readable=false", "--timeout", "2s"}))
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.False(t, cfg.Readable)
	assert.Equal(t, 2*time.Second, cfg.Fetch.Timeout)
}

func TestApplyFlags_InvalidLevel(t *testing.T) {
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--log-level", "chatty"}))
	require.Error(t, Default().ApplyFlags(fs))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
