package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novacloud/internal/scalar"
	"github.com/tuannm99/novacloud/internal/textcloud"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novacloud.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	require.Equal(t, "novacloud", cfg.AppName)
	require.True(t, cfg.PLY.IgnoreMissing)
	require.Equal(t, 4, cfg.Convert.Workers)

	opts, err := cfg.WriteOptions()
	require.NoError(t, err)
	require.Equal(t, scalar.BinaryLittleEndian, opts.Encoding)

	topts, err := cfg.TextOptions()
	require.NoError(t, err)
	require.Equal(t, ',', topts.Delimiter)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app_name: scans
ply:
  byte_order: ">"
  ignore_missing: false
  comments:
    - "site 4"
text:
  delimiter: tab
  header: true
  comment: "#"
convert:
  workers: 2
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "scans", cfg.AppName)
	require.Equal(t, 2, cfg.Convert.Workers)

	opts, err := cfg.WriteOptions()
	require.NoError(t, err)
	require.Equal(t, scalar.BinaryBigEndian, opts.Encoding)
	require.Equal(t, []string{"site 4"}, opts.Comments)

	sel := cfg.Selection([]string{"x"})
	require.False(t, sel.IgnoreMissing)
	require.Equal(t, []string{"x"}, sel.Fields)

	topts, err := cfg.TextOptions()
	require.NoError(t, err)
	require.Equal(t, '\t', topts.Delimiter)
	require.Equal(t, '#', topts.Comment)
	require.True(t, topts.Header)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, "ply:\n  ascii: false\n")
	t.Setenv("NOVACLOUD_PLY_ASCII", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, cfg.PLY.ASCII)

	opts, err := cfg.WriteOptions()
	require.NoError(t, err)
	require.Equal(t, scalar.ASCII, opts.Encoding)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "ply:\n  byte_order: big\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "byte order")

	_, err = LoadConfig(writeConfig(t, "text:\n  delimiter: ';;'\n"))
	require.ErrorIs(t, err, textcloud.ErrBadDelimiter)
}
