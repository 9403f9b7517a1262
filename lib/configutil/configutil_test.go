package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `json:"name"`
	Port  int    `json:"port"`
	Inner struct {
		Enabled bool   `json:"enabled"`
		Label   string `json:"label"`
	} `json:"inner"`
}

func writeFile(t testing.TB, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		name: "leonardo",
		port: 8000,
		inner: { label: "default" },
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{
		port: 9000,
		inner: { enabled: true },
	}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "leonardo", cfg.Name)
	require.Equal(t, 9000, cfg.Port)
	require.True(t, cfg.Inner.Enabled)
	require.Equal(t, "default", cfg.Inner.Label)
}

func TestReadConfigOnlyLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ name: "local" }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Name)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ name: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.ErrorContains(t, err, "parse")
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "LEONARDO_TEST_DOTENV=from-file\n")
	t.Setenv("LEONARDO_TEST_DOTENV", "")
	os.Unsetenv("LEONARDO_TEST_DOTENV")

	require.NoError(t, LoadDotenv(path, filepath.Join(dir, "missing.env")))
	require.Equal(t, "from-file", os.Getenv("LEONARDO_TEST_DOTENV"))

	require.NoError(t, LoadDotenv(filepath.Join(dir, "missing.env")))
}

func TestOverrideFromEnv(t *testing.T) {
	target := "config"

	t.Setenv("LEONARDO_TEST_OVERRIDE", "")
	OverrideFromEnv(&target, "LEONARDO_TEST_OVERRIDE")
	require.Equal(t, "config", target)

	t.Setenv("LEONARDO_TEST_OVERRIDE", "env")
	OverrideFromEnv(&target, "LEONARDO_TEST_OVERRIDE")
	require.Equal(t, "env", target)
}
