package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Url       string   `json:"url"`
	TableName string   `json:"table_name"`
	Columns   []string `json:"columns"`
	Timeout   int      `json:"timeout"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		url: "https://example.com",
		table_name: "banks",
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{table_name: "banks_local"}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.Url)
	require.Equal(t, "banks_local", cfg.TableName)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWithDefaults(t *testing.T) {
	defaults := testConfig{
		Url:       "https://default.example.com",
		TableName: "Largest_banks",
		Columns:   []string{"Name", "MC_USD_Billion"},
		Timeout:   30,
	}

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "none.json5"), defaults)
		require.NoError(t, err)
		require.Equal(t, defaults, cfg)
	})

	t.Run("partial file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "app.json5"), `{timeout: 5}`)

		cfg, err := LoadWithDefaults(filepath.Join(dir, "app.json5"), defaults)
		require.NoError(t, err)
		require.Equal(t, 5, cfg.Timeout)
		require.Equal(t, defaults.Url, cfg.Url)
		require.Equal(t, defaults.Columns, cfg.Columns)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "app.json5"), `{timeout: `)

		_, err := LoadWithDefaults(filepath.Join(dir, "app.json5"), defaults)
		require.Error(t, err)
	})
}
