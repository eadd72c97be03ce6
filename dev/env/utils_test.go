package devenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePathPassthrough(t *testing.T) {
	path, err := ResolvePath("data/Banks.db")
	require.NoError(t, err)
	require.Equal(t, "data/Banks.db", path)
}

func TestResolvePathDevState(t *testing.T) {
	root, err := GetWorkspaceRoot()
	require.NoError(t, err)

	path, err := ResolvePath("<dev_state>/resty/extract")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "dev", ".state", "resty", "extract"), path)

	info, err := os.Stat(filepath.Join(root, "dev", ".state"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
