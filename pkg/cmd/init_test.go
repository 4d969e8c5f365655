package cmd

import (
	"path/filepath"
	"testing"

	"github.com/pseudomuto/tsqlfmt/pkg/cmd/testutil"
	"github.com/pseudomuto/tsqlfmt/pkg/config"
	"github.com/pseudomuto/tsqlfmt/pkg/consts"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_WritesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")

	_, err := testutil.RunCommand(t, initCmd(), dir)
	require.NoError(t, err)

	path := filepath.Join(dir, consts.DefaultConfigFile)
	testutil.RequireFileExists(t, path,
		testutil.RequireFileContains(t, "keyword_casing: upper"),
		testutil.RequireFileContains(t, "expand_in_lists: true"),
	)

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestInitCommand_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{consts.DefaultConfigFile: "format:\n  indent_size: 2\n"})
	path := filepath.Join(dir, consts.DefaultConfigFile)

	_, err := testutil.RunCommand(t, initCmd(), dir)
	testutil.RequireError(t, err, "already exists", "--force")
	testutil.RequireFileContent(t, path, "format:\n  indent_size: 2\n")

	_, err = testutil.RunCommand(t, initCmd(), "--force", dir)
	require.NoError(t, err)

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestInitCommand_ReplacesBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{consts.DefaultConfigFile: "format: ["})
	t.Chdir(dir)

	_, err := config.LoadWorkingDir()
	require.Error(t, err)

	_, err = testutil.RunCommand(t, initCmd(), "--force")
	require.NoError(t, err)

	cfg, err := config.LoadWorkingDir()
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}
