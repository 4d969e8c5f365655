package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pseudomuto/tsqlfmt/pkg/cmd/testutil"
	"github.com/pseudomuto/tsqlfmt/pkg/config"
	"github.com/pseudomuto/tsqlfmt/pkg/consts"
	"github.com/pseudomuto/tsqlfmt/pkg/format"
	"github.com/stretchr/testify/require"
)

const (
	unformattedSQL = "select a from t where b=1"
	formattedSQL   = "SELECT a\nFROM t\nWHERE b = 1\n"
)

func TestFmtCommand_RequiresPath(t *testing.T) {
	_, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())))
	testutil.RequireError(t, err, "exactly one path argument is required")

	_, err = testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "a.sql", "b.sql")
	testutil.RequireError(t, err, "exactly one path argument is required")
}

func TestFmtCommand_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{"test.sql": unformattedSQL})
	sqlFile := filepath.Join(tmpDir, "test.sql")

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), sqlFile)
	require.NoError(t, err)
	require.Equal(t, formattedSQL, res.Stdout)

	// Source is untouched without -w
	testutil.RequireFileContent(t, sqlFile, unformattedSQL)
}

func TestFmtCommand_SingleFileWriteBack(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{"test.sql": unformattedSQL})
	sqlFile := filepath.Join(tmpDir, "test.sql")

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "-w", sqlFile)
	require.NoError(t, err)
	require.Empty(t, res.Stdout)
	testutil.RequireFileContent(t, sqlFile, formattedSQL)

	// Formatting again is a no-op
	_, err = testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "-w", sqlFile)
	require.NoError(t, err)
	testutil.RequireFileContent(t, sqlFile, formattedSQL)
}

func TestFmtCommand_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{
		"b.sql":        "select 2",
		"a.sql":        "select 1",
		"nested/c.SQL": "select 3",
		"README.md":    "select nothing",
	})

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), tmpDir)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1\nSELECT 2\nSELECT 3\n", res.Stdout)
}

func TestFmtCommand_DirectoryWriteBack(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{
		"one.sql":         unformattedSQL,
		"views/two.sql":   "select x from y",
		"notes/three.txt": "select z",
	})

	_, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "-w", tmpDir)
	require.NoError(t, err)

	testutil.RequireFileContent(t, filepath.Join(tmpDir, "one.sql"), formattedSQL)
	testutil.RequireFileContent(t, filepath.Join(tmpDir, "views", "two.sql"), "SELECT x\nFROM y\n")
	testutil.RequireFileContent(t, filepath.Join(tmpDir, "notes", "three.txt"), "select z")
}

func TestFmtCommand_ConfiguredExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{
		"proc.tsql": "select 1",
		"skip.sql":  "select 2",
	})

	cfg, err := config.LoadConfig(strings.NewReader("extensions: [tsql]"))
	require.NoError(t, err)

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(cfg)), tmpDir)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1\n", res.Stdout)
}

func TestFmtCommand_EmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), tmpDir)
	testutil.RequireError(t, err, "no SQL files found in directory")
}

func TestFmtCommand_MissingPath(t *testing.T) {
	_, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), filepath.Join(t.TempDir(), "missing.sql"))
	testutil.RequireError(t, err, "failed to access path")
}

func TestFmtCommand_List(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{
		"clean.sql": formattedSQL,
		"dirty.sql": unformattedSQL,
	})

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "-l", tmpDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmpDir, "dirty.sql")+"\n", res.Stdout)

	// Listing never rewrites
	testutil.RequireFileContent(t, filepath.Join(tmpDir, "dirty.sql"), unformattedSQL)
}

func TestFmtCommand_Diff(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{"test.sql": "select a\nfrom t\n"})
	sqlFile := filepath.Join(tmpDir, "test.sql")

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "-d", sqlFile)
	require.NoError(t, err)

	require.Contains(t, res.Stdout, "--- "+sqlFile+".orig\n+++ "+sqlFile+"\n")
	require.Contains(t, res.Stdout, "-select a\n-from t\n+SELECT a\n+FROM t\n")
	testutil.RequireFileContent(t, sqlFile, "select a\nfrom t\n")

	// No output when nothing changes
	testutil.WriteFiles(t, tmpDir, map[string]string{"test.sql": "SELECT a\nFROM t\n"})
	res, err = testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "-d", sqlFile)
	require.NoError(t, err)
	require.Empty(t, res.Stdout)
}

func TestFmtCommand_Stdin(t *testing.T) {
	res, err := testutil.RunCommandWithInput(t.Context(), t, fmtCmd(config.Static(config.Default())), unformattedSQL, "-")
	require.NoError(t, err)
	require.Equal(t, formattedSQL, res.Stdout)

	_, err = testutil.RunCommandWithInput(t.Context(), t, fmtCmd(config.Static(config.Default())), unformattedSQL, "-w", "-")
	testutil.RequireError(t, err, "cannot write back to standard input")
}

func TestFmtCommand_WhitespaceOnlyFile(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{"empty.sql": "\n\n"})
	sqlFile := filepath.Join(tmpDir, "empty.sql")

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "-l", sqlFile)
	require.NoError(t, err)
	require.Empty(t, res.Stdout)
}

func TestFmtCommand_StyleFlags(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{
		"test.sql": "select * from (select a from t where b in (1,2)) x",
	})
	sqlFile := filepath.Join(tmpDir, "test.sql")

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())),
		"--keyword-case", "lower",
		"--use-tabs=false",
		"--indent-size", "2",
		"--expand-in-lists=false",
		sqlFile,
	)
	require.NoError(t, err)
	require.Equal(t, "select *\nfrom (\n  select a\n  from t\n  where b in (1,\n  2)\n) x\n", res.Stdout)

	_, err = testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "--keyword-case", "title", sqlFile)
	testutil.RequireError(t, err, "unknown keyword casing")

	_, err = testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), "--indent-size", "0", sqlFile)
	testutil.RequireError(t, err, "indent-size must be positive")
}

func TestFmtCommand_ConfigFlag(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{
		"test.sql":   "SELECT a FROM t",
		"style.yaml": "format:\n  keyword_casing: lower\n",
		"bad.yaml":   "format:\n  indent_size: 0\n",
	})
	sqlFile := filepath.Join(tmpDir, "test.sql")

	res, err := testutil.RunCommand(t, fmtCmd(config.Static(config.Default())), sqlFile)
	require.NoError(t, err)
	require.Equal(t, "SELECT a\nFROM t\n", res.Stdout)

	res, err = testutil.RunCommand(t, fmtCmd(nil), "--config", filepath.Join(tmpDir, "style.yaml"), sqlFile)
	require.NoError(t, err)
	require.Equal(t, "select a\nfrom t\n", res.Stdout)

	_, err = testutil.RunCommand(t, fmtCmd(nil), "-c", filepath.Join(tmpDir, "bad.yaml"), sqlFile)
	testutil.RequireError(t, err, "invalid config file", "indent_size must be positive")

	// Flags override the file
	cfg, err := config.LoadConfigFile(filepath.Join(tmpDir, "style.yaml"))
	require.NoError(t, err)

	res, err = testutil.RunCommand(t, fmtCmd(config.Static(cfg)), sqlFile)
	require.NoError(t, err)
	require.Equal(t, "select a\nfrom t\n", res.Stdout)

	res, err = testutil.RunCommand(t, fmtCmd(config.Static(cfg)), "--keyword-case", "upper", sqlFile)
	require.NoError(t, err)
	require.Equal(t, "SELECT a\nFROM t\n", res.Stdout)
}

func TestFmtCommand_BrokenWorkingDirConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{name: "invalid value", content: "format:\n  indent_size: 0\n", message: "indent_size must be positive"},
		{name: "invalid yaml", content: "format: [", message: "failed to unmarshal config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			testutil.WriteFiles(t, tmpDir, map[string]string{
				consts.DefaultConfigFile: tt.content,
				"test.sql":               "select a from t",
				"style.yaml":             "format:\n  keyword_casing: lower\n",
			})
			t.Chdir(tmpDir)

			_, err := testutil.RunCommand(t, fmtCmd(config.LoadWorkingDir), "test.sql")
			testutil.RequireError(t, err, "invalid config file: "+consts.DefaultConfigFile, tt.message)

			// An explicit config never reads the broken one
			res, err := testutil.RunCommand(t, fmtCmd(config.LoadWorkingDir), "--config", "style.yaml", "test.sql")
			require.NoError(t, err)
			require.Equal(t, "select a\nfrom t\n", res.Stdout)
		})
	}
}

func TestFmtCommand_WorkingDirConfig(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{
		consts.DefaultConfigFile: "format:\n  keyword_casing: lower\n",
		"test.sql":               "SELECT a FROM t",
	})
	t.Chdir(tmpDir)

	res, err := testutil.RunCommand(t, fmtCmd(config.LoadWorkingDir), "test.sql")
	require.NoError(t, err)
	require.Equal(t, "select a\nfrom t\n", res.Stdout)
}

func TestFmtCommand_Watch(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{"first.sql": unformattedSQL})

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		_, err := testutil.RunCommandWithInput(ctx, t, fmtCmd(config.Static(config.Default())), "", "--watch", tmpDir)
		done <- err
	}()

	// Initial pass
	first := filepath.Join(tmpDir, "first.sql")
	require.Eventually(t, func() bool {
		content, err := os.ReadFile(first)
		return err == nil && string(content) == formattedSQL
	}, 5*time.Second, 20*time.Millisecond)

	// Changes after startup
	require.Eventually(t, func() bool {
		second := filepath.Join(tmpDir, "second.sql")
		content, err := os.ReadFile(second)
		if os.IsNotExist(err) {
			_ = os.WriteFile(second, []byte("select 2"), consts.ModeFile)
			return false
		}
		return err == nil && string(content) == "SELECT 2\n"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatcher_OwnWrite(t *testing.T) {
	w := &watcher{written: make(map[string][]byte)}

	require.False(t, w.ownWrite("a.sql", []byte("SELECT 1\n")))

	w.record("a.sql", []byte("SELECT 1\n"))
	require.True(t, w.ownWrite("a.sql", []byte("SELECT 1\n")))
	require.False(t, w.ownWrite("a.sql", []byte("select 1")))
	require.False(t, w.ownWrite("b.sql", []byte("SELECT 1\n")))
}

func TestWatcher_NoWritesAfterStop(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.WriteFiles(t, tmpDir, map[string]string{"a.sql": unformattedSQL})
	path := filepath.Join(tmpDir, "a.sql")

	f := &fileFormatter{
		formatter: format.NewDefault(),
		config:    config.Default(),
		write:     true,
	}
	w := &watcher{
		f:       f,
		root:    tmpDir,
		written: make(map[string][]byte),
		timers:  make(map[string]*time.Timer),
	}
	f.onWrite = w.record

	w.handle(path)
	testutil.RequireFileContent(t, path, formattedSQL)

	testutil.WriteFiles(t, tmpDir, map[string]string{"a.sql": unformattedSQL})
	w.schedule(path)
	w.stop()
	require.Empty(t, w.timers)

	// A callback that was already running when stop was called
	w.handle(path)

	w.schedule(path)
	require.Empty(t, w.timers)

	time.Sleep(2 * watchDebounce)
	testutil.RequireFileContent(t, path, unformattedSQL)
}
