package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, fsys afero.Fs, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut strings.Builder
	c := newRootCommand(fsys, &out, &errOut)
	c.cmd.SetArgs(args)
	c.cmd.SetOut(&errOut)
	c.cmd.SetErr(&errOut)
	err = c.cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootStdout(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "a.py", []byte("a = \"aaa bbb ccc\"\n"), 0o644))

	stdout, stderr, err := run(t, fsys, "--max-width", "12", "a.py")
	require.NoError(t, err)
	assert.Equal(t, "a = \"aaa \"\n\"bbb ccc\"\n", stdout)
	assert.Empty(t, stderr)
}

func TestRootWrite(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "a.py", []byte("a = \"aaa bbb ccc\"\n"), 0o644))

	stdout, _, err := run(t, fsys, "--max-width", "12", "--write", "a.py")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	text, err := afero.ReadFile(fsys, "a.py")
	require.NoError(t, err)
	assert.Equal(t, "a = \"aaa \"\n\"bbb ccc\"\n", string(text))
}

func TestRootApplyOnSave(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	cfg := "max_width: 12\napply_on_save: true\n"
	require.NoError(t, afero.WriteFile(fsys, defaultConfigFile, []byte(cfg), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "a.py", []byte("a = \"aaa bbb ccc\"\n"), 0o644))

	// apply_on_save makes --write the default.
	stdout, _, err := run(t, fsys, "a.py")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	text, err := afero.ReadFile(fsys, "a.py")
	require.NoError(t, err)
	assert.Equal(t, "a = \"aaa \"\n\"bbb ccc\"\n", string(text))
}

func TestRootCheck(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "a.py", []byte("a = \"aaa bbb ccc\"\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "b.py", []byte("b = \"short\"\n"), 0o644))

	_, _, err := run(t, fsys, "--max-width", "12", "--check", "a.py", "b.py")
	assert.ErrorIs(t, err, errChangesNeeded)

	// Check mode never writes.
	text, readErr := afero.ReadFile(fsys, "a.py")
	require.NoError(t, readErr)
	assert.Equal(t, "a = \"aaa bbb ccc\"\n", string(text))

	_, _, err = run(t, fsys, "--max-width", "12", "--check", "b.py")
	assert.NoError(t, err)
}

func TestRootConfigFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, defaultConfigFile, []byte("max_width: 12\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "a.py", []byte("a = \"aaa bbb ccc\"\n"), 0o644))

	stdout, _, err := run(t, fsys, "a.py")
	require.NoError(t, err)
	assert.Equal(t, "a = \"aaa \"\n\"bbb ccc\"\n", stdout)
}

func TestRootDiagnostics(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "a.py", []byte("x = \"oops\n"), 0o644))

	stdout, stderr, err := run(t, fsys, "--max-width", "12", "a.py")
	require.NoError(t, err)
	assert.Equal(t, "x = \"oops\n", stdout)
	assert.Contains(t, stderr, "malformed-literal")
}

func TestRootInvalidWidth(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "a.py", []byte("a = \"aaa bbb ccc\"\n"), 0o644))

	_, _, err := run(t, fsys, "--max-width", "2", "a.py")
	assert.ErrorContains(t, err, "invalid configuration")
}
