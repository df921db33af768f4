package cmd

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "conf.yaml", []byte("max_width: 100\n"), 0o644))

	cfg, err := loadConfig(fsys, "conf.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxWidth)
}

func TestLoadConfigMissing(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	// The implicit default may be absent; an explicit path may not.
	cfg, err := loadConfig(fsys, defaultConfigFile, false)
	require.NoError(t, err)
	assert.Zero(t, cfg.MaxWidth)

	_, err = loadConfig(fsys, "missing.yaml", true)
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "bad.yaml", []byte("max_width: [\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "negative.yaml", []byte("max_width: -4\n"), 0o644))

	_, err := loadConfig(fsys, "bad.yaml", true)
	assert.Error(t, err)

	_, err = loadConfig(fsys, "negative.yaml", true)
	assert.ErrorContains(t, err, "must not be negative")
}
