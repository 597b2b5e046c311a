package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDataURL, c.DataURL)
	assert.Equal(t, 60, c.HTTPTimeoutSec)
	assert.Equal(t, "127.0.0.1:8501", c.ListenAddr)
	assert.Equal(t, 20, c.PreviewRows)
	assert.Equal(t, DefaultAgeBins(), c.AgeBins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, Save(&Global{DataURL: "from-file.csv", AgeBins: []float64{18, 40, 80}}, ""))
	_, err := os.Stat(filepath.Join(home, ".nhanes", "config.yaml"))
	require.NoError(t, err)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", c.DataURL)
	assert.Equal(t, []float64{18, 40, 80}, c.AgeBins)

	t.Setenv("NHANES_DATA_URL", "from-env.csv")
	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", c.DataURL)
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yml := "preview_rows: 3\nrecodes:\n  gender:\n    source: SEX\n    labels:\n      1: M\n      2: F\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.PreviewRows)

	g := c.Recode(RecodeGender)
	assert.Equal(t, "SEX", g.Source)
	assert.Equal(t, "SEXx", g.Target)
	assert.Equal(t, "F", g.Labels[2])

	// not overridden, so the built-in table applies
	assert.Equal(t, "DMDEDUC2", c.Recode(RecodeEducation).Source)
	assert.Equal(t, []string{RecodeEducation, RecodeGender, RecodeMarital}, c.RecodeNames())
}
