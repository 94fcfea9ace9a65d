package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adev.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
strict = true
output = "adev.svg"
width  = 8
height = 4.5
dpi    = 120

log {
  level  = "debug"
  format = "json"
}
`), 0o644))

	f, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, f.Strict)
	assert.True(t, *f.Strict)
	require.NotNil(t, f.Output)
	assert.Equal(t, "adev.svg", *f.Output)
	assert.Nil(t, f.Terminal)
	assert.Equal(t, 8.0, *f.Width)
	assert.Equal(t, 4.5, *f.Height)
	assert.Equal(t, 120, *f.DPI)

	require.NotNil(t, f.Log)
	assert.Equal(t, "debug", *f.Log.Level)
	assert.Equal(t, "json", *f.Log.Format)
	assert.Nil(t, f.Log.File)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse([]byte(""), "empty.hcl")
	require.NoError(t, err)
	assert.Nil(t, f.Strict)
	assert.Nil(t, f.Output)
	assert.Nil(t, f.Log)
}

func TestParseHomeVariable(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	f, err := Parse([]byte(`output = "${home}/plots/adev.png"`), "home.hcl")
	require.NoError(t, err)
	assert.Equal(t, home+"/plots/adev.png", *f.Output)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `strict = `, "failed to parse"},
		{"unknown attribute", `colour = "red"`, "failed to decode"},
		{"wrong type", `strict = "maybe"`, "failed to decode"},
		{"negative width", `width = -1`, "width must be positive"},
		{"zero dpi", `dpi = 0`, "dpi must be positive"},
		{"output and terminal", "output = \"a.png\"\nterminal = true", "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "bad.hcl")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestOrHelpers(t *testing.T) {
	yes := true
	s := "x"
	assert.True(t, BoolOr(&yes, false))
	assert.True(t, BoolOr(nil, true))
	assert.Equal(t, "x", StringOr(&s, "d"))
	assert.Equal(t, "d", StringOr(nil, "d"))
}
