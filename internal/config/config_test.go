package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/racetrack/construct"
	"github.com/katalvlaran/racetrack/internal/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "tracks/track_02.t", c.Track)
	assert.Equal(t, "routes/output.csv", c.Output.Path)
	assert.Equal(t, 1, c.Search.Depth)
	assert.Equal(t, construct.ModelVelocity, c.Model())
	assert.False(t, c.Visualize.Enabled)
	assert.Equal(t, "routes/output.pdf", c.VisualizeOutput())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
track: tracks/track_01.t
search:
  depth: 12
  model: conn8
  workers: 4
visualize:
  enabled: true
  timeout: 5s
  output: out/viz.pdf
logging:
  format: json
`)
	c, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "tracks/track_01.t", c.Track)
	assert.Equal(t, 12, c.Search.Depth)
	assert.Equal(t, construct.ModelConn8, c.Model())
	assert.Equal(t, 4, c.Search.Workers)
	assert.Equal(t, 2, c.Search.GrassCost, "absent keys keep defaults")
	assert.True(t, c.Search.Prune)
	assert.True(t, c.Visualize.Enabled)
	assert.Equal(t, 5*time.Second, c.Visualize.Timeout)
	assert.Equal(t, "out/viz.pdf", c.VisualizeOutput())
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, "info", c.Logging.Level)
}

func TestLoad_YAMLEmpty(t *testing.T) {
	c, err := config.Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestLoad_YAMLUnknownKey(t *testing.T) {
	_, err := config.Load(writeFile(t, "bad.yaml", "search:\n  deepth: 3\n"))
	assert.Error(t, err)
}

func TestLoad_HCL(t *testing.T) {
	path := writeFile(t, "run.hcl", `
track = "tracks/track_03.t"

search {
  depth         = 20
  model         = "velocity"
  grass_cost    = 5
  max_speed     = 3
  prune         = false
  allow_partial = true
}

output {
  path = "out/route.csv"
}

visualize {
  enabled = true
  command = ""
  timeout = "90s"
}
`)
	c, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "tracks/track_03.t", c.Track)
	assert.Equal(t, 20, c.Search.Depth)
	assert.Equal(t, 5, c.Search.GrassCost)
	assert.Equal(t, 3, c.Search.MaxSpeed)
	assert.Equal(t, 1, c.Search.Workers, "absent keys keep defaults")
	assert.False(t, c.Search.Prune)
	assert.True(t, c.Search.AllowPartial)
	assert.Equal(t, "out/route.csv", c.Output.Path)
	assert.True(t, c.Visualize.Enabled)
	assert.Empty(t, c.Visualize.Command)
	assert.Equal(t, 90*time.Second, c.Visualize.Timeout)
	assert.Equal(t, "out/route.pdf", c.VisualizeOutput())
	assert.Equal(t, "console", c.Logging.Format)
}

func TestLoad_HCLErrors(t *testing.T) {
	_, err := config.Load(writeFile(t, "syntax.hcl", "search {\n"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "type.hcl", "search {\n  depth = \"deep\"\n}\n"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "unknown.hcl", "speed = 3\n"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "timeout.hcl", "visualize {\n  timeout = \"soon\"\n}\n"))
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "run.toml", "depth = 3\n"))
	assert.ErrorIs(t, err, config.ErrUnsupported)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"empty track":      func(c *config.Config) { c.Track = "" },
		"empty output":     func(c *config.Config) { c.Output.Path = "" },
		"negative depth":   func(c *config.Config) { c.Search.Depth = -1 },
		"zero grass cost":  func(c *config.Config) { c.Search.GrassCost = 0 },
		"negative speed":   func(c *config.Config) { c.Search.MaxSpeed = -2 },
		"no workers":       func(c *config.Config) { c.Search.Workers = 0 },
		"unknown model":    func(c *config.Config) { c.Search.Model = "teleport" },
		"negative timeout": func(c *config.Config) { c.Visualize.Timeout = -time.Second },
		"bad level":        func(c *config.Config) { c.Logging.Level = "chatty" },
		"bad format":       func(c *config.Config) { c.Logging.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalid)
		})
	}

	c := config.Default()
	c.Search.Depth = 0
	assert.NoError(t, c.Validate(), "depth 0 is allowed")
}
